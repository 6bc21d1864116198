// Package speech converts recap text to audio.
package speech

import (
	"context"
	"errors"
)

// ErrEmptyText is returned when there is nothing to read aloud.
var ErrEmptyText = errors.New("no text to synthesize")

// Audio is raw synthesized voice.
type Audio struct {
	Data   []byte
	Format string // file extension without the dot, e.g. "mp3"
}

// Renderer converts text to Audio. Implementations wrap a hosted TTS service.
type Renderer interface {
	Render(ctx context.Context, text string) (*Audio, error)
}
