package pipeline

import (
	"errors"
	"fmt"
)

// Stage names one step of a recap run.
type Stage string

const (
	StageResolveWeek   Stage = "resolve_week"
	StageFetchMatchups Stage = "fetch_matchups"
	StageAnalyze       Stage = "analyze"
	StageCompose       Stage = "compose"
	StageSynthesize    Stage = "synthesize"
)

var (
	// ErrDataUnavailable means the requested week has no usable results.
	ErrDataUnavailable = errors.New("week data unavailable")
	// ErrSeasonNotStarted means no week of the season has completed yet.
	ErrSeasonNotStarted = fmt.Errorf("%w: season has not started", ErrDataUnavailable)
	// ErrWeekIncomplete means the requested week has not finished or has no
	// matchups.
	ErrWeekIncomplete = fmt.Errorf("%w: week is not complete", ErrDataUnavailable)
	// ErrComposition means the recap text could not be produced.
	ErrComposition = errors.New("recap composition failed")
	// ErrSynthesis means the audio could not be rendered or stored.
	ErrSynthesis = errors.New("audio synthesis failed")
)

// StageError is the single terminal error of a failed run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the stage a run failed in, or "" if err did not come from
// a run.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// kind wraps err so that errors.Is matches both the sentinel and the cause.
func kind(sentinel, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
