package recap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPersonality is returned for a personality outside the fixed set.
var ErrUnknownPersonality = errors.New("unknown personality")

// Personality selects the commentator voice for generated recaps. The zero
// value selects deterministic template composition.
type Personality string

const (
	PersonalityNone    Personality = ""
	PersonalityHype    Personality = "hype"
	PersonalityRoast   Personality = "roast"
	PersonalityAnalyst Personality = "analyst"
)

// Personalities lists the selectable commentator voices.
func Personalities() []Personality {
	return []Personality{PersonalityHype, PersonalityRoast, PersonalityAnalyst}
}

// ParsePersonality validates a user-supplied personality name.
// Matching is case-insensitive; an empty string yields PersonalityNone.
func ParsePersonality(s string) (Personality, error) {
	p := Personality(strings.ToLower(strings.TrimSpace(s)))
	if p == PersonalityNone {
		return p, nil
	}
	for _, known := range Personalities() {
		if p == known {
			return p, nil
		}
	}
	return PersonalityNone, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownPersonality, s, PersonalityNames())
}

// PersonalityNames returns the selectable names joined for help text.
func PersonalityNames() string {
	names := make([]string, 0, 3)
	for _, p := range Personalities() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}
