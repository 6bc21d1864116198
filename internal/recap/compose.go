package recap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

var (
	// ErrNoGenerator is returned when a personality is requested but no
	// NarrativeGenerator was configured.
	ErrNoGenerator = errors.New("narrative generator not configured")
	// ErrEmptyNarrative is returned when the generator answers with no text.
	ErrEmptyNarrative = errors.New("narrative generator returned empty text")
)

// Analysis is the analyzed form of one week: a sentence per matchup, in
// source order, plus the awards record.
type Analysis struct {
	Week       int       `json:"week"`
	Matchups   []Matchup `json:"matchups"`
	Narratives []string  `json:"narratives"`
	Awards     Awards    `json:"awards"`
}

// Analyze narrates every matchup and tallies the week's awards.
func Analyze(week int, matchups []Matchup) Analysis {
	narratives := make([]string, 0, len(matchups))
	for _, m := range matchups {
		narratives = append(narratives, Narrate(m))
	}
	return Analysis{
		Week:       week,
		Matchups:   matchups,
		Narratives: narratives,
		Awards:     TallyAwards(matchups),
	}
}

// NarrativeRequest is the structured payload handed to a NarrativeGenerator.
type NarrativeRequest struct {
	Week        int
	Narratives  []string
	Awards      Awards
	AwardsText  string
	Personality Personality
}

// NarrativeGenerator writes a free-form recap in the requested voice.
type NarrativeGenerator interface {
	Generate(ctx context.Context, req NarrativeRequest) (string, error)
}

// Composer produces the final recap text.
type Composer struct {
	generator NarrativeGenerator
	logger    *slog.Logger
}

// NewComposer creates a Composer. gen may be nil, in which case only template
// composition is available.
func NewComposer(gen NarrativeGenerator, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{generator: gen, logger: logger}
}

// Compose renders the recap. PersonalityNone uses the template; any other
// personality delegates to the generator and returns its text unchanged
// apart from surrounding whitespace. Generator failures are returned as-is;
// there is no fallback to the template.
func (c *Composer) Compose(ctx context.Context, a Analysis, p Personality) (string, error) {
	if p == PersonalityNone {
		return ComposeTemplate(a.Week, a.Narratives, a.Awards), nil
	}
	if c.generator == nil {
		return "", ErrNoGenerator
	}

	text, err := c.generator.Generate(ctx, NarrativeRequest{
		Week:        a.Week,
		Narratives:  a.Narratives,
		Awards:      a.Awards,
		AwardsText:  AwardsSection(a.Awards),
		Personality: p,
	})
	if err != nil {
		return "", fmt.Errorf("generate %s recap: %w", p, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyNarrative
	}

	// Generated text is not validated; a missing week number is only noted.
	if !strings.Contains(text, strconv.Itoa(a.Week)) {
		c.logger.Warn("generated recap does not mention the week number",
			"week", a.Week, "personality", string(p))
	}
	return text, nil
}

// ComposeTemplate builds the deterministic recap: title, one paragraph per
// matchup, then the awards section.
func ComposeTemplate(week int, narratives []string, awards Awards) string {
	parts := make([]string, 0, len(narratives)+2)
	parts = append(parts, fmt.Sprintf("📊 WEEKLY RECAP FOR WEEK %d 📊", week))
	parts = append(parts, narratives...)
	parts = append(parts, AwardsSection(awards))
	return strings.Join(parts, "\n\n")
}

// AwardsSection renders the awards in fixed order. Awards that are unset are
// left out.
func AwardsSection(a Awards) string {
	lines := []string{"🏆 WEEKLY AWARDS 🏆"}

	if h := a.Highest; h != nil {
		score := FormatPoints(h.Score)
		switch len(h.Teams) {
		case 1:
			lines = append(lines, fmt.Sprintf("Manager of the Week: %s with an incredible %s points!", h.Teams[0], score))
		case 2:
			lines = append(lines, fmt.Sprintf("Manager of the Week: %s share the honor, both putting up %s points!", joinTeams(h.Teams), score))
		default:
			lines = append(lines, fmt.Sprintf("Manager of the Week: %s share the honor, each putting up %s points!", joinTeams(h.Teams), score))
		}
	}

	if b := a.Blowout; b != nil {
		lines = append(lines, fmt.Sprintf("Blowout of the Week: %s dominated %s by %s points (%s to %s)!",
			b.Winner, b.Loser, FormatPoints(b.Margin), FormatPoints(b.WinnerScore), FormatPoints(b.LoserScore)))
	}

	if c := a.Closest; c != nil {
		lines = append(lines, fmt.Sprintf("Nail-Biter of the Week: %s vs %s was decided by just %s points!",
			c.Winner, c.Loser, FormatPoints(c.Margin)))
	}

	if l := a.Lowest; l != nil {
		score := FormatPoints(l.Score)
		switch len(l.Teams) {
		case 1:
			lines = append(lines, fmt.Sprintf("Sad Trombone Award: %s with only %s points. Better luck next week!", l.Teams[0], score))
		case 2:
			lines = append(lines, fmt.Sprintf("Sad Trombone Award: %s both struggled with only %s points each.", joinTeams(l.Teams), score))
		default:
			lines = append(lines, fmt.Sprintf("Sad Trombone Award: %s all struggled with only %s points each.", joinTeams(l.Teams), score))
		}
	}

	return strings.Join(lines, "\n")
}

// joinTeams joins names as "A", "A and B" or "A, B and C".
func joinTeams(teams []string) string {
	switch len(teams) {
	case 0:
		return ""
	case 1:
		return teams[0]
	}
	return strings.Join(teams[:len(teams)-1], ", ") + " and " + teams[len(teams)-1]
}
