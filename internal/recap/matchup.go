// Package recap turns a week of fantasy matchups into a narrative recap.
//
// Everything here is pure: matchup sentences, the weekly awards fold and the
// template composer produce identical output for identical input. The only
// side-effecting path is generated composition, which delegates to a
// NarrativeGenerator.
package recap

import (
	"strings"

	"github.com/shopspring/decimal"
)

// scorePlaces is the precision scores are rounded to before any comparison.
const scorePlaces = 2

// Matchup is one head-to-head result. Scores are always rounded to two
// decimal places; build values with NewMatchup.
type Matchup struct {
	HomeTeam  string          `json:"home_team"`
	AwayTeam  string          `json:"away_team"`
	HomeScore decimal.Decimal `json:"home_score"`
	AwayScore decimal.Decimal `json:"away_score"`
}

// NewMatchup rounds raw upstream scores and returns a Matchup.
func NewMatchup(homeTeam, awayTeam string, homeScore, awayScore float64) Matchup {
	return Matchup{
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		HomeScore: RoundScore(decimal.NewFromFloat(homeScore)),
		AwayScore: RoundScore(decimal.NewFromFloat(awayScore)),
	}
}

// RoundScore rounds a score to two decimal places.
func RoundScore(d decimal.Decimal) decimal.Decimal {
	return d.Round(scorePlaces)
}

// Tied reports whether both teams finished with the same rounded score.
func (m Matchup) Tied() bool {
	return m.HomeScore.Equal(m.AwayScore)
}

// Margin is the absolute score difference.
func (m Matchup) Margin() decimal.Decimal {
	return m.HomeScore.Sub(m.AwayScore).Abs()
}

// Result orders a non-tied matchup by score. For a tie the home side is
// reported first.
func (m Matchup) Result() (winner, loser string, winnerScore, loserScore decimal.Decimal) {
	if m.AwayScore.GreaterThan(m.HomeScore) {
		return m.AwayTeam, m.HomeTeam, m.AwayScore, m.HomeScore
	}
	return m.HomeTeam, m.AwayTeam, m.HomeScore, m.AwayScore
}

// FormatPoints renders a score the way recaps read it aloud: two-decimal
// precision with trailing zeros dropped, keeping at least one decimal
// ("140.0", "120.5", "100.01").
func FormatPoints(d decimal.Decimal) string {
	s := RoundScore(d).StringFixed(scorePlaces)
	for strings.HasSuffix(s, "0") && !strings.HasSuffix(s, ".0") {
		s = s[:len(s)-1]
	}
	return s
}
