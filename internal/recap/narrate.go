package recap

import "fmt"

// Narrate describes one matchup in a single sentence.
func Narrate(m Matchup) string {
	if m.Tied() {
		return fmt.Sprintf("The matchup between %s and %s was a rare tie, with both teams scoring %s points.",
			m.HomeTeam, m.AwayTeam, FormatPoints(m.HomeScore))
	}

	margin := FormatPoints(m.Margin())
	if m.HomeScore.GreaterThan(m.AwayScore) {
		return fmt.Sprintf("%s triumphed over %s with a final score of %s to %s (margin: %s points).",
			m.HomeTeam, m.AwayTeam, FormatPoints(m.HomeScore), FormatPoints(m.AwayScore), margin)
	}
	return fmt.Sprintf("%s defeated %s with a final score of %s to %s (margin: %s points).",
		m.AwayTeam, m.HomeTeam, FormatPoints(m.AwayScore), FormatPoints(m.HomeScore), margin)
}
