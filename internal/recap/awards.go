package recap

import (
	"slices"

	"github.com/shopspring/decimal"
)

// ScoreAward is an extreme team score and every team that reached it.
// Teams is sorted and free of duplicates.
type ScoreAward struct {
	Score decimal.Decimal `json:"score"`
	Teams []string        `json:"teams"`
}

// GameAward is a single non-tied matchup singled out by its margin.
type GameAward struct {
	Winner      string          `json:"winner"`
	Loser       string          `json:"loser"`
	WinnerScore decimal.Decimal `json:"winner_score"`
	LoserScore  decimal.Decimal `json:"loser_score"`
	Margin      decimal.Decimal `json:"margin"`
}

// Awards is the weekly superlatives record. A nil field means no matchup
// qualified: Highest/Lowest stay nil for an empty week, Blowout/Closest stay
// nil when every matchup was tied.
//
// Awards is a value; Update never modifies its argument.
type Awards struct {
	Highest *ScoreAward `json:"highest,omitempty"`
	Lowest  *ScoreAward `json:"lowest,omitempty"`
	Blowout *GameAward  `json:"blowout,omitempty"`
	Closest *GameAward  `json:"closest,omitempty"`
}

// TallyAwards folds Update over every matchup.
func TallyAwards(matchups []Matchup) Awards {
	var a Awards
	for _, m := range matchups {
		a = Update(a, m)
	}
	return a
}

// Update returns the record after accounting for one more matchup.
//
// The result does not depend on the order matchups are folded in: team sets
// are kept sorted, and when two games share a margin the one with the
// lexically smaller (winner, loser) pair is kept.
func Update(a Awards, m Matchup) Awards {
	next := a
	for _, side := range [2]struct {
		team  string
		score decimal.Decimal
	}{{m.HomeTeam, m.HomeScore}, {m.AwayTeam, m.AwayScore}} {
		next.Highest = foldScore(next.Highest, side.team, side.score, 1)
		next.Lowest = foldScore(next.Lowest, side.team, side.score, -1)
	}

	if m.Tied() {
		return next
	}

	winner, loser, ws, ls := m.Result()
	game := &GameAward{
		Winner:      winner,
		Loser:       loser,
		WinnerScore: ws,
		LoserScore:  ls,
		Margin:      m.Margin(),
	}
	if next.Blowout == nil || beats(game, next.Blowout, 1) {
		next.Blowout = game
	}
	if next.Closest == nil || beats(game, next.Closest, -1) {
		next.Closest = game
	}
	return next
}

// foldScore applies one team score to an extreme. dir is 1 for a maximum and
// -1 for a minimum.
func foldScore(cur *ScoreAward, team string, score decimal.Decimal, dir int) *ScoreAward {
	if cur == nil || score.Cmp(cur.Score) == dir {
		return &ScoreAward{Score: score, Teams: []string{team}}
	}
	if !score.Equal(cur.Score) {
		return cur
	}
	if _, found := slices.BinarySearch(cur.Teams, team); found {
		return cur
	}
	teams := make([]string, 0, len(cur.Teams)+1)
	teams = append(teams, cur.Teams...)
	teams = append(teams, team)
	slices.Sort(teams)
	return &ScoreAward{Score: cur.Score, Teams: teams}
}

// beats reports whether candidate should replace current. dir is 1 when a
// larger margin wins and -1 when a smaller one does.
func beats(candidate, current *GameAward, dir int) bool {
	if c := candidate.Margin.Cmp(current.Margin); c != 0 {
		return c == dir
	}
	if candidate.Winner != current.Winner {
		return candidate.Winner < current.Winner
	}
	if candidate.Loser != current.Loser {
		return candidate.Loser < current.Loser
	}
	return candidate.WinnerScore.LessThan(current.WinnerScore)
}
