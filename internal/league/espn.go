package league

import (
	"strconv"
	"strings"
)

// leagueResponse is the subset of the ESPN league document we read
// (views mSettings, mTeam and mMatchupScore).
type leagueResponse struct {
	ID              int `json:"id"`
	SeasonID        int `json:"seasonId"`
	ScoringPeriodID int `json:"scoringPeriodId"`
	Status          struct {
		CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
		FinalScoringPeriod   int  `json:"finalScoringPeriod"`
		FirstScoringPeriod   int  `json:"firstScoringPeriod"`
		IsActive             bool `json:"isActive"`
	} `json:"status"`
	Settings struct {
		Name string `json:"name"`
	} `json:"settings"`
	Teams    []espnTeam     `json:"teams"`
	Schedule []espnSchedule `json:"schedule"`
}

type espnTeam struct {
	ID       int    `json:"id"`
	Abbrev   string `json:"abbrev"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Nickname string `json:"nickname"`
}

type espnSchedule struct {
	ID              int       `json:"id"`
	MatchupPeriodID int       `json:"matchupPeriodId"`
	Home            *espnSide `json:"home"`
	Away            *espnSide `json:"away"`
}

type espnSide struct {
	TeamID      int     `json:"teamId"`
	TotalPoints float64 `json:"totalPoints"`
}

// currentWeek is the scoring period, capped at the final one once the
// regular season is over.
func (lr *leagueResponse) currentWeek() int {
	final := lr.Status.FinalScoringPeriod
	if final > 0 && lr.ScoringPeriodID > final {
		return final
	}
	return lr.ScoringPeriodID
}

// displayName prefers the modern single name field, falling back to the
// legacy location/nickname pair.
func (t espnTeam) displayName() string {
	if n := strings.TrimSpace(t.Name); n != "" {
		return n
	}
	if n := strings.TrimSpace(t.Location + " " + t.Nickname); n != "" {
		return n
	}
	return "Team " + strconv.Itoa(t.ID)
}
