package recap_test

import (
	"fmt"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/albapepper/fantasy-recap/internal/recap"
)

// describe renders an Awards record canonically so records can be compared
// without depending on decimal internals.
func describe(a recap.Awards) string {
	var b strings.Builder
	if a.Highest != nil {
		fmt.Fprintf(&b, "high=%s%v;", recap.FormatPoints(a.Highest.Score), a.Highest.Teams)
	}
	if a.Lowest != nil {
		fmt.Fprintf(&b, "low=%s%v;", recap.FormatPoints(a.Lowest.Score), a.Lowest.Teams)
	}
	if g := a.Blowout; g != nil {
		fmt.Fprintf(&b, "blowout=%s>%s:%s(%s-%s);", g.Winner, g.Loser, recap.FormatPoints(g.Margin),
			recap.FormatPoints(g.WinnerScore), recap.FormatPoints(g.LoserScore))
	}
	if g := a.Closest; g != nil {
		fmt.Fprintf(&b, "closest=%s>%s:%s(%s-%s);", g.Winner, g.Loser, recap.FormatPoints(g.Margin),
			recap.FormatPoints(g.WinnerScore), recap.FormatPoints(g.LoserScore))
	}
	return b.String()
}

func permutations(ms []recap.Matchup) [][]recap.Matchup {
	if len(ms) <= 1 {
		return [][]recap.Matchup{append([]recap.Matchup(nil), ms...)}
	}
	var out [][]recap.Matchup
	for i := range ms {
		rest := make([]recap.Matchup, 0, len(ms)-1)
		rest = append(rest, ms[:i]...)
		rest = append(rest, ms[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]recap.Matchup{ms[i]}, p...))
		}
	}
	return out
}

func scenarioWeek() []recap.Matchup {
	return []recap.Matchup{
		recap.NewMatchup("A", "B", 150.2, 140.0),
		recap.NewMatchup("C", "D", 130.0, 130.0),
		recap.NewMatchup("E", "F", 90.0, 160.5),
	}
}

func TestTallyAwards(t *testing.T) {
	Convey("Given the three-matchup scenario week", t, func() {
		awards := recap.TallyAwards(scenarioWeek())

		Convey("Then F is the highest scorer", func() {
			So(awards.Highest, ShouldNotBeNil)
			So(awards.Highest.Teams, ShouldResemble, []string{"F"})
			So(recap.FormatPoints(awards.Highest.Score), ShouldEqual, "160.5")
		})

		Convey("Then E is the lowest scorer", func() {
			So(awards.Lowest, ShouldNotBeNil)
			So(awards.Lowest.Teams, ShouldResemble, []string{"E"})
			So(recap.FormatPoints(awards.Lowest.Score), ShouldEqual, "90.0")
		})

		Convey("Then F over E is the blowout", func() {
			So(awards.Blowout.Winner, ShouldEqual, "F")
			So(awards.Blowout.Loser, ShouldEqual, "E")
			So(recap.FormatPoints(awards.Blowout.Margin), ShouldEqual, "70.5")
		})

		Convey("Then the tie is excluded from the closest game", func() {
			So(awards.Closest.Winner, ShouldEqual, "A")
			So(awards.Closest.Loser, ShouldEqual, "B")
			So(recap.FormatPoints(awards.Closest.Margin), ShouldEqual, "10.2")
		})
	})

	Convey("Given a single matchup week", t, func() {
		awards := recap.TallyAwards([]recap.Matchup{recap.NewMatchup("TeamA", "TeamB", 120.5, 110.5)})

		Convey("Then every award refers to that matchup", func() {
			So(describe(awards), ShouldEqual,
				"high=120.5[TeamA];low=110.5[TeamB];"+
					"blowout=TeamA>TeamB:10.0(120.5-110.5);"+
					"closest=TeamA>TeamB:10.0(120.5-110.5);")
		})
	})

	Convey("Given a week where every matchup is tied", t, func() {
		awards := recap.TallyAwards([]recap.Matchup{
			recap.NewMatchup("A", "B", 100, 100),
			recap.NewMatchup("C", "D", 90, 90),
		})

		Convey("Then blowout and closest game stay unset", func() {
			So(awards.Blowout, ShouldBeNil)
			So(awards.Closest, ShouldBeNil)
		})

		Convey("Then tied teams share the extremes", func() {
			So(awards.Highest.Teams, ShouldResemble, []string{"A", "B"})
			So(awards.Lowest.Teams, ShouldResemble, []string{"C", "D"})
		})
	})

	Convey("Given no matchups", t, func() {
		awards := recap.TallyAwards(nil)

		Convey("Then nothing is set", func() {
			So(awards.Highest, ShouldBeNil)
			So(awards.Lowest, ShouldBeNil)
			So(awards.Blowout, ShouldBeNil)
			So(awards.Closest, ShouldBeNil)
		})
	})

	Convey("Given a malformed feed listing a team twice", t, func() {
		awards := recap.TallyAwards([]recap.Matchup{
			recap.NewMatchup("A", "B", 150, 100),
			recap.NewMatchup("C", "A", 120, 150),
			recap.NewMatchup("D", "E", 150, 100),
		})

		Convey("Then each top scorer is listed once", func() {
			So(awards.Highest.Teams, ShouldResemble, []string{"A", "D"})
			So(awards.Lowest.Teams, ShouldResemble, []string{"B", "E"})
		})
	})

	Convey("Given scores that differ only past the second decimal", t, func() {
		m := recap.NewMatchup("A", "B", 100.004, 100.006)

		Convey("Then comparisons use the rounded values", func() {
			So(recap.FormatPoints(m.HomeScore), ShouldEqual, "100.0")
			So(recap.FormatPoints(m.AwayScore), ShouldEqual, "100.01")
			So(m.Tied(), ShouldBeFalse)
		})

		Convey("And scores that round to the same value tie", func() {
			So(recap.NewMatchup("A", "B", 99.999, 100.001).Tied(), ShouldBeTrue)
		})
	})
}

func TestUpdateIsOrderIndependent(t *testing.T) {
	Convey("Given a week with shared extremes and equal margins", t, func() {
		week := []recap.Matchup{
			recap.NewMatchup("Hawks", "Owls", 150.0, 148.0),
			recap.NewMatchup("Bears", "Lions", 150.0, 148.0),
			recap.NewMatchup("Wolves", "Foxes", 88.25, 88.25),
			recap.NewMatchup("Sharks", "Eels", 101.5, 90.0),
			recap.NewMatchup("Crows", "Moles", 88.25, 140.75),
			recap.NewMatchup("Yaks", "Ants", 200.0, 147.5),
		}
		want := describe(recap.TallyAwards(week))

		Convey("Then every permutation produces the same record", func() {
			perms := permutations(week)
			So(len(perms), ShouldEqual, 720)
			for _, p := range perms {
				So(describe(recap.TallyAwards(p)), ShouldEqual, want)
			}
		})

		Convey("Then ties in margin resolve to the lexically first pair", func() {
			awards := recap.TallyAwards(week)
			So(awards.Closest.Winner, ShouldEqual, "Bears")
			So(awards.Blowout.Winner, ShouldEqual, "Moles")
			So(awards.Lowest.Teams, ShouldResemble, []string{"Crows", "Foxes", "Wolves"})
			So(awards.Highest.Teams, ShouldResemble, []string{"Yaks"})
		})
	})

	Convey("Given an existing record", t, func() {
		before := recap.TallyAwards(scenarioWeek())
		snapshot := describe(before)

		Convey("When another matchup is folded in", func() {
			after := recap.Update(before, recap.NewMatchup("G", "H", 160.5, 10))

			Convey("Then the original record is untouched", func() {
				So(describe(before), ShouldEqual, snapshot)
				So(after.Highest.Teams, ShouldResemble, []string{"F", "G"})
				So(before.Highest.Teams, ShouldResemble, []string{"F"})
			})
		})
	})
}
