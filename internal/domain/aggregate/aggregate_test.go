package aggregate_test

import (
	"errors"
	"testing"

	"github.com/redzonehq/redzone/internal/domain/aggregate"
	"github.com/redzonehq/redzone/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func wrRecord(player, team, opponent string, week, tds int) model.StatRecord {
	return model.StatRecord{
		PlayerID:     player,
		PlayerName:   player,
		Team:         team,
		Opponent:     opponent,
		Position:     model.PositionWR,
		Season:       2024,
		Week:         week,
		ReceivingTDs: tds,
	}
}

func TestEngine_DefenseWeakness(t *testing.T) {
	Convey("Given WR records against two defenses", t, func() {
		engine := aggregate.New()
		records := []model.StatRecord{
			wrRecord("p1", "DAL", "A", 1, 2),
			wrRecord("p2", "DAL", "A", 2, 1),
			wrRecord("p3", "PHI", "B", 1, 3),
		}

		Convey("When computing WR defense weakness", func() {
			rows, err := engine.DefenseWeakness(records, model.PositionWR)
			So(err, ShouldBeNil)

			Convey("Then equal sums are tie-broken by team identifier", func() {
				So(rows, ShouldHaveLength, 2)
				So(rows[0].Team, ShouldEqual, "B")
				So(rows[0].TDsAllowed, ShouldEqual, 3)
				So(rows[0].Rank, ShouldEqual, 1)
				So(rows[1].Team, ShouldEqual, "A")
				So(rows[1].TDsAllowed, ShouldEqual, 3)
				So(rows[1].Rank, ShouldEqual, 2)
			})

			Convey("And touchdowns allowed are conserved", func() {
				sumIn := 0
				for _, r := range records {
					sumIn += r.TotalTDs()
				}
				sumOut := 0
				for _, row := range rows {
					sumOut += row.TDsAllowed
				}
				So(sumOut, ShouldEqual, sumIn)
			})

			Convey("And recomputing yields identical output", func() {
				again, err := engine.DefenseWeakness(records, model.PositionWR)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, rows)
			})
		})

		Convey("When computing for every supported position", func() {
			for _, pos := range model.Positions() {
				rows, err := engine.DefenseWeakness(records, pos)
				So(err, ShouldBeNil)

				Convey("Then output for "+string(pos)+" is sorted descending", func() {
					for i := 1; i < len(rows); i++ {
						So(rows[i-1].TDsAllowed, ShouldBeGreaterThanOrEqualTo, rows[i].TDsAllowed)
					}
				})
			}
		})

		Convey("When asking for a kicker ranking", func() {
			_, err := engine.DefenseWeakness(records, model.Position("K"))

			Convey("Then it should fail with InvalidPosition", func() {
				So(errors.Is(err, aggregate.ErrInvalidPosition), ShouldBeTrue)
			})
		})
	})
}

func TestEngine_Leaders(t *testing.T) {
	Convey("Given receiving records for three players", t, func() {
		engine := aggregate.New()
		records := []model.StatRecord{
			wrRecord("a-early", "DAL", "NYG", 1, 1),
			wrRecord("a-early", "DAL", "PHI", 2, 2),
			wrRecord("b-late", "SF", "SEA", 1, 3),
			wrRecord("quiet", "KC", "LV", 1, 0),
		}

		Convey("When computing receiving leaders", func() {
			rows, err := engine.Leaders(records, model.PositionWR, model.CategoryReceiving)
			So(err, ShouldBeNil)

			Convey("Then each player appears once with their summed totals", func() {
				So(rows, ShouldHaveLength, 2)
				seen := map[string]bool{}
				for _, row := range rows {
					So(seen[row.PlayerID], ShouldBeFalse)
					seen[row.PlayerID] = true
				}
				So(rows[0].PlayerID, ShouldEqual, "a-early")
				So(rows[0].CategoryTDs, ShouldEqual, 3)
				So(rows[1].PlayerID, ShouldEqual, "b-late")
				So(rows[1].CategoryTDs, ShouldEqual, 3)
			})

			Convey("And equal totals are tie-broken by player identifier", func() {
				So(rows[0].Rank, ShouldEqual, 1)
				So(rows[1].Rank, ShouldEqual, 2)
			})

			Convey("And zero-touchdown players are omitted", func() {
				for _, row := range rows {
					So(row.PlayerID, ShouldNotEqual, "quiet")
				}
			})
		})

		Convey("When a player changes teams mid-season", func() {
			moved := append([]model.StatRecord(nil), records...)
			moved = append(moved, wrRecord("a-early", "NYJ", "MIA", 9, 1))
			rows, err := engine.Leaders(moved, model.PositionWR, model.CategoryReceiving)
			So(err, ShouldBeNil)

			Convey("Then they are attributed to their most recent team", func() {
				So(rows[0].PlayerID, ShouldEqual, "a-early")
				So(rows[0].Team, ShouldEqual, "NYJ")
				So(rows[0].CategoryTDs, ShouldEqual, 4)
			})
		})

		Convey("When asking for passing leaders among receivers", func() {
			_, err := engine.Leaders(records, model.PositionWR, model.CategoryPassing)

			Convey("Then it should fail with InvalidCategory", func() {
				So(errors.Is(err, aggregate.ErrInvalidCategory), ShouldBeTrue)
			})
		})

		Convey("When asking with an unsupported position", func() {
			_, err := engine.Leaders(records, model.Position("DST"), model.CategoryReceiving)

			Convey("Then it should fail with InvalidPosition", func() {
				So(errors.Is(err, aggregate.ErrInvalidPosition), ShouldBeTrue)
			})
		})
	})
}

func TestEngine_Matchups(t *testing.T) {
	Convey("Given season records and a one-game week", t, func() {
		engine := aggregate.New()
		records := []model.StatRecord{
			// SEA's defense has allowed the most WR touchdowns.
			wrRecord("star", "DAL", "NYG", 1, 2),
			wrRecord("star", "DAL", "PHI", 2, 2),
			wrRecord("other", "SF", "SEA", 1, 3),
			wrRecord("other", "SF", "SEA", 2, 1),
			wrRecord("depth", "DAL", "NYG", 1, 1),
		}
		schedule := []model.Game{
			{Season: 2024, Week: 3, HomeTeam: "SEA", AwayTeam: "DAL", GameType: "REG"},
		}

		Convey("When computing week 3 matchups", func() {
			rows, err := engine.Matchups(records, schedule, 3)
			So(err, ShouldBeNil)

			Convey("Then DAL producers are paired against the SEA defense", func() {
				So(len(rows), ShouldBeGreaterThan, 0)
				teams := map[string]bool{}
				for _, row := range rows {
					teams[row.Team] = true
					So(row.Week, ShouldEqual, 3)
				}
				So(teams["DAL"], ShouldBeTrue)
				// SEA's offense has no recorded producers, and no defense has
				// faced DAL receivers in this fixture.
				So(teams["SF"], ShouldBeFalse)
			})

			Convey("And rows are sorted by favorability, then player id", func() {
				for i := 1; i < len(rows); i++ {
					if rows[i-1].Favorability == rows[i].Favorability {
						So(rows[i-1].PlayerID, ShouldBeLessThan, rows[i].PlayerID)
					} else {
						So(rows[i-1].Favorability, ShouldBeGreaterThan, rows[i].Favorability)
					}
				}
			})

			Convey("And a weaker defense yields a higher favorability", func() {
				// SEA allowed 4 WR touchdowns (rank 1 of 3 defenses), so the
				// defense term is maximal for DAL's producers.
				So(rows[0].Opponent, ShouldEqual, "SEA")
				So(rows[0].DefenseRank, ShouldEqual, 1)
			})

			Convey("And recomputing yields identical output", func() {
				again, err := engine.Matchups(records, schedule, 3)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, rows)
			})
		})

		Convey("When the week has no scheduled games", func() {
			_, err := engine.Matchups(records, schedule, 12)

			Convey("Then it should fail with NoScheduleData", func() {
				So(errors.Is(err, aggregate.ErrNoScheduleData), ShouldBeTrue)
			})
		})

		Convey("When the week only has postseason games filtered out", func() {
			post := []model.Game{
				{Season: 2024, Week: 3, HomeTeam: "SEA", AwayTeam: "DAL", GameType: "POST"},
			}
			_, err := engine.Matchups(records, post, 3)

			Convey("Then it should fail with NoScheduleData", func() {
				So(errors.Is(err, aggregate.ErrNoScheduleData), ShouldBeTrue)
			})
		})
	})

	Convey("Given an engine with a shallow matchup depth", t, func() {
		engine := aggregate.New(aggregate.WithMatchupDepth(1))
		records := []model.StatRecord{
			wrRecord("star", "DAL", "SEA", 1, 3),
			wrRecord("depth", "DAL", "SEA", 1, 1),
		}
		schedule := []model.Game{
			{Season: 2024, Week: 2, HomeTeam: "DAL", AwayTeam: "SEA", GameType: "REG"},
		}

		Convey("When computing matchups", func() {
			rows, err := engine.Matchups(records, schedule, 2)
			So(err, ShouldBeNil)

			Convey("Then only the top producer per team is paired", func() {
				So(rows, ShouldHaveLength, 1)
				So(rows[0].PlayerID, ShouldEqual, "star")
			})
		})
	})
}
