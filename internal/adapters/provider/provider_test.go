package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redzonehq/redzone/internal/adapters/provider"
	"github.com/redzonehq/redzone/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const statsCSV = `player_id,player_display_name,position,recent_team,opponent_team,season,week,passing_tds,rushing_tds,receiving_tds
00-001,Alpha Receiver,WR,DAL,NYG,2024,1,,0,2.0
00-001,Alpha Receiver,WR,DAL,PHI,2024,2,NA,0,1
00-002,Beta Back,RB,SF,SEA,2024,1,0,1,0
00-003,Old Timer,WR,DAL,NYG,2023,1,0,0,3
,Headerless Row,WR,DAL,NYG,2024,1,0,0,1
`

const scheduleCSV = `season,game_type,week,away_team,home_team
2024,REG,1,DAL,NYG
2024,REG,1,SF,SEA
2024,POST,22,KC,SF
2023,REG,1,DAL,PHI
`

func TestParseSeasonStats(t *testing.T) {
	Convey("Given a player stats CSV", t, func() {
		Convey("When parsing the 2024 season", func() {
			records, err := provider.ParseSeasonStats(strings.NewReader(statsCSV), 2024)
			So(err, ShouldBeNil)

			Convey("Then other seasons and id-less rows are dropped", func() {
				So(records, ShouldHaveLength, 3)
			})

			Convey("And numeric cells parse with NA, empty and float forms", func() {
				So(records[0].PlayerID, ShouldEqual, "00-001")
				So(records[0].Position, ShouldEqual, model.PositionWR)
				So(records[0].Opponent, ShouldEqual, "NYG")
				So(records[0].ReceivingTDs, ShouldEqual, 2)
				So(records[0].PassingTDs, ShouldEqual, 0)
				So(records[1].ReceivingTDs, ShouldEqual, 1)
				So(records[2].RushingTDs, ShouldEqual, 1)
			})
		})

		Convey("When the header misses required columns", func() {
			_, err := provider.ParseSeasonStats(strings.NewReader("a,b,c\n1,2,3\n"), 2024)

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestParseSchedule(t *testing.T) {
	Convey("Given a games CSV spanning seasons", t, func() {
		Convey("When parsing the 2024 season", func() {
			games, err := provider.ParseSchedule(strings.NewReader(scheduleCSV), 2024)
			So(err, ShouldBeNil)

			Convey("Then only 2024 games remain, postseason included", func() {
				So(games, ShouldHaveLength, 3)
				So(games[0].HomeTeam, ShouldEqual, "NYG")
				So(games[0].AwayTeam, ShouldEqual, "DAL")
				So(games[0].Week, ShouldEqual, 1)
				So(games[2].GameType, ShouldEqual, "POST")
			})
		})
	})
}

func TestNFLVerse(t *testing.T) {
	Convey("Given a stub upstream server", t, func() {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.HasSuffix(r.URL.Path, "/player_stats/player_stats_2024.csv"):
				_, _ = w.Write([]byte(statsCSV))
			case strings.HasSuffix(r.URL.Path, "/schedules/games.csv"):
				_, _ = w.Write([]byte(scheduleCSV))
			default:
				http.NotFound(w, r)
			}
		}))
		defer ts.Close()

		client := provider.NewNFLVerse(
			provider.WithBaseURL(ts.URL),
			provider.WithUserAgent("redzone-test"),
		)

		Convey("When fetching season stats", func() {
			records, err := client.SeasonStats(context.Background(), 2024)

			Convey("Then it should parse the upstream CSV", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 3)
			})
		})

		Convey("When fetching the schedule", func() {
			games, err := client.Schedule(context.Background(), 2024)

			Convey("Then it should parse the upstream CSV", func() {
				So(err, ShouldBeNil)
				So(games, ShouldHaveLength, 3)
			})
		})

		Convey("When the asset is missing", func() {
			_, err := client.SeasonStats(context.Background(), 1999)

			Convey("Then it should fail with DataUnavailable", func() {
				So(errors.Is(err, provider.ErrDataUnavailable), ShouldBeTrue)
			})
		})
	})

	Convey("Given an unreachable upstream", t, func() {
		client := provider.NewNFLVerse(provider.WithBaseURL("http://127.0.0.1:1"))

		Convey("When fetching season stats", func() {
			_, err := client.SeasonStats(context.Background(), 2024)

			Convey("Then it should fail with DataUnavailable", func() {
				So(errors.Is(err, provider.ErrDataUnavailable), ShouldBeTrue)
			})
		})
	})
}
