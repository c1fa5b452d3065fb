package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/redzonehq/redzone/internal/adapters/cache"
	"github.com/redzonehq/redzone/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func testSnapshot(season int) *cache.Snapshot {
	return &cache.Snapshot{
		Season: season,
		Records: []model.StatRecord{
			{
				PlayerID:     "00-001",
				PlayerName:   "Alpha Receiver",
				Team:         "DAL",
				Opponent:     "NYG",
				Position:     model.PositionWR,
				Season:       season,
				Week:         1,
				ReceivingTDs: 2,
			},
			{
				PlayerID:   "00-002",
				PlayerName: "Beta Passer",
				Team:       "SF",
				Opponent:   "SEA",
				Position:   model.PositionQB,
				Season:     season,
				Week:       1,
				PassingTDs: 3,
			},
		},
		Games: []model.Game{
			{Season: season, Week: 2, HomeTeam: "NYG", AwayTeam: "DAL", GameType: "REG"},
		},
	}
}

func TestSQLiteStore(t *testing.T) {
	Convey("Given an in-memory sqlite store", t, func() {
		ctx := context.Background()
		store, err := cache.NewSQLiteStore(ctx, ":memory:")
		So(err, ShouldBeNil)
		defer store.Close()

		Convey("When reading an uncached season", func() {
			_, err := store.Season(ctx, 2024)

			Convey("Then it should fail with ErrNotCached", func() {
				So(errors.Is(err, cache.ErrNotCached), ShouldBeTrue)
			})
		})

		Convey("When storing and reading back a snapshot", func() {
			So(store.Put(ctx, testSnapshot(2024)), ShouldBeNil)
			snap, err := store.Season(ctx, 2024)
			So(err, ShouldBeNil)

			Convey("Then records round-trip in order", func() {
				So(snap.Records, ShouldHaveLength, 2)
				So(snap.Records[0].PlayerID, ShouldEqual, "00-001")
				So(snap.Records[0].Position, ShouldEqual, model.PositionWR)
				So(snap.Records[0].ReceivingTDs, ShouldEqual, 2)
				So(snap.Records[1].PassingTDs, ShouldEqual, 3)
			})

			Convey("And games round-trip with their pairing", func() {
				So(snap.Games, ShouldHaveLength, 1)
				So(snap.Games[0].HomeTeam, ShouldEqual, "NYG")
				So(snap.Games[0].AwayTeam, ShouldEqual, "DAL")
				So(snap.Games[0].Week, ShouldEqual, 2)
			})

			Convey("And the fetch timestamp is recorded", func() {
				So(snap.FetchedAt.IsZero(), ShouldBeFalse)
			})
		})

		Convey("When storing a season twice", func() {
			So(store.Put(ctx, testSnapshot(2024)), ShouldBeNil)
			second := testSnapshot(2024)
			second.Records = second.Records[:1]
			So(store.Put(ctx, second), ShouldBeNil)

			snap, err := store.Season(ctx, 2024)
			So(err, ShouldBeNil)

			Convey("Then the second snapshot replaces the first", func() {
				So(snap.Records, ShouldHaveLength, 1)
			})
		})

		Convey("When dropping a cached season", func() {
			So(store.Put(ctx, testSnapshot(2024)), ShouldBeNil)
			So(store.Put(ctx, testSnapshot(2023)), ShouldBeNil)
			So(store.Drop(ctx, 2024), ShouldBeNil)

			Convey("Then the season is gone and others remain", func() {
				_, err := store.Season(ctx, 2024)
				So(errors.Is(err, cache.ErrNotCached), ShouldBeTrue)

				seasons, err := store.Seasons(ctx)
				So(err, ShouldBeNil)
				So(seasons, ShouldResemble, []int{2023})
			})
		})

		Convey("When dropping an uncached season", func() {
			Convey("Then it should not be an error", func() {
				So(store.Drop(ctx, 1999), ShouldBeNil)
			})
		})
	})
}
