package config_test

import (
	"testing"
	"time"

	"github.com/redzonehq/redzone/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a config built with defaults", t, func() {
		cfg := config.New()

		Convey("Then it should have sensible defaults", func() {
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.CachePath, ShouldEqual, "redzone.db")
			So(cfg.DefaultSeason, ShouldEqual, 2024)
			So(cfg.MatchupDepth, ShouldEqual, 5)
			So(cfg.MaxLeaderboardLimit, ShouldEqual, 100)
			So(cfg.FetchTimeout(), ShouldEqual, 30*time.Second)
		})
	})

	Convey("Given a config built with options", t, func() {
		cfg := config.New(
			config.WithAddr(":9090"),
			config.WithDefaultSeason(2025),
		)

		Convey("Then the options should apply", func() {
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.DefaultSeason, ShouldEqual, 2025)
		})
	})

	Convey("Given options with zero values", t, func() {
		cfg := config.New(
			config.WithAddr(""),
			config.WithDefaultSeason(0),
		)

		Convey("Then defaults should be preserved", func() {
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.DefaultSeason, ShouldEqual, 2024)
		})
	})
}
