package model_test

import (
	"testing"

	"github.com/redzonehq/redzone/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPosition_Valid(t *testing.T) {
	Convey("Given the supported position groups", t, func() {
		Convey("Then QB, RB, WR and TE should be valid", func() {
			for _, p := range model.Positions() {
				So(p.Valid(), ShouldBeTrue)
			}
		})

		Convey("And kickers and defenses should not", func() {
			So(model.Position("K").Valid(), ShouldBeFalse)
			So(model.Position("DST").Valid(), ShouldBeFalse)
			So(model.Position("").Valid(), ShouldBeFalse)
		})
	})
}

func TestCategory_ValidFor(t *testing.T) {
	Convey("Given the category validity rules", t, func() {
		Convey("Then passing should only be valid for QB", func() {
			So(model.CategoryPassing.ValidFor(model.PositionQB), ShouldBeTrue)
			So(model.CategoryPassing.ValidFor(model.PositionRB), ShouldBeFalse)
			So(model.CategoryPassing.ValidFor(model.PositionWR), ShouldBeFalse)
			So(model.CategoryPassing.ValidFor(model.PositionTE), ShouldBeFalse)
		})

		Convey("And TE should only lead in receiving", func() {
			So(model.CategoryReceiving.ValidFor(model.PositionTE), ShouldBeTrue)
			So(model.CategoryRushing.ValidFor(model.PositionTE), ShouldBeFalse)
		})

		Convey("And RB should lead in rushing and receiving", func() {
			So(model.CategoryRushing.ValidFor(model.PositionRB), ShouldBeTrue)
			So(model.CategoryReceiving.ValidFor(model.PositionRB), ShouldBeTrue)
		})
	})
}

func TestStatRecord_Totals(t *testing.T) {
	Convey("Given a stat record with mixed touchdowns", t, func() {
		r := model.StatRecord{
			PlayerID:     "00-001",
			Position:     model.PositionQB,
			PassingTDs:   3,
			RushingTDs:   1,
			ReceivingTDs: 0,
		}

		Convey("Then TotalTDs should sum every category", func() {
			So(r.TotalTDs(), ShouldEqual, 4)
		})

		Convey("And CategoryTDs should pick out a single category", func() {
			So(r.CategoryTDs(model.CategoryPassing), ShouldEqual, 3)
			So(r.CategoryTDs(model.CategoryRushing), ShouldEqual, 1)
			So(r.CategoryTDs(model.CategoryReceiving), ShouldEqual, 0)
			So(r.CategoryTDs(model.Category("kicking")), ShouldEqual, 0)
		})
	})
}
