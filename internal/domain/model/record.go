// Package model contains domain models passed between layers.
package model

// Position identifies an offensive position group.
type Position string

// Position groups covered by the analytics.
const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

// Positions lists the supported position groups in display order.
func Positions() []Position {
	return []Position{PositionQB, PositionRB, PositionWR, PositionTE}
}

// Valid reports whether p is a supported position group.
func (p Position) Valid() bool {
	switch p {
	case PositionQB, PositionRB, PositionWR, PositionTE:
		return true
	}
	return false
}

// Category identifies a touchdown category.
type Category string

// Touchdown categories.
const (
	CategoryPassing   Category = "passing"
	CategoryRushing   Category = "rushing"
	CategoryReceiving Category = "receiving"
)

// categoriesByPosition lists the categories a position can lead in.
// QBs throw and occasionally run; RBs run and catch; WRs catch and take the
// odd end-around; TEs only catch.
var categoriesByPosition = map[Position][]Category{
	PositionQB: {CategoryPassing, CategoryRushing},
	PositionRB: {CategoryRushing, CategoryReceiving},
	PositionWR: {CategoryReceiving, CategoryRushing},
	PositionTE: {CategoryReceiving},
}

// ValidFor reports whether the category applies to the given position.
func (c Category) ValidFor(p Position) bool {
	for _, valid := range categoriesByPosition[p] {
		if c == valid {
			return true
		}
	}
	return false
}

// CategoriesFor returns the categories valid for a position, in display order.
func CategoriesFor(p Position) []Category {
	return categoriesByPosition[p]
}

// StatRecord is one player's stat line for a single game. Records are
// immutable once fetched; aggregations never modify them.
type StatRecord struct {
	PlayerID   string
	PlayerName string
	Team       string
	Opponent   string // the defense this line was scored against
	Position   Position
	Season     int
	Week       int

	PassingTDs   int
	RushingTDs   int
	ReceivingTDs int
}

// TotalTDs returns all touchdowns on the stat line.
func (r StatRecord) TotalTDs() int {
	return r.PassingTDs + r.RushingTDs + r.ReceivingTDs
}

// CategoryTDs returns the touchdowns for one category.
func (r StatRecord) CategoryTDs(c Category) int {
	switch c {
	case CategoryPassing:
		return r.PassingTDs
	case CategoryRushing:
		return r.RushingTDs
	case CategoryReceiving:
		return r.ReceivingTDs
	}
	return 0
}

// Game is one scheduled pairing.
type Game struct {
	Season   int
	Week     int
	HomeTeam string
	AwayTeam string
	GameType string // REG, POST, ...
}
