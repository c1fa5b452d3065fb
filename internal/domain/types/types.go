// Package types contains row shapes shared between the app and the HTTP API.
package types

// DefenseWeaknessRow is one team's touchdowns allowed to a position, ranked
// from most allowed (rank 1, weakest defense) down.
type DefenseWeaknessRow struct {
	Rank       int    `json:"rank"`
	Team       string `json:"team"`
	Position   string `json:"position"`
	TDsAllowed int    `json:"tds_allowed"`
}

// MatchupRow pairs an offensive producer against the opposing defense for a
// scheduled game.
type MatchupRow struct {
	PlayerID     string  `json:"player_id"`
	PlayerName   string  `json:"player_name"`
	Team         string  `json:"team"`
	Position     string  `json:"position"`
	Opponent     string  `json:"opponent"`
	Week         int     `json:"week"`
	DefenseRank  int     `json:"defense_rank"`
	Favorability float64 `json:"favorability"`
}

// LeaderboardRow is one player's touchdown total for a category.
type LeaderboardRow struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	Team        string `json:"team"`
	Position    string `json:"position"`
	CategoryTDs int    `json:"category_tds"`
	TotalTDs    int    `json:"total_tds"`
}
