// Package aggregate computes ranked tables from season stat records.
//
// Every computation is a pure function of its inputs: records are never
// mutated, and re-running a computation on the same input yields identical
// output. Ties are broken by identifier so ordering stays deterministic.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/redzonehq/redzone/internal/domain/model"
	"github.com/redzonehq/redzone/internal/domain/types"
)

const defaultMatchupDepth = 5

// Engine runs the three aggregations over a record set.
type Engine struct {
	matchupDepth int
}

// New creates an Engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{
		matchupDepth: defaultMatchupDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefenseWeakness ranks defenses by touchdowns allowed to a position, most
// allowed first. Ties are broken by ascending team identifier.
func (e *Engine) DefenseWeakness(records []model.StatRecord, pos model.Position) ([]types.DefenseWeaknessRow, error) {
	if !pos.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPosition, pos)
	}

	allowed := make(map[string]int)
	for _, r := range records {
		if r.Position != pos {
			continue
		}
		allowed[r.Opponent] += r.TotalTDs()
	}

	rows := make([]types.DefenseWeaknessRow, 0, len(allowed))
	for team, tds := range allowed {
		rows = append(rows, types.DefenseWeaknessRow{
			Team:       team,
			Position:   string(pos),
			TDsAllowed: tds,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TDsAllowed != rows[j].TDsAllowed {
			return rows[i].TDsAllowed > rows[j].TDsAllowed
		}
		return rows[i].Team < rows[j].Team
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

// Leaders ranks players by touchdowns in one category, filtered by position.
// Players without a touchdown in the category are omitted. Ties are broken by
// ascending player identifier.
func (e *Engine) Leaders(records []model.StatRecord, pos model.Position, cat model.Category) ([]types.LeaderboardRow, error) {
	if !pos.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPosition, pos)
	}
	if !cat.ValidFor(pos) {
		return nil, fmt.Errorf("%w: %q for position %q", ErrInvalidCategory, cat, pos)
	}

	totals := make(map[string]*types.LeaderboardRow)
	lastWeek := make(map[string]int)
	for _, r := range records {
		if r.Position != pos {
			continue
		}
		row, ok := totals[r.PlayerID]
		if !ok {
			row = &types.LeaderboardRow{
				PlayerID:   r.PlayerID,
				PlayerName: r.PlayerName,
				Position:   string(pos),
			}
			totals[r.PlayerID] = row
		}
		row.CategoryTDs += r.CategoryTDs(cat)
		row.TotalTDs += r.TotalTDs()
		// Attribute the player to the team of their most recent game.
		if r.Week >= lastWeek[r.PlayerID] {
			lastWeek[r.PlayerID] = r.Week
			row.Team = r.Team
		}
	}

	rows := make([]types.LeaderboardRow, 0, len(totals))
	for _, row := range totals {
		if row.CategoryTDs == 0 {
			continue
		}
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CategoryTDs != rows[j].CategoryTDs {
			return rows[i].CategoryTDs > rows[j].CategoryTDs
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

// Matchups pairs each team's top producers against the opposing defense for
// every game in the given week. Favorability grows with the opposing
// defense's weakness and the player's season touchdown rate; ties are broken
// by ascending player identifier.
func (e *Engine) Matchups(records []model.StatRecord, schedule []model.Game, week int) ([]types.MatchupRow, error) {
	games := make([]model.Game, 0, len(schedule))
	for _, g := range schedule {
		if g.Week != week {
			continue
		}
		if g.GameType != "" && g.GameType != "REG" {
			continue
		}
		games = append(games, g)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: week %d", ErrNoScheduleData, week)
	}

	var rows []types.MatchupRow
	for _, pos := range model.Positions() {
		defRows, err := e.DefenseWeakness(records, pos)
		if err != nil {
			return nil, err
		}
		rankByTeam := make(map[string]int, len(defRows))
		for _, d := range defRows {
			rankByTeam[d.Team] = d.Rank
		}
		producers := topProducers(records, pos, e.matchupDepth)

		for _, g := range games {
			rows = append(rows, pairSide(producers, g.HomeTeam, g.AwayTeam, pos, week, rankByTeam, len(defRows))...)
			rows = append(rows, pairSide(producers, g.AwayTeam, g.HomeTeam, pos, week, rankByTeam, len(defRows))...)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Favorability != rows[j].Favorability {
			return rows[i].Favorability > rows[j].Favorability
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	return rows, nil
}

// producer is an offensive player's season production at one position.
type producer struct {
	playerID   string
	playerName string
	team       string
	totalTDs   int
	weeks      int
}

// tdRate is touchdowns per game played.
func (p producer) tdRate() float64 {
	if p.weeks == 0 {
		return 0
	}
	return float64(p.totalTDs) / float64(p.weeks)
}

// topProducers returns up to depth producers per team at a position, ranked
// by season touchdowns.
func topProducers(records []model.StatRecord, pos model.Position, depth int) map[string][]producer {
	byPlayer := make(map[string]*producer)
	weeksSeen := make(map[string]map[int]bool)
	lastWeek := make(map[string]int)
	for _, r := range records {
		if r.Position != pos {
			continue
		}
		p, ok := byPlayer[r.PlayerID]
		if !ok {
			p = &producer{playerID: r.PlayerID, playerName: r.PlayerName}
			byPlayer[r.PlayerID] = p
			weeksSeen[r.PlayerID] = make(map[int]bool)
		}
		p.totalTDs += r.TotalTDs()
		weeksSeen[r.PlayerID][r.Week] = true
		if r.Week >= lastWeek[r.PlayerID] {
			lastWeek[r.PlayerID] = r.Week
			p.team = r.Team
		}
	}

	byTeam := make(map[string][]producer)
	for id, p := range byPlayer {
		if p.totalTDs == 0 {
			continue
		}
		p.weeks = len(weeksSeen[id])
		byTeam[p.team] = append(byTeam[p.team], *p)
	}
	for team, ps := range byTeam {
		sort.Slice(ps, func(i, j int) bool {
			if ps[i].totalTDs != ps[j].totalTDs {
				return ps[i].totalTDs > ps[j].totalTDs
			}
			return ps[i].playerID < ps[j].playerID
		})
		if len(ps) > depth {
			ps = ps[:depth]
		}
		byTeam[team] = ps
	}
	return byTeam
}

// pairSide builds matchup rows for one offense against one defense.
func pairSide(producers map[string][]producer, offense, defense string, pos model.Position, week int, rankByTeam map[string]int, teamCount int) []types.MatchupRow {
	defRank, ok := rankByTeam[defense]
	if !ok {
		// No position records against this defense yet; nothing to rank.
		return nil
	}
	ps := producers[offense]
	rows := make([]types.MatchupRow, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, types.MatchupRow{
			PlayerID:    p.playerID,
			PlayerName:  p.playerName,
			Team:        offense,
			Position:    string(pos),
			Opponent:    defense,
			Week:        week,
			DefenseRank: defRank,
			// Inverted rank so a weaker defense scores higher, plus the
			// player's touchdowns per game.
			Favorability: float64(teamCount-defRank+1) + p.tdRate(),
		})
	}
	return rows
}
