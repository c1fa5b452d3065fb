package provider

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/redzonehq/redzone/internal/domain/model"
)

// header maps column names to indexes, tolerating column reordering across
// nflverse releases.
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	cols, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := make(header, len(cols))
	for i, name := range cols {
		h[strings.TrimSpace(name)] = i
	}
	return h, nil
}

// col returns the first present column from candidates, or -1.
func (h header) col(candidates ...string) int {
	for _, name := range candidates {
		if i, ok := h[name]; ok {
			return i
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// intField parses an integer cell; empty and NA cells count as zero, and
// floating-point cells are truncated (nflverse exports some counts as "2.0").
func intField(row []string, idx int) int {
	s := field(row, idx)
	if s == "" || s == "NA" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// ParseSeasonStats parses a player_stats CSV into stat records. Rows for
// other seasons and rows without a player id are dropped.
func ParseSeasonStats(r io.Reader, season int) ([]model.StatRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	playerID := h.col("player_id")
	playerName := h.col("player_display_name", "player_name")
	team := h.col("recent_team", "team")
	opponent := h.col("opponent_team", "opponent")
	position := h.col("position")
	seasonCol := h.col("season")
	week := h.col("week")
	passTDs := h.col("passing_tds")
	rushTDs := h.col("rushing_tds")
	recTDs := h.col("receiving_tds")
	if playerID < 0 || position < 0 || week < 0 {
		return nil, errors.New("player stats header missing required columns")
	}

	var records []model.StatRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if field(row, playerID) == "" {
			continue
		}
		if seasonCol >= 0 && intField(row, seasonCol) != season {
			continue
		}
		records = append(records, model.StatRecord{
			PlayerID:     field(row, playerID),
			PlayerName:   field(row, playerName),
			Team:         field(row, team),
			Opponent:     field(row, opponent),
			Position:     model.Position(field(row, position)),
			Season:       season,
			Week:         intField(row, week),
			PassingTDs:   intField(row, passTDs),
			RushingTDs:   intField(row, rushTDs),
			ReceivingTDs: intField(row, recTDs),
		})
	}
	return records, nil
}

// ParseSchedule parses a games CSV into schedule pairings for one season.
func ParseSchedule(r io.Reader, season int) ([]model.Game, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	seasonCol := h.col("season")
	week := h.col("week")
	home := h.col("home_team")
	away := h.col("away_team")
	gameType := h.col("game_type", "type")
	if seasonCol < 0 || week < 0 || home < 0 || away < 0 {
		return nil, errors.New("schedule header missing required columns")
	}

	var games []model.Game
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if intField(row, seasonCol) != season {
			continue
		}
		games = append(games, model.Game{
			Season:   season,
			Week:     intField(row, week),
			HomeTeam: field(row, home),
			AwayTeam: field(row, away),
			GameType: field(row, gameType),
		})
	}
	return games, nil
}
