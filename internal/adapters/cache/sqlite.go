package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite" // registers the "sqlite" driver

	"github.com/redzonehq/redzone/internal/domain/model"
	"github.com/redzonehq/redzone/pkg/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS season_meta (
	season     INTEGER PRIMARY KEY,
	fetched_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS stat_records (
	season        INTEGER NOT NULL,
	week          INTEGER NOT NULL,
	player_id     TEXT NOT NULL,
	player_name   TEXT,
	team          TEXT,
	opponent      TEXT,
	position      TEXT,
	passing_tds   INTEGER NOT NULL DEFAULT 0,
	rushing_tds   INTEGER NOT NULL DEFAULT 0,
	receiving_tds INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_stat_records_season ON stat_records(season);

CREATE TABLE IF NOT EXISTS schedule_games (
	season    INTEGER NOT NULL,
	week      INTEGER NOT NULL,
	home_team TEXT NOT NULL,
	away_team TEXT NOT NULL,
	game_type TEXT
);
CREATE INDEX IF NOT EXISTS idx_schedule_games_season ON schedule_games(season);
`

// SQLiteStore implements Store on a local sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) a sqlite-backed store at path.
// Use ":memory:" for an ephemeral store.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenStore, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: apply schema: %v", ErrOpenStore, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Season returns the cached snapshot for a season.
func (s *SQLiteStore) Season(ctx context.Context, season int) (*Snapshot, error) {
	var fetchedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM season_meta WHERE season = ?`, season,
	).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordCacheMiss()
		return nil, fmt.Errorf("%w: season %d", ErrNotCached, season)
	}
	if err != nil {
		return nil, fmt.Errorf("read season meta: %w", err)
	}

	snap := &Snapshot{Season: season}
	if t, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
		snap.FetchedAt = t
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT week, player_id, player_name, team, opponent, position,
		       passing_tds, rushing_tds, receiving_tds
		FROM stat_records WHERE season = ? ORDER BY rowid`, season)
	if err != nil {
		return nil, fmt.Errorf("read stat records: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r model.StatRecord
		var pos string
		r.Season = season
		if err := rows.Scan(&r.Week, &r.PlayerID, &r.PlayerName, &r.Team, &r.Opponent,
			&pos, &r.PassingTDs, &r.RushingTDs, &r.ReceivingTDs); err != nil {
			return nil, fmt.Errorf("scan stat record: %w", err)
		}
		r.Position = model.Position(pos)
		snap.Records = append(snap.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read stat records: %w", err)
	}

	games, err := s.db.QueryContext(ctx, `
		SELECT week, home_team, away_team, game_type
		FROM schedule_games WHERE season = ? ORDER BY rowid`, season)
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	defer games.Close()
	for games.Next() {
		g := model.Game{Season: season}
		if err := games.Scan(&g.Week, &g.HomeTeam, &g.AwayTeam, &g.GameType); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		snap.Games = append(snap.Games, g)
	}
	if err := games.Err(); err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}

	metrics.RecordCacheHit()
	return snap, nil
}

// Put stores a snapshot, replacing any cached data for its season.
func (s *SQLiteStore) Put(ctx context.Context, snap *Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := dropSeasonTx(ctx, tx, snap.Season); err != nil {
		return err
	}

	fetchedAt := snap.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO season_meta (season, fetched_at) VALUES (?, ?)`,
		snap.Season, fetchedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write season meta: %w", err)
	}

	for _, r := range snap.Records {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO stat_records
				(season, week, player_id, player_name, team, opponent, position,
				 passing_tds, rushing_tds, receiving_tds)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.Season, r.Week, r.PlayerID, r.PlayerName, r.Team, r.Opponent,
			string(r.Position), r.PassingTDs, r.RushingTDs, r.ReceivingTDs); err != nil {
			return fmt.Errorf("write stat record: %w", err)
		}
	}
	for _, g := range snap.Games {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO schedule_games (season, week, home_team, away_team, game_type)
			VALUES (?, ?, ?, ?, ?)`,
			snap.Season, g.Week, g.HomeTeam, g.AwayTeam, g.GameType); err != nil {
			return fmt.Errorf("write game: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put: %w", err)
	}
	s.updateSeasonGauge(ctx)
	return nil
}

// Drop removes a season's cached data.
func (s *SQLiteStore) Drop(ctx context.Context, season int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin drop: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := dropSeasonTx(ctx, tx, season); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit drop: %w", err)
	}
	metrics.RecordCacheRefresh()
	s.updateSeasonGauge(ctx)
	return nil
}

func dropSeasonTx(ctx context.Context, tx *sql.Tx, season int) error {
	for _, table := range []string{"season_meta", "stat_records", "schedule_games"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE season = ?`, season); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Seasons lists the cached seasons in ascending order.
func (s *SQLiteStore) Seasons(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT season FROM season_meta ORDER BY season`)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	defer rows.Close()

	var seasons []int
	for rows.Next() {
		var season int
		if err := rows.Scan(&season); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		seasons = append(seasons, season)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return seasons, nil
}

// Close releases the underlying database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close cache store: %w", err)
	}
	return nil
}

func (s *SQLiteStore) updateSeasonGauge(ctx context.Context) {
	if seasons, err := s.Seasons(ctx); err == nil {
		metrics.UpdateCachedSeasons(len(seasons))
	}
}
