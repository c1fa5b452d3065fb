// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redzonehq/redzone/internal/adapters/cache"
	"github.com/redzonehq/redzone/internal/adapters/provider"
	"github.com/redzonehq/redzone/internal/domain/aggregate"
	"github.com/redzonehq/redzone/internal/domain/model"
	"github.com/redzonehq/redzone/internal/domain/types"
	"github.com/redzonehq/redzone/pkg/logger"
	"github.com/redzonehq/redzone/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultSeason       = 2024
	defaultMatchupDepth = 5
	defaultCachePath    = "redzone.db"
)

// Service answers aggregation queries over cached season snapshots.
type Service struct {
	mu sync.RWMutex

	// Core components
	provider provider.Provider
	store    cache.Store
	engine   *aggregate.Engine

	// Configuration
	season       int
	matchupDepth int
	cachePath    string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithProvider injects a data provider (defaults to the nflverse client).
func WithProvider(p provider.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithCacheStore injects a season cache store (defaults to sqlite).
func WithCacheStore(store cache.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCachePath sets the sqlite path used when no store is injected.
func WithCachePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.cachePath = path
		}
	}
}

// WithDefaultSeason sets the season used when a query passes 0.
func WithDefaultSeason(season int) Option {
	return func(s *Service) {
		if season > 0 {
			s.season = season
		}
	}
}

// WithMatchupDepth caps producers per team in matchup rows.
func WithMatchupDepth(depth int) Option {
	return func(s *Service) {
		if depth > 0 {
			s.matchupDepth = depth
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		season:       defaultSeason,
		matchupDepth: defaultMatchupDepth,
		cachePath:    defaultCachePath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.provider == nil {
		s.provider = provider.NewNFLVerse()
	}
	if s.store == nil {
		store, err := cache.NewSQLiteStore(ctx, s.cachePath)
		if err != nil {
			return fmt.Errorf("start service: %w", err)
		}
		s.store = store
	}
	s.engine = aggregate.New(aggregate.WithMatchupDepth(s.matchupDepth))

	s.started = true
	s.logger.Info(ctx, "analytics service started",
		logger.Int("defaultSeason", s.season),
		logger.Int("matchupDepth", s.matchupDepth),
		logger.String("cachePath", s.cachePath),
	)
	return nil
}

// Stop releases the service components.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing cache store failed", logger.Error(err))
		}
	}
	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

// resolveSeason maps 0 to the configured default.
func (s *Service) resolveSeason(season int) int {
	if season <= 0 {
		return s.season
	}
	return season
}

// loadSeason returns the season snapshot, fetching and caching it on a miss.
func (s *Service) loadSeason(ctx context.Context, season int) (*cache.Snapshot, error) {
	snap, err := s.store.Season(ctx, season)
	if err == nil {
		metrics.UpdateRecordsInScope(len(snap.Records))
		return snap, nil
	}
	if !errors.Is(err, cache.ErrNotCached) {
		return nil, err
	}

	s.logger.Info(ctx, "season not cached; fetching upstream", logger.Int("season", season))
	records, err := s.provider.SeasonStats(ctx, season)
	if err != nil {
		return nil, err
	}
	games, err := s.provider.Schedule(ctx, season)
	if err != nil {
		return nil, err
	}
	snap = &cache.Snapshot{
		Season:    season,
		FetchedAt: time.Now().UTC(),
		Records:   records,
		Games:     games,
	}
	if err := s.store.Put(ctx, snap); err != nil {
		// A cache write failure should not fail the query.
		s.logger.Warn(ctx, "caching season snapshot failed",
			logger.Int("season", season), logger.Error(err))
	}
	metrics.UpdateRecordsInScope(len(snap.Records))
	return snap, nil
}

// DefenseWeakness ranks defenses by touchdowns allowed to a position.
func (s *Service) DefenseWeakness(ctx context.Context, season int, pos model.Position) ([]types.DefenseWeaknessRow, error) {
	season = s.resolveSeason(season)
	snap, err := s.loadSeason(ctx, season)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.engine.DefenseWeakness(snap.Records, pos)
	if err != nil {
		metrics.RecordAggregationError("defense_weakness")
		return nil, err
	}
	metrics.RecordAggregationDuration("defense_weakness", float64(time.Since(start).Milliseconds()))
	return rows, nil
}

// Matchups pairs top producers against weak defenses for a week.
func (s *Service) Matchups(ctx context.Context, season, week int) ([]types.MatchupRow, error) {
	season = s.resolveSeason(season)
	snap, err := s.loadSeason(ctx, season)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.engine.Matchups(snap.Records, snap.Games, week)
	if err != nil {
		metrics.RecordAggregationError("matchups")
		return nil, err
	}
	metrics.RecordAggregationDuration("matchups", float64(time.Since(start).Milliseconds()))
	return rows, nil
}

// Leaders ranks players by category touchdowns. A positive limit truncates
// the result.
func (s *Service) Leaders(ctx context.Context, season int, pos model.Position, cat model.Category, limit int) ([]types.LeaderboardRow, error) {
	season = s.resolveSeason(season)
	snap, err := s.loadSeason(ctx, season)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.engine.Leaders(snap.Records, pos, cat)
	if err != nil {
		metrics.RecordAggregationError("leaders")
		return nil, err
	}
	metrics.RecordAggregationDuration("leaders", float64(time.Since(start).Milliseconds()))
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// Refresh drops a season's cached snapshot; the next query refetches it.
func (s *Service) Refresh(ctx context.Context, season int) error {
	season = s.resolveSeason(season)
	if err := s.store.Drop(ctx, season); err != nil {
		return err
	}
	s.logger.Info(ctx, "season cache dropped", logger.Int("season", season))
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"defaultSeason": s.season,
		"matchupDepth":  s.matchupDepth,
	}
	if s.started {
		if seasons, err := s.store.Seasons(context.Background()); err == nil {
			stats["cachedSeasons"] = seasons
			metrics.UpdateCachedSeasons(len(seasons))
		}
	}
	return stats
}
