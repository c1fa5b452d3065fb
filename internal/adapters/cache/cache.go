// Package cache stores fetched season snapshots so repeated queries do not
// refetch upstream data. Invalidation is explicit, per season.
package cache

import (
	"context"
	"time"

	"github.com/redzonehq/redzone/internal/domain/model"
)

// Snapshot is one season's fetched tables plus fetch metadata.
type Snapshot struct {
	Season    int
	FetchedAt time.Time
	Records   []model.StatRecord
	Games     []model.Game
}

// Store provides read/write access to cached season snapshots.
type Store interface {
	// Season returns the cached snapshot for a season.
	// Returns ErrNotCached if the season has not been stored.
	Season(ctx context.Context, season int) (*Snapshot, error)

	// Put stores a snapshot, replacing any cached data for its season.
	Put(ctx context.Context, snap *Snapshot) error

	// Drop removes a season's cached data. Dropping an uncached season is
	// not an error.
	Drop(ctx context.Context, season int) error

	// Seasons lists the cached seasons in ascending order.
	Seasons(ctx context.Context) ([]int, error)

	// Close releases the underlying storage.
	Close() error
}
