// Package provider fetches season-scoped stat and schedule tables from the
// upstream data source.
package provider

import (
	"context"

	"github.com/redzonehq/redzone/internal/domain/model"
)

// Provider is the synchronous fetch contract the service depends on.
// Implementations may block on network I/O; failures surface as
// ErrDataUnavailable.
type Provider interface {
	// SeasonStats returns every player stat line for a season.
	SeasonStats(ctx context.Context, season int) ([]model.StatRecord, error)

	// Schedule returns every scheduled game for a season.
	Schedule(ctx context.Context, season int) ([]model.Game, error)
}
