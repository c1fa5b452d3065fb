// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/redzonehq/redzone/internal/adapters/provider"
	"github.com/redzonehq/redzone/internal/domain/aggregate"
	"github.com/redzonehq/redzone/internal/domain/model"
	"github.com/redzonehq/redzone/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	DefenseWeakness(ctx context.Context, season int, pos model.Position) ([]types.DefenseWeaknessRow, error)
	Matchups(ctx context.Context, season, week int) ([]types.MatchupRow, error)
	Leaders(ctx context.Context, season int, pos model.Position, cat model.Category, limit int) ([]types.LeaderboardRow, error)
	Refresh(ctx context.Context, season int) error
}

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	defenseHandler   *DefenseHandler
	matchupsHandler  *MatchupsHandler
	leadersHandler   *LeadersHandler
	refreshHandler   *RefreshHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		defenseHandler:   NewDefenseHandler(deps),
		matchupsHandler:  NewMatchupsHandler(deps),
		leadersHandler:   NewLeadersHandler(deps, maxLeaderboardLimit),
		refreshHandler:   NewRefreshHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/defense", MetricsMiddleware(s.defenseHandler.HandleGetDefense, "defense"))
	mux.HandleFunc("/matchups", MetricsMiddleware(s.matchupsHandler.HandleGetMatchups, "matchups"))
	mux.HandleFunc("/leaders", MetricsMiddleware(s.leadersHandler.HandleGetLeaders, "leaders"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "refresh"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps domain error kinds onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, aggregate.ErrInvalidPosition):
		writeError(w, http.StatusBadRequest, "invalid_position", err)
	case errors.Is(err, aggregate.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, "invalid_category", err)
	case errors.Is(err, aggregate.ErrNoScheduleData):
		writeError(w, http.StatusNotFound, "no_schedule_data", err)
	case errors.Is(err, provider.ErrDataUnavailable):
		writeError(w, http.StatusBadGateway, "data_unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// seasonParam parses an optional ?season= value; 0 means "use the default".
func seasonParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("season")
	if raw == "" {
		return 0, nil
	}
	season, err := strconv.Atoi(raw)
	if err != nil || season <= 0 {
		return 0, errors.New("season must be a positive integer")
	}
	return season, nil
}

// positionParam parses the required ?position= value, accepting any case.
func positionParam(r *http.Request) model.Position {
	return model.Position(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("position"))))
}
