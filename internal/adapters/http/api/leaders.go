package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/redzonehq/redzone/internal/domain/model"
	"github.com/redzonehq/redzone/internal/domain/types"
)

const defaultLeadersLimit = 25

// LeadersDependencies defines the interface for leaderboard queries.
type LeadersDependencies interface {
	Leaders(ctx context.Context, season int, pos model.Position, cat model.Category, limit int) ([]types.LeaderboardRow, error)
}

// LeadersHandler handles touchdown leaderboard requests.
type LeadersHandler struct {
	deps     LeadersDependencies
	maxLimit int
}

// NewLeadersHandler creates a new leaderboard handler.
func NewLeadersHandler(deps LeadersDependencies, maxLimit int) *LeadersHandler {
	return &LeadersHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetLeaders handles GET /leaders?season=N&position=P&category=C&limit=L.
func (h *LeadersHandler) HandleGetLeaders(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaders"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	season, err := seasonParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	limit := defaultLeadersLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if limit > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
	}

	cat := model.Category(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category"))))
	rows, err := h.deps.Leaders(r.Context(), season, positionParam(r), cat, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
