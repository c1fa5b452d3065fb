package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/redzonehq/redzone/internal/domain/types"
)

// MatchupsDependencies defines the interface for matchup queries.
type MatchupsDependencies interface {
	Matchups(ctx context.Context, season, week int) ([]types.MatchupRow, error)
}

// MatchupsHandler handles matchup favorability requests.
type MatchupsHandler struct {
	deps MatchupsDependencies
}

// NewMatchupsHandler creates a new matchups handler.
func NewMatchupsHandler(deps MatchupsDependencies) *MatchupsHandler {
	return &MatchupsHandler{deps: deps}
}

// HandleGetMatchups handles GET /matchups?season=N&week=W requests.
func (h *MatchupsHandler) HandleGetMatchups(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_matchups"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	season, err := seasonParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	week, err := strconv.Atoi(r.URL.Query().Get("week"))
	if err != nil || week < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	rows, err := h.deps.Matchups(r.Context(), season, week)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
