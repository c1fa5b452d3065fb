package api

import (
	"context"
	"net/http"

	"github.com/redzonehq/redzone/internal/domain/model"
	"github.com/redzonehq/redzone/internal/domain/types"
)

// DefenseDependencies defines the interface for defense weakness queries.
type DefenseDependencies interface {
	DefenseWeakness(ctx context.Context, season int, pos model.Position) ([]types.DefenseWeaknessRow, error)
}

// DefenseHandler handles defense weakness requests.
type DefenseHandler struct {
	deps DefenseDependencies
}

// NewDefenseHandler creates a new defense weakness handler.
func NewDefenseHandler(deps DefenseDependencies) *DefenseHandler {
	return &DefenseHandler{deps: deps}
}

// HandleGetDefense handles GET /defense?season=N&position=P requests.
func (h *DefenseHandler) HandleGetDefense(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_defense"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	season, err := seasonParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	rows, err := h.deps.DefenseWeakness(r.Context(), season, positionParam(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
