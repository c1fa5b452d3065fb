package api

import (
	"context"
	"net/http"
)

// RefreshDependencies defines the interface for cache invalidation.
type RefreshDependencies interface {
	Refresh(ctx context.Context, season int) error
}

// RefreshHandler handles explicit cache refresh requests.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

type refreshResponse struct {
	Status string `json:"status"`
}

// HandlePostRefresh handles POST /refresh?season=N requests. The cached
// snapshot is dropped; the next query refetches from the provider.
func (h *RefreshHandler) HandlePostRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_refresh"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	season, err := seasonParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.Refresh(r.Context(), season); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Status: "refreshed"})
}
