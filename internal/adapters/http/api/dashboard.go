package api

import (
	"io"
	"net/http"
	"time"
)

// dashboardHandler serves the embedded dashboard page.
type dashboardHandler struct{}

func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests.
// Returns an HTML page that queries the JSON endpoints and renders
// filterable tables and bar charts client-side.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	// http.ServeFileFS requires Go 1.22; this is its equivalent on Go 1.21.
	f, err := dashboardFS.Open("dashboard.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	modTime := time.Time{}
	if fi, err := f.Stat(); err == nil {
		modTime = fi.ModTime()
	}
	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, "dashboard.html", modTime, rs)
}
