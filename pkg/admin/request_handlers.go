package admin

import (
	"net/http"
	"strconv"

	"github.com/claudiu-carv/ats-mock-simulator/pkg/requestlog"
)

// RequestListResponse is the GET /requests payload.
type RequestListResponse struct {
	Requests []*requestlog.Entry `json:"requests"`
	Total    int                 `json:"total"`
}

func (a *API) handleListRequests(w http.ResponseWriter, r *http.Request) {
	if a.history == nil {
		writeError(w, http.StatusNotFound, "no_history", "Request history is not enabled")
		return
	}

	filter := &requestlog.Filter{
		Method:     r.URL.Query().Get("method"),
		Path:       r.URL.Query().Get("path"),
		EndpointID: r.URL.Query().Get("endpoint_id"),
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_status", "status must be numeric")
			return
		}
		filter.StatusCode = status
	}
	filter.Limit = intQuery(r, "limit", 100)
	filter.Offset = intQuery(r, "offset", 0)

	entries := a.history.List(filter)
	writeJSON(w, http.StatusOK, RequestListResponse{
		Requests: entries,
		Total:    a.history.Count(),
	})
}

func (a *API) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	if a.history == nil {
		writeError(w, http.StatusNotFound, "no_history", "Request history is not enabled")
		return
	}
	entry := a.history.Get(r.PathValue("id"))
	if entry == nil {
		writeError(w, http.StatusNotFound, "not_found", "Request log entry not found")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (a *API) handleClearRequests(w http.ResponseWriter, r *http.Request) {
	if a.history == nil {
		writeError(w, http.StatusNotFound, "no_history", "Request history is not enabled")
		return
	}
	a.history.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
