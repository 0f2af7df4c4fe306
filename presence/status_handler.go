package presence

import (
	"log/slog"
	"net/http"

	"chat-session/contract"
)

// StatusHandler serves the broker's online-users listing.
type StatusHandler struct {
	log      *slog.Logger
	statuses contract.StatusDirectory
}

func NewStatusHandler(log *slog.Logger, statuses contract.StatusDirectory) *StatusHandler {
	return &StatusHandler{log: log, statuses: statuses}
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	online, err := h.statuses.ListOnline()
	if err != nil {
		h.log.Error("status listing failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "status listing failed"})
		return
	}
	writeJSON(w, http.StatusOK, online)
}
