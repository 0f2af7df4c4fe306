package presence

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"chat-session/domain"
)

// Handler serves the broker's notify-connection endpoint: clients report a
// successful authentication and the broker fans it into the presence
// channel and the directory.
type Handler struct {
	log      *slog.Logger
	notifier *Notifier
}

func NewHandler(log *slog.Logger, notifier *Notifier) *Handler {
	return &Handler{log: log, notifier: notifier}
}

type notifyRequest struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.UserID == "" || req.UserName == "" || req.UserEmail == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	h.notifier.NotifyConnected(r.Context(), domain.Identity{
		UserID: req.UserID,
		Name:   req.UserName,
		Email:  req.UserEmail,
	})

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
