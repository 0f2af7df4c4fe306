package credentials

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"chat-session/auth"
	"chat-session/contract"
	apperrors "chat-session/errors"
)

// DefaultClientID is used when a token request names no identity.
const DefaultClientID = "chat-client"

// Handler serves the broker's token endpoint. It supports both GET with a
// clientId query parameter and POST with a JSON body; a bearer session
// token, when present, overrides the claimed identity with the
// authenticated one.
type Handler struct {
	log      *slog.Logger
	issuer   contract.TokenSource
	sessions *auth.Sessions
}

func NewHandler(log *slog.Logger, issuer contract.TokenSource, sessions *auth.Sessions) *Handler {
	return &Handler{log: log, issuer: issuer, sessions: sessions}
}

type tokenRequestBody struct {
	ClientID string `json:"clientId"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var clientID string
	switch r.Method {
	case http.MethodGet:
		clientID = r.URL.Query().Get("clientId")
	case http.MethodPost:
		var body tokenRequestBody
		// An empty body is fine: the client id is optional.
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
			return
		}
		clientID = body.ClientID
	default:
		w.Header().Set("Allow", "GET, POST")
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	if clientID == "" {
		clientID = DefaultClientID
	}
	if identity, ok := h.bearerIdentity(r); ok {
		clientID = identity
	}

	token, err := h.issuer.IssueToken(r.Context(), clientID)
	if err != nil {
		h.log.Error("token generation failed", "clientId", clientID, "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, apperrors.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorBody{Error: "failed to generate token"})
		return
	}

	// The capability is the signed token request object, passed through
	// opaque for the transport library to consume.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(token.Capability)
}

// bearerIdentity resolves the authenticated user id from a session token.
func (h *Handler) bearerIdentity(r *http.Request) (string, bool) {
	if h.sessions == nil {
		return "", false
	}
	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return "", false
	}
	identity, err := h.sessions.Resolve(raw)
	if err != nil {
		h.log.Warn("ignoring invalid session token", "error", err)
		return "", false
	}
	return identity.UserID, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
