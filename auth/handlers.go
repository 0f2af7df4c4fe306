package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"chat-session/contract"
	"chat-session/domain"
	apperrors "chat-session/errors"
)

// Handlers serves the broker's account endpoints: register and login.
type Handlers struct {
	log      *slog.Logger
	users    contract.UserDirectory
	sessions *Sessions
}

func NewHandlers(log *slog.Logger, users contract.UserDirectory, sessions *Sessions) *Handlers {
	return &Handlers{log: log, users: users, sessions: sessions}
}

type sessionResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := ValidateRegister(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	identity := domain.Identity{Name: req.Name, Email: req.Email}
	if err := h.users.Register(identity, req.Password); err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "email already registered"})
			return
		}
		h.log.Error("register failed", "email", req.Email, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "registration failed"})
		return
	}
	h.login(w, req.Email, req.Password)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := ValidateLogin(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	h.login(w, req.Email, req.Password)
}

func (h *Handlers) login(w http.ResponseWriter, email, password string) {
	identity, err := h.users.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
			return
		}
		h.log.Error("login failed", "email", email, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "login failed"})
		return
	}

	token, err := h.sessions.Mint(identity, time.Now())
	if err != nil {
		h.log.Error("session mint failed", "userId", identity.UserID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "login failed"})
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Token:  token,
		UserID: identity.UserID,
		Name:   identity.Name,
		Email:  identity.Email,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
