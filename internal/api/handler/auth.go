package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"instantshare/internal/api/types"
	"instantshare/internal/auth"
	"instantshare/internal/service"
	"instantshare/internal/util"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	service  service.InstantService
	sessions *auth.SessionManager
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc service.InstantService, sessions *auth.SessionManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  svc,
		sessions: sessions,
		logger:   logger,
	}
}

// CredentialsRequest represents the request body for register and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles the account creation request.
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, types.NewUserResponse(user))
}

// Login handles the login request and opens a session.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	token := h.sessions.Create(user.ID)
	auth.WriteCookie(w, token)

	respondWithJSON(h.logger, w, http.StatusOK, types.NewUserResponse(user))
}

// Logout drops the server-side session and clears the cookie.
// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := auth.ReadCookie(r); ok {
		h.sessions.Destroy(token)
	}
	auth.ClearCookie(w)

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Logged out"})
}
