package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"instantshare/internal/api/types"
	"instantshare/internal/service"
)

// UserHandler handles profile and account endpoints.
type UserHandler struct {
	service service.InstantService
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc service.InstantService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: svc,
		logger:  logger,
	}
}

// Me returns the current user's own record.
// GET /me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.User(r.Context(), currentUserID(r))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.NewUserResponse(user))
}

// Profile returns a creator's page: created instants plus top fans.
// GET /users/{username}
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	view, err := h.service.Profile(r.Context(), username)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.NewProfileResponse(view))
}

// CheckIn handles the daily credit grant.
// POST /checkin
func (h *UserHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.CheckIn(r.Context(), currentUserID(r), time.Now().UTC())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"credits":       user.Credits,
		"last_check_in": user.LastCheckIn,
	})
}
