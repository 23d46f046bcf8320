package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"instantshare/internal/api/types"
	"instantshare/internal/media"
	"instantshare/internal/service"
	"instantshare/internal/util"
)

// maxUploadBytes caps the multipart form size of a post request.
const maxUploadBytes = 32 << 20

// InstantHandler handles instant posting, browsing and purchasing.
type InstantHandler struct {
	service service.InstantService
	media   *media.Storage
	logger  *slog.Logger
}

// NewInstantHandler creates a new InstantHandler.
func NewInstantHandler(svc service.InstantService, storage *media.Storage, logger *slog.Logger) *InstantHandler {
	return &InstantHandler{
		service: svc,
		media:   storage,
		logger:  logger,
	}
}

// Create handles posting a new instant from a multipart form with fields
// title, exclusive and media.
// POST /instants
func (h *InstantHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	title := r.FormValue("title")
	exclusive := false
	if v := r.FormValue("exclusive"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			respondWithError(h.logger, w, util.ErrInvalidInput)
			return
		}
		exclusive = parsed
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	defer file.Close()

	filename, err := h.media.Save(header.Filename, file)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	instant, err := h.service.CreateInstant(r.Context(), currentUserID(r), title, filename, exclusive, time.Now().UTC())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, types.NewInstantResponse(instant))
}

// Wall handles the active wall listing, soonest-expiring first.
// GET /instants
func (h *InstantHandler) Wall(w http.ResponseWriter, r *http.Request) {
	wall, err := h.service.ActiveWall(r.Context(), time.Now().UTC())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"instants": types.NewInstantResponses(wall),
	})
}

// Detail handles the instant detail view.
// GET /instants/{instantID}
func (h *InstantHandler) Detail(w http.ResponseWriter, r *http.Request) {
	instantID := chi.URLParam(r, "instantID")

	view, err := h.service.InstantDetail(r.Context(), currentUserID(r), instantID, time.Now().UTC())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"instant":  types.NewInstantResponse(view.Instant),
		"can_view": view.CanView,
	})
}

// Purchase handles unlocking an instant for the current user.
// POST /instants/{instantID}/purchase
func (h *InstantHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	instantID := chi.URLParam(r, "instantID")

	instant, buyer, err := h.service.Purchase(r.Context(), currentUserID(r), instantID, time.Now().UTC())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message":     "Purchase successful",
		"instant_id":  instant.ID,
		"price":       instant.Price,
		"new_balance": buyer.Credits,
	})
}

// Media serves the stored file behind an instant when the current user may
// view it.
// GET /instants/{instantID}/media
func (h *InstantHandler) Media(w http.ResponseWriter, r *http.Request) {
	instantID := chi.URLParam(r, "instantID")

	instant, err := h.service.MediaAccess(r.Context(), currentUserID(r), instantID, time.Now().UTC())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	path, err := h.media.Path(instant.Filename)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	http.ServeFile(w, r, path)
}
