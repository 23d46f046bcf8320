package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"instantshare/internal/util"
)

// DefaultTimeout bounds request handling at the router level.
const DefaultTimeout = 60 * time.Second

// respondWithJSON sends a JSON response with the given status code.
func respondWithJSON(logger *slog.Logger, w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service errors to HTTP status codes.
func respondWithError(logger *slog.Logger, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = util.ErrInvalidInput.Error()
	case util.IsError(err, util.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = util.ErrInvalidCredentials.Error()
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrInsufficientCredits):
		statusCode = http.StatusPaymentRequired
		message = util.ErrInsufficientCredits.Error()
	case util.IsError(err, util.ErrDuplicateUsername):
		statusCode = http.StatusConflict
		message = util.ErrDuplicateUsername.Error()
	case util.IsError(err, util.ErrExpired):
		statusCode = http.StatusConflict
		message = util.ErrExpired.Error()
	case util.IsError(err, util.ErrSelfPurchase):
		statusCode = http.StatusConflict
		message = util.ErrSelfPurchase.Error()
	case util.IsError(err, util.ErrExclusiveSold):
		statusCode = http.StatusConflict
		message = util.ErrExclusiveSold.Error()
	case util.IsError(err, util.ErrAlreadyOwned):
		statusCode = http.StatusConflict
		message = util.ErrAlreadyOwned.Error()
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(logger, w, statusCode, map[string]string{"error": message})
}
