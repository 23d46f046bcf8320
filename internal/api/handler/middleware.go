package handler

import (
	"context"
	"log/slog"
	"net/http"

	"instantshare/internal/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// SessionAuth resolves the session cookie to a user id and stores it in the
// request context. Requests without a live session get 401.
func SessionAuth(sessions *auth.SessionManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.ReadCookie(r)
			if !ok {
				respondWithJSON(logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			userID, ok := sessions.Resolve(token)
			if !ok {
				auth.ClearCookie(w)
				respondWithJSON(logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// currentUserID returns the authenticated user id set by SessionAuth.
func currentUserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
