// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mesto/mesto-api/internal/apperr"
	"github.com/mesto/mesto-api/internal/auth"
	"github.com/mesto/mesto-api/internal/middleware"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// currentUserID returns the authenticated caller. Routes behind the auth
// middleware always have one; the check guards against mis-wiring.
func currentUserID(r *http.Request) (string, error) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		return "", apperr.Unauthorized(middleware.MsgUnauthorized)
	}
	return userID, nil
}
