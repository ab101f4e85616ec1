package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mesto/mesto-api/internal/apperr"
	"github.com/mesto/mesto-api/internal/auth"
)

// AccessTokenHeader is the legacy header some clients send the token in.
const AccessTokenHeader = "X-Access-Token"

// TokenVerifier checks an access token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger   *slog.Logger
	Verifier TokenVerifier
	Errors   *ErrorHandler
}

// Auth returns a middleware that requires a valid access token.
// On success the caller's Identity is attached to the request context.
// Any failure is a 401 and the next handler never runs.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractToken(r)
			if !ok {
				logAuthFailure(cfg.Logger, r, "missing_token")
				cfg.Errors.Write(w, r, apperr.Unauthorized(MsgUnauthorized))
				return
			}

			userID, err := cfg.Verifier.Verify(token)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, auth.ErrTokenExpired) {
					reason = "expired_token"
				}
				logAuthFailure(cfg.Logger, r, reason)
				cfg.Errors.Write(w, r, apperr.Wrap(apperr.KindUnauthorized, MsgUnauthorized, err))
				return
			}

			ctx := auth.ContextWithIdentity(r.Context(), auth.Identity{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken reads the token from "Authorization: Bearer <token>",
// falling back to the X-Access-Token header. The boolean is false when
// neither header carries a usable token.
func extractToken(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return "", false
		}
		token = strings.TrimSpace(token)
		return token, token != ""
	}

	token := strings.TrimSpace(r.Header.Get(AccessTokenHeader))
	token = strings.TrimPrefix(token, "Bearer ")
	return token, token != ""
}

func logAuthFailure(logger *slog.Logger, r *http.Request, reason string) {
	if logger == nil {
		return
	}
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
}
