package middleware

import (
	"net/http"
	"strings"

	"github.com/mesto/mesto-api/internal/apperr"
)

// SecurityConfig holds configuration for security headers.
type SecurityConfig struct {
	// IsDevelopment disables HSTS in dev environments.
	IsDevelopment bool
	// StaticPrefix marks paths served from disk. Their responses may be
	// cached and embedded by other origins.
	StaticPrefix string
}

// Security returns a middleware that applies security headers to all responses.
//
// Headers applied:
//   - Strict-Transport-Security (HSTS) - only in production
//   - X-Content-Type-Options: nosniff
//   - X-Frame-Options: DENY
//   - X-XSS-Protection: 0
//   - Referrer-Policy: strict-origin-when-cross-origin
//   - Content-Security-Policy: minimal policy for API responses
//   - Cross-Origin-Opener-Policy / Cross-Origin-Resource-Policy
//   - X-DNS-Prefetch-Control, X-Download-Options, X-Permitted-Cross-Domain-Policies
//   - Cache-Control: no-store for API responses
func Security(cfg SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()

			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-XSS-Protection", "0")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=(), usb=()")
			h.Set("Cross-Origin-Opener-Policy", "same-origin")
			h.Set("X-DNS-Prefetch-Control", "off")
			h.Set("X-Download-Options", "noopen")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")

			// max-age=31536000 = 1 year
			if !cfg.IsDevelopment {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
			}

			if cfg.StaticPrefix != "" && strings.HasPrefix(r.URL.Path, cfg.StaticPrefix) {
				// The web client loads images from here across origins.
				h.Set("Cross-Origin-Resource-Policy", "cross-origin")
				h.Set("Cache-Control", "public, max-age=3600")
			} else {
				h.Set("Cross-Origin-Resource-Policy", "same-origin")
				h.Set("Cache-Control", "no-store")
			}

			h.Del("Server")

			next.ServeHTTP(w, r)
		})
	}
}

// MaxBodySize returns a middleware that limits request body size.
// A declared Content-Length over the limit is rejected with 413 up front;
// otherwise reads past the limit fail with *http.MaxBytesError, which the
// ErrorHandler also maps to 413.
func MaxBodySize(maxBytes int64, errs *ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.ContentLength > maxBytes {
				errs.Write(w, r, apperr.New(apperr.KindPayloadTooLarge, MsgPayloadTooLarge))
				return
			}

			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}

			next.ServeHTTP(w, r)
		})
	}
}
