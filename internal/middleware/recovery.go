package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recoverer is a middleware that recovers from panics, logs them with the
// stack, and answers with the generic 500 body.
func Recoverer(logger *slog.Logger, errs *ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic recovered",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				errs.Write(w, r, fmt.Errorf("panic: %v: %w", rvr, errPanic))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

var errPanic = errors.New("handler panicked")
