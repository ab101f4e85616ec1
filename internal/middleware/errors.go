package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mesto/mesto-api/internal/apperr"
	"github.com/mesto/mesto-api/internal/validate"
)

// Fixed messages for router-level failures.
const (
	MsgResourceNotFound = "resource not found"
	MsgMethodNotAllowed = "method not allowed"
	MsgUnauthorized     = "Необходима авторизация"
	MsgTooManyRequests  = "Слишком много запросов, попробуйте позже"
	MsgPayloadTooLarge  = "Слишком большой запрос"
)

// AppHandler is an HTTP handler that reports failures by returning them.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Message    string                `json:"message"`
	Validation []validate.FieldError `json:"validation,omitempty"`
}

// ErrorHandler turns errors into HTTP responses. It is the only place
// that writes failure bodies.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates an ErrorHandler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{logger: logger}
}

// Handle adapts an AppHandler to http.HandlerFunc.
func (h *ErrorHandler) Handle(fn AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.Write(w, r, err)
		}
	}
}

// Write renders err. Validation errors become 400 with field details,
// application errors use their kind's status, and anything else is a 500
// whose cause is logged but never sent.
func (h *ErrorHandler) Write(w http.ResponseWriter, r *http.Request, err error) {
	status, body := h.translate(err)

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			slog.String("request_id", GetRequestID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	writeJSON(w, status, body)
}

func (h *ErrorHandler) translate(err error) (int, ErrorResponse) {
	if vErr, ok := validate.As(err); ok {
		return http.StatusBadRequest, ErrorResponse{
			Message:    validate.Message,
			Validation: vErr.Fields,
		}
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge, ErrorResponse{Message: MsgPayloadTooLarge}
	}

	if appErr, ok := apperr.As(err); ok {
		msg := appErr.Message
		if appErr.Kind == apperr.KindInternal || msg == "" {
			msg = apperr.InternalMessage
		}
		return appErr.Status(), ErrorResponse{Message: msg}
	}

	return http.StatusInternalServerError, ErrorResponse{Message: apperr.InternalMessage}
}

// NotFound answers requests that matched no route.
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Write(w, r, apperr.NotFound(MsgResourceNotFound))
}

// MethodNotAllowed answers requests whose path matched but method did not.
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Message: MsgMethodNotAllowed})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
