package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mesto/mesto-api/internal/apperr"
	"github.com/mesto/mesto-api/internal/validate"
)

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%q)", err, rec.Body.String())
	}
	return body
}

func TestErrorHandler_Translate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantMessage    string
		wantValidation bool
	}{
		{
			name:        "not found",
			err:         apperr.NotFound("Пользователь не найден"),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Пользователь не найден",
		},
		{
			name:        "wrapped unauthorized",
			err:         fmt.Errorf("login: %w", apperr.Unauthorized("Неверный логин или пароль")),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Неверный логин или пароль",
		},
		{
			name:        "forbidden",
			err:         apperr.Forbidden("nope"),
			wantStatus:  http.StatusForbidden,
			wantMessage: "nope",
		},
		{
			name:        "conflict",
			err:         apperr.Conflict("taken"),
			wantStatus:  http.StatusConflict,
			wantMessage: "taken",
		},
		{
			name:        "internal hides cause",
			err:         apperr.Internal(errors.New("pq: password authentication failed")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: apperr.InternalMessage,
		},
		{
			name:        "unknown error is internal",
			err:         errors.New("dial tcp 10.0.0.1:5432: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: apperr.InternalMessage,
		},
		{
			name: "validation error",
			err: &validate.Error{Fields: []validate.FieldError{
				{Source: validate.SourceBody, Field: "email", Rule: "email", Message: "must be a valid email"},
			}},
			wantStatus:     http.StatusBadRequest,
			wantMessage:    validate.Message,
			wantValidation: true,
		},
		{
			name:        "body too large",
			err:         &http.MaxBytesError{Limit: 10},
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantMessage: MsgPayloadTooLarge,
		},
	}

	h := NewErrorHandler(discardLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			h.Handle(func(w http.ResponseWriter, r *http.Request) error {
				return tt.err
			})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}

			body := decodeErrorResponse(t, rec)
			if body.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMessage)
			}
			if (len(body.Validation) > 0) != tt.wantValidation {
				t.Errorf("validation details present = %v, want %v", len(body.Validation) > 0, tt.wantValidation)
			}
		})
	}
}

func TestErrorHandler_LogsInternalCause(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewErrorHandler(slog.New(slog.NewJSONHandler(&buf, nil)))

	rec := httptest.NewRecorder()
	h.Write(rec, httptest.NewRequest(http.MethodGet, "/users", nil), errors.New("secret driver detail"))

	if !strings.Contains(buf.String(), "secret driver detail") {
		t.Error("internal cause should be logged")
	}
	if strings.Contains(rec.Body.String(), "secret driver detail") {
		t.Error("internal cause must not be sent to the client")
	}
}

func TestErrorHandler_SuccessWritesNothingExtra(t *testing.T) {
	t.Parallel()

	h := NewErrorHandler(discardLogger())
	rec := httptest.NewRecorder()

	h.Handle(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusCreated)
		return nil
	})(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestErrorHandler_RouterFallbacks(t *testing.T) {
	t.Parallel()

	h := NewErrorHandler(discardLogger())

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("NotFound status = %d, want 404", rec.Code)
	}
	if got := decodeErrorResponse(t, rec).Message; got != MsgResourceNotFound {
		t.Errorf("NotFound message = %q, want %q", got, MsgResourceNotFound)
	}

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodPut, "/users", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("MethodNotAllowed status = %d, want 405", rec.Code)
	}
	if got := decodeErrorResponse(t, rec).Message; got != MsgMethodNotAllowed {
		t.Errorf("MethodNotAllowed message = %q, want %q", got, MsgMethodNotAllowed)
	}
}
