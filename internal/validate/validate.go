// Package validate checks request bodies and path parameters against the
// rules declared in struct tags.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
)

// Message is the top-level text of every validation failure.
const Message = "Переданы некорректные данные"

// Source names where an invalid value came from.
const (
	SourceBody   = "body"
	SourceParams = "params"
)

// FieldError describes one rejected field.
type FieldError struct {
	Source  string `json:"source"`
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error is a validation failure. It is kept apart from application errors
// so the error handler can render the field details.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// As extracts a *Error from err's chain.
func As(err error) (*Error, bool) {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// usernamePattern allows ASCII letters, digits, dot, underscore and hyphen.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ReservedUsernames cannot be registered because they collide with routes.
var ReservedUsernames = map[string]bool{
	"me":     true,
	"signin": true,
	"signup": true,
	"users":  true,
	"cards":  true,
	"files":  true,
	"admin":  true,
}

// Validator wraps a configured go-playground validator.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the project's custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return usernamePattern.MatchString(s) && !ReservedUsernames[strings.ToLower(s)]
	})

	_ = v.RegisterValidation("entityid", func(fl validator.FieldLevel) bool {
		_, err := ulid.ParseStrict(fl.Field().String())
		return err == nil
	})

	// maxbytes bounds the UTF-8 encoded length, which is what bcrypt limits.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})

	_ = v.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
		s := strings.ToLower(fl.Field().String())
		return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
	})

	return &Validator{v: v}
}

// Struct validates s and returns a *Error listing every failed field.
func (val *Validator) Struct(source string, s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Source:  source,
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: describe(fe),
		})
	}
	return &Error{Fields: fields}
}

// Var validates a single value, such as a path parameter.
func (val *Validator) Var(source, field string, value any, tag string) error {
	err := val.v.Var(value, tag)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate %s: %w", field, err)
	}

	fe := verrs[0]
	return &Error{Fields: []FieldError{{
		Source:  source,
		Field:   field,
		Rule:    fe.Tag(),
		Message: describe(fe),
	}}}
}

// DecodeJSON reads a JSON body into dst, rejecting unknown fields and
// trailing data, then validates it.
func (val *Validator) DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return bodyError("body", "required", "request body is required")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return bodyError("body", "json", "request body must contain a single JSON object")
	}

	return val.Struct(SourceBody, dst)
}

func decodeError(err error) error {
	var maxBytesErr *http.MaxBytesError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &maxBytesErr):
		return err
	case errors.Is(err, io.EOF):
		return bodyError("body", "required", "request body is required")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return bodyError("body", "json", "request body is not valid JSON")
	case errors.As(err, &typeErr):
		return bodyError(typeErr.Field, "type", "must be of type "+typeErr.Type.String())
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return bodyError(field, "unknown", "field is not allowed")
	default:
		return bodyError("body", "json", "request body is not valid JSON")
	}
}

func bodyError(field, rule, message string) *Error {
	return &Error{Fields: []FieldError{{
		Source:  SourceBody,
		Field:   field,
		Rule:    rule,
		Message: message,
	}}}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "maxbytes":
		return "must be at most " + fe.Param() + " bytes long"
	case "email":
		return "must be a valid email"
	case "url", "weburl":
		return "must be a valid http(s) URL"
	case "username":
		return "may contain only letters, digits, '.', '_' and '-' and must not be reserved"
	case "entityid":
		return "must be a valid identifier"
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}
