package main

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRedactURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no credentials", "redis://localhost:6379/0", "redis://localhost:6379/0"},
		{"user and password", "postgres://mesto:s3cret@db:5432/mesto", "postgres://mesto@db:5432/mesto"},
		{"password only", "redis://:s3cret@cache:6379", "redis://redacted@cache:6379"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redactURL(tt.in); got != tt.want {
				t.Errorf("redactURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeError(t *testing.T) {
	dsn := "postgres://mesto:s3cret@db:5432/mesto"

	msg := sanitizeError(errors.New("dial "+dsn+" failed"), dsn)
	if strings.Contains(msg, "s3cret") {
		t.Errorf("secret leaked: %s", msg)
	}
	if !strings.Contains(msg, "postgres://mesto@db:5432/mesto") {
		t.Errorf("expected redacted DSN in %q", msg)
	}

	msg = sanitizeError(errors.New("connect: host=db password=hunter2 user=mesto"))
	if strings.Contains(msg, "hunter2") {
		t.Errorf("password leaked: %s", msg)
	}

	if sanitizeError(nil) != "" {
		t.Error("expected empty string for nil error")
	}
}
