// Package testutil holds helpers shared by unit and integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mesto/mesto-api/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a user with default profile fields and a unique
// email derived from username. PasswordHash is left empty.
func NewTestUser(t testing.TB, username string) *model.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := &model.User{
		ID:        NewID(),
		Username:  username,
		Email:     fmt.Sprintf("%s-%d@example.com", username, now.UnixNano()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	user.ApplyDefaults()
	return user
}

// NewTestCard creates a card owned by ownerID with no likes.
func NewTestCard(t testing.TB, ownerID, name string) *model.Card {
	t.Helper()
	return &model.Card{
		ID:        NewID(),
		Name:      name,
		Link:      "https://example.com/" + name + ".jpg",
		OwnerID:   ownerID,
		Likes:     []string{},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// NewID returns a fresh ULID string.
func NewID() string {
	return ulid.Make().String()
}

// UniqueID generates a unique name for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
