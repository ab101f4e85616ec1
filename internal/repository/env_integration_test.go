//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/mesto/mesto-api/internal/testutil"
)

// ============================================================================
// Test Environment Setup
// ============================================================================

func newTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, repo
}

func createTestUser(ctx context.Context, t *testing.T, repo *Repository) *testUser {
	t.Helper()
	user := testutil.NewTestUser(t, testutil.UniqueID("user"))
	user.PasswordHash = "$2a$10$abcdefghijklmnopqrstuuVn2ZkHdP2Nqf3yKc1q5Fh9xGmH8aWey"
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return &testUser{ID: user.ID, Email: user.Email, Username: user.Username}
}

type testUser struct {
	ID       string
	Email    string
	Username string
}
