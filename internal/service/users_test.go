package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesto/mesto-api/internal/apperr"
	"github.com/mesto/mesto-api/internal/auth"
	"github.com/mesto/mesto-api/internal/metrics"
	"github.com/mesto/mesto-api/internal/model"
	"github.com/mesto/mesto-api/internal/repository/memory"
)

type userEnv struct {
	svc     *UserService
	store   *memory.Store
	cache   *memory.UserCache
	tokens  *auth.TokenManager
	metrics *metrics.InMemoryRecorder
}

func newUserEnv(t *testing.T) *userEnv {
	t.Helper()

	tokens, err := auth.NewTokenManager("test-secret-test-secret-test-secret", 0)
	require.NoError(t, err)

	env := &userEnv{
		store:   memory.New(),
		cache:   memory.NewUserCache(),
		tokens:  tokens,
		metrics: metrics.NewInMemory(),
	}
	env.svc = NewUserService(env.store, env.cache, tokens, nil, env.metrics)
	return env
}

func (e *userEnv) register(t *testing.T, username, email string) *AuthResult {
	t.Helper()
	res, err := e.svc.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: "secret1",
		Username: username,
	})
	require.NoError(t, err)
	return res
}

func TestRegister_AppliesDefaultsAndIssuesToken(t *testing.T) {
	env := newUserEnv(t)

	res := env.register(t, "alice", "a@x.com")

	assert.Equal(t, model.DefaultUserName, res.User.Name)
	assert.Equal(t, model.DefaultUserAbout, res.User.About)
	assert.Equal(t, model.DefaultUserAvatar, res.User.Avatar)
	assert.Empty(t, res.User.PasswordHash)
	assert.Empty(t, res.User.Email)

	subject, err := env.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, subject)

	assert.Equal(t, uint64(1), env.metrics.Snapshot().UsersRegistered)
}

func TestRegister_StoresBcryptHash(t *testing.T) {
	env := newUserEnv(t)

	env.register(t, "alice", "a@x.com")

	stored, err := env.store.GetUserCredentialsByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	ok, err := auth.VerifyPassword("secret1", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegister_Duplicates(t *testing.T) {
	env := newUserEnv(t)
	env.register(t, "alice", "a@x.com")

	tests := []struct {
		name     string
		username string
		email    string
		wantMsg  string
	}{
		{"same email", "alice2", "a@x.com", MsgEmailTaken},
		{"same email different case", "alice3", "A@X.com", MsgEmailTaken},
		{"same username", "alice", "b@x.com", MsgUsernameTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Register(context.Background(), RegisterInput{
				Email:    tt.email,
				Password: "secret1",
				Username: tt.username,
			})

			appErr, ok := apperr.As(err)
			require.True(t, ok, "expected *apperr.Error, got %v", err)
			assert.Equal(t, apperr.KindConflict, appErr.Kind)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestLogin(t *testing.T) {
	env := newUserEnv(t)
	registered := env.register(t, "alice", "a@x.com")

	t.Run("valid credentials", func(t *testing.T) {
		res, err := env.svc.Login(context.Background(), "a@x.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, res.User.ID)
		assert.Empty(t, res.User.PasswordHash)

		subject, err := env.tokens.Verify(res.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, subject)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, wrongPass := env.svc.Login(context.Background(), "a@x.com", "wrong-password")
		_, unknown := env.svc.Login(context.Background(), "nobody@x.com", "secret1")

		for _, err := range []error{wrongPass, unknown} {
			appErr, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, apperr.KindUnauthorized, appErr.Kind)
			assert.Equal(t, MsgBadCredentials, appErr.Message)
		}
	})

	snap := env.metrics.Snapshot()
	assert.Equal(t, uint64(1), snap.LoginsSucceeded)
	assert.Equal(t, uint64(2), snap.LoginsFailed)
}

func TestGetByID_UsesCache(t *testing.T) {
	env := newUserEnv(t)
	res := env.register(t, "alice", "a@x.com")
	ctx := context.Background()

	first, err := env.svc.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", first.Username)
	assert.Equal(t, 1, env.cache.Len())

	second, err := env.svc.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	snap := env.metrics.Snapshot()
	assert.Equal(t, uint64(1), snap.UserCacheMisses)
	assert.Equal(t, uint64(1), snap.UserCacheHits)
}

func TestUpdateProfile_RefreshesCache(t *testing.T) {
	env := newUserEnv(t)
	res := env.register(t, "alice", "a@x.com")
	ctx := context.Background()

	_, err := env.svc.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	require.Equal(t, 1, env.cache.Len())

	updated, err := env.svc.UpdateProfile(ctx, res.User.ID, "Alice", "Diver")
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)

	cached, err := env.cache.GetUser(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Diver", cached.About)

	avatar, err := env.svc.UpdateAvatar(ctx, res.User.ID, "https://example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", avatar.Avatar)
	assert.Equal(t, "Alice", avatar.Name)

	me, err := env.svc.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", me.Avatar)
	assert.Equal(t, "Diver", me.About)
	assert.Empty(t, me.Email)
}

// interleavedStore runs onRead after a user row is loaded and before the
// caller sees it.
type interleavedStore struct {
	UserStore
	onRead func()
}

func (s *interleavedStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.UserStore.GetUserByID(ctx, id)
	if s.onRead != nil {
		fn := s.onRead
		s.onRead = nil
		fn()
	}
	return user, err
}

func TestGetByID_ConcurrentUpdateWinsCache(t *testing.T) {
	env := newUserEnv(t)
	res := env.register(t, "alice", "a@x.com")
	ctx := context.Background()

	store := &interleavedStore{UserStore: env.store}
	svc := NewUserService(store, env.cache, env.tokens, nil, env.metrics)

	// The update lands between the read-through's load and its cache fill.
	store.onRead = func() {
		time.Sleep(time.Millisecond)
		_, err := svc.UpdateProfile(ctx, res.User.ID, "Alice", "Updated")
		require.NoError(t, err)
	}

	stale, err := svc.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultUserAbout, stale.About)

	cached, err := env.cache.GetUser(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated", cached.About)

	me, err := svc.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated", me.About)
}

func TestUserLookups_NotFound(t *testing.T) {
	env := newUserEnv(t)
	ctx := context.Background()

	calls := map[string]func() error{
		"GetByID": func() error {
			_, err := env.svc.GetByID(ctx, "01HZY3Q4J8N7S6T5R4P3M2K1A0")
			return err
		},
		"GetByUsername": func() error {
			_, err := env.svc.GetByUsername(ctx, "nonexistent-id")
			return err
		},
		"UpdateProfile": func() error {
			_, err := env.svc.UpdateProfile(ctx, "01HZY3Q4J8N7S6T5R4P3M2K1A0", "Name", "About")
			return err
		},
		"UpdateAvatar": func() error {
			_, err := env.svc.UpdateAvatar(ctx, "01HZY3Q4J8N7S6T5R4P3M2K1A0", "https://example.com/a.png")
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			appErr, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, apperr.KindNotFound, appErr.Kind)
			assert.Equal(t, MsgUserNotFound, appErr.Message)
		})
	}
}

type failingUserStore struct {
	UserStore
	err error
}

func (f failingUserStore) ListUsers(context.Context) ([]*model.User, error) {
	return nil, f.err
}

func TestList_StoreFailureIsInternal(t *testing.T) {
	cause := errors.New("connection refused")
	svc := NewUserService(failingUserStore{err: cause}, nil, nil, nil, nil)

	_, err := svc.List(context.Background())

	assert.True(t, apperr.IsKind(err, apperr.KindInternal))
	assert.ErrorIs(t, err, cause)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.Com "))
}
