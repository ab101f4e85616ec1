package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mesto/mesto-api/internal/apperr"
	"github.com/mesto/mesto-api/internal/auth"
	"github.com/mesto/mesto-api/internal/cache"
	"github.com/mesto/mesto-api/internal/metrics"
	"github.com/mesto/mesto-api/internal/model"
	"github.com/mesto/mesto-api/internal/repository"
)

// UserService handles account business logic.
type UserService struct {
	users   UserStore
	cache   UserCache
	tokens  TokenIssuer
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewUserService creates a new UserService. userCache may be nil.
func NewUserService(users UserStore, userCache UserCache, tokens TokenIssuer, logger *slog.Logger, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		users:   users,
		cache:   userCache,
		tokens:  tokens,
		logger:  logger,
		metrics: recorder,
	}
}

// RegisterInput defines input for signup.
type RegisterInput struct {
	Name     string
	About    string
	Avatar   string
	Email    string
	Password string
	Username string
}

// AuthResult is returned by signup and signin.
type AuthResult struct {
	Token string
	User  *model.User
}

// Register creates an account and issues a token for it.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           newID(),
		Name:         input.Name,
		About:        input.About,
		Avatar:       input.Avatar,
		Username:     input.Username,
		Email:        NormalizeEmail(input.Email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user.ApplyDefaults()

	if err := s.users.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return nil, apperr.Wrap(apperr.KindConflict, MsgEmailTaken, err)
		case errors.Is(err, repository.ErrUsernameExists):
			return nil, apperr.Wrap(apperr.KindConflict, MsgUsernameTaken, err)
		default:
			return nil, apperr.Internal(err)
		}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	s.metrics.IncUserRegistered()

	return &AuthResult{Token: token, User: user.WithoutSecrets()}, nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password fail identically.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetUserCredentialsByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			auth.BurnPasswordCheck(password)
			s.metrics.IncLogin(metrics.LoginFailure)
			return nil, apperr.Unauthorized(MsgBadCredentials)
		}
		return nil, apperr.Internal(err)
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		s.metrics.IncLogin(metrics.LoginFailure)
		return nil, apperr.Unauthorized(MsgBadCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	s.metrics.IncLogin(metrics.LoginSuccess)

	return &AuthResult{Token: token, User: user.WithoutSecrets()}, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// GetByID returns a user, consulting the cache first.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.cache != nil {
		cached, err := s.cache.GetUser(ctx, id)
		if err == nil {
			s.metrics.IncUserCacheHit()
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("user cache read failed",
				slog.String("user_id", id),
				slog.String("error", err.Error()),
			)
		}
		s.metrics.IncUserCacheMiss()
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err)
	}

	if s.cache != nil {
		if err := s.cache.SetUser(ctx, user); err != nil {
			s.logger.Warn("user cache write failed",
				slog.String("user_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	return user, nil
}

// GetByUsername returns a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, userLookupError(err)
	}
	return user, nil
}

// UpdateProfile sets the caller's name and about.
func (s *UserService) UpdateProfile(ctx context.Context, id, name, about string) (*model.User, error) {
	user, err := s.users.UpdateUserProfile(ctx, id, name, about)
	if err != nil {
		return nil, userLookupError(err)
	}
	s.refresh(ctx, user)
	s.metrics.IncProfileUpdated()
	return user, nil
}

// UpdateAvatar sets the caller's avatar URL.
func (s *UserService) UpdateAvatar(ctx context.Context, id, avatar string) (*model.User, error) {
	user, err := s.users.UpdateUserAvatar(ctx, id, avatar)
	if err != nil {
		return nil, userLookupError(err)
	}
	s.refresh(ctx, user)
	s.metrics.IncProfileUpdated()
	return user, nil
}

// refresh writes an updated profile through the cache. The cache keeps the
// newest version, so a read-through that loaded the old row cannot replace it.
// If the write fails the entry is dropped instead.
func (s *UserService) refresh(ctx context.Context, user *model.User) {
	if s.cache == nil {
		return
	}
	err := s.cache.SetUser(ctx, user)
	if err == nil {
		return
	}
	s.logger.Warn("user cache refresh failed",
		slog.String("user_id", user.ID),
		slog.String("error", err.Error()),
	)
	if err := s.cache.DeleteUser(ctx, user.ID); err != nil {
		s.logger.Warn("user cache invalidation failed",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}
}

func userLookupError(err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return apperr.Wrap(apperr.KindNotFound, MsgUserNotFound, err)
	}
	return apperr.Internal(err)
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
