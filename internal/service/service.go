// Package service provides business logic for the application.
package service

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/mesto/mesto-api/internal/model"
)

// User-facing messages.
const (
	MsgUserNotFound      = "Пользователь не найден"
	MsgBadCredentials    = "Неверный логин или пароль"
	MsgEmailTaken        = "Пользователь с таким email уже существует"
	MsgUsernameTaken     = "Пользователь с таким username уже существует"
	MsgCardNotFound      = "Карточка не найдена"
	MsgForeignCardDelete = "Нельзя удалить чужую карточку"
)

// UserStore persists users. The default lookups never return the email or
// password hash; GetUserCredentialsByEmail is the only one that does.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserCredentialsByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, id, name, about string) (*model.User, error)
	UpdateUserAvatar(ctx context.Context, id, avatar string) (*model.User, error)
}

// CardStore persists cards.
type CardStore interface {
	CreateCard(ctx context.Context, card *model.Card) error
	ListCards(ctx context.Context) ([]*model.Card, error)
	GetCardByID(ctx context.Context, id string) (*model.Card, error)
	DeleteCard(ctx context.Context, id, ownerID string) (*model.Card, error)
	AddLike(ctx context.Context, cardID, userID string) (*model.Card, error)
	RemoveLike(ctx context.Context, cardID, userID string) (*model.Card, error)
}

// UserCache is a read-through cache for user profiles.
type UserCache interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id string) error
}

// TokenIssuer signs access tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// newID generates a new entity ID.
func newID() string {
	return ulid.Make().String()
}
