// Package memory is an in-process implementation of the user and card
// stores. It mirrors the PostgreSQL repository's semantics, including its
// sentinel errors, and is used by service and HTTP tests.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/mesto/mesto-api/internal/model"
	"github.com/mesto/mesto-api/internal/repository"
)

// Store keeps users and cards in maps guarded by a single RWMutex.
type Store struct {
	mu    sync.RWMutex
	users map[string]model.User
	cards map[string]model.Card
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users: make(map[string]model.User),
		cards: make(map[string]model.Card),
	}
}

// CreateUser stores a user, enforcing unique email and username.
func (s *Store) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
		if u.Username == user.Username {
			return repository.ErrUsernameExists
		}
	}

	s.users[user.ID] = *user
	return nil
}

// ListUsers returns every user ordered by creation time.
func (s *Store) ListUsers(_ context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.WithoutSecrets())
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// GetUserByID returns a user without secrets.
func (s *Store) GetUserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u.WithoutSecrets(), nil
}

// GetUserByUsername returns a user without secrets.
func (s *Store) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u.WithoutSecrets(), nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// GetUserCredentialsByEmail returns a user including email and password hash.
func (s *Store) GetUserCredentialsByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			c := u
			return &c, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// UpdateUserProfile sets name and about.
func (s *Store) UpdateUserProfile(_ context.Context, id, name, about string) (*model.User, error) {
	return s.updateUser(id, func(u *model.User) {
		u.Name = name
		u.About = about
	})
}

// UpdateUserAvatar sets the avatar URL.
func (s *Store) UpdateUserAvatar(_ context.Context, id, avatar string) (*model.User, error) {
	return s.updateUser(id, func(u *model.User) {
		u.Avatar = avatar
	})
}

func (s *Store) updateUser(id string, mutate func(*model.User)) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	mutate(&u)
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return u.WithoutSecrets(), nil
}

// CreateCard stores a card.
func (s *Store) CreateCard(_ context.Context, card *model.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if card.Likes == nil {
		card.Likes = []string{}
	}
	s.cards[card.ID] = cloneCard(*card)
	return nil
}

// ListCards returns every card, newest first.
func (s *Store) ListCards(_ context.Context) ([]*model.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := make([]*model.Card, 0, len(s.cards))
	for _, c := range s.cards {
		cc := cloneCard(c)
		cards = append(cards, &cc)
	}
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].CreatedAt.Equal(cards[j].CreatedAt) {
			return cards[i].ID > cards[j].ID
		}
		return cards[i].CreatedAt.After(cards[j].CreatedAt)
	})
	return cards, nil
}

// GetCardByID returns a card.
func (s *Store) GetCardByID(_ context.Context, id string) (*model.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cards[id]
	if !ok {
		return nil, repository.ErrCardNotFound
	}
	cc := cloneCard(c)
	return &cc, nil
}

// DeleteCard removes a card owned by ownerID.
func (s *Store) DeleteCard(_ context.Context, id, ownerID string) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cards[id]
	if !ok || c.OwnerID != ownerID {
		return nil, repository.ErrCardNotFound
	}
	delete(s.cards, id)
	return &c, nil
}

// AddLike adds userID to the card's likes once.
func (s *Store) AddLike(_ context.Context, cardID, userID string) (*model.Card, error) {
	return s.updateCard(cardID, func(c *model.Card) {
		if !slices.Contains(c.Likes, userID) {
			c.Likes = append(c.Likes, userID)
		}
	})
}

// RemoveLike removes userID from the card's likes.
func (s *Store) RemoveLike(_ context.Context, cardID, userID string) (*model.Card, error) {
	return s.updateCard(cardID, func(c *model.Card) {
		c.Likes = slices.DeleteFunc(c.Likes, func(id string) bool { return id == userID })
	})
}

func (s *Store) updateCard(id string, mutate func(*model.Card)) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cards[id]
	if !ok {
		return nil, repository.ErrCardNotFound
	}
	mutate(&c)
	s.cards[id] = c
	cc := cloneCard(c)
	return &cc, nil
}

func cloneCard(c model.Card) model.Card {
	c.Likes = append([]string{}, c.Likes...)
	return c
}
