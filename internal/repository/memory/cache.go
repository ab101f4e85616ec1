package memory

import (
	"context"
	"sync"

	"github.com/mesto/mesto-api/internal/cache"
	"github.com/mesto/mesto-api/internal/model"
)

// UserCache is a map-backed user profile cache that reports misses with
// cache.ErrCacheMiss, like the Redis cache does.
type UserCache struct {
	mu    sync.Mutex
	users map[string]model.User
}

// NewUserCache returns an empty UserCache.
func NewUserCache() *UserCache {
	return &UserCache{users: make(map[string]model.User)}
}

// GetUser returns a cached user or cache.ErrCacheMiss.
func (c *UserCache) GetUser(_ context.Context, id string) (*model.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, ok := c.users[id]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return &u, nil
}

// SetUser caches a user without secrets unless a newer version is cached.
func (c *UserCache) SetUser(_ context.Context, user *model.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur, ok := c.users[user.ID]; ok && cur.UpdatedAt.After(user.UpdatedAt) {
		return nil
	}
	c.users[user.ID] = *user.WithoutSecrets()
	return nil
}

// DeleteUser drops a cached user.
func (c *UserCache) DeleteUser(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.users, id)
	return nil
}

// Len reports how many users are cached.
func (c *UserCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.users)
}
