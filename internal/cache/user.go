package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mesto/mesto-api/internal/model"
)

const (
	userKeyPrefix = "user:"

	// DefaultUserTTL is the TTL for cached user profiles.
	DefaultUserTTL = 5 * time.Minute
)

// setUserScript stores a profile unless the cached one has a newer version.
// Entries are hashes with a "v" version field and a "data" JSON field.
var setUserScript = redis.NewScript(`
	local key = KEYS[1]
	local version = tonumber(ARGV[1])

	local current = redis.call('HGET', key, 'v')
	if current and tonumber(current) > version then
		return 0
	end

	redis.call('HSET', key, 'v', ARGV[1], 'data', ARGV[2])
	redis.call('PEXPIRE', key, ARGV[3])
	return 1
`)

// GetUser retrieves a cached user profile by ID.
// Returns ErrCacheMiss if not found or the entry is unreadable.
func (c *Cache) GetUser(ctx context.Context, id string) (*model.User, error) {
	data, err := c.client.HGet(ctx, userKeyPrefix+id, "data").Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		// Corrupted entry, drop it and report a miss.
		c.client.Del(ctx, userKeyPrefix+id)
		return nil, ErrCacheMiss
	}

	return &user, nil
}

// SetUser caches a user profile. Secrets are never cached. A profile older
// than the cached one, by UpdatedAt, is ignored, so a slow read-through
// cannot overwrite a concurrent update.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user.WithoutSecrets())
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	err = setUserScript.Run(ctx, c.client,
		[]string{userKeyPrefix + user.ID},
		user.UpdatedAt.UnixMicro(),
		data,
		c.userTTL.Milliseconds(),
	).Err()
	if err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// DeleteUser removes a cached user profile.
func (c *Cache) DeleteUser(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, userKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
