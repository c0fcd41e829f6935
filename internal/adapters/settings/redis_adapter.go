package settings

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/radyosim/backend/internal/domain/providers"
	redisclient "github.com/radyosim/backend/internal/infrastructure/clients/redis"
)

// RedisAdapter implements the SettingsStore interface using Redis.
// Preferences have no expiration; they survive until deleted.
type RedisAdapter struct {
	client *redisclient.Client
}

// NewRedisAdapter creates a new Redis settings adapter
func NewRedisAdapter(client *redisclient.Client) providers.SettingsStore {
	return &RedisAdapter{
		client: client,
	}
}

// Get retrieves a preference value; ok is false when the key is absent
func (a *RedisAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	result, err := a.client.Client().Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting: %w", err)
	}
	return result, true, nil
}

// Set stores a preference value
func (a *RedisAdapter) Set(ctx context.Context, key, value string) error {
	if err := a.client.Client().Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

// Delete removes a preference
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := a.client.Client().Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}
