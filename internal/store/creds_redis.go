package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"newsline/internal/session"
)

// RedisCredentials is a Redis-backed session.CredentialStore, keyed so
// that several apps can share one Redis instance.
type RedisCredentials struct {
	client *redis.Client
	key    string
}

// NewRedisCredentials creates a credential store under the given key.
func NewRedisCredentials(client *redis.Client, key string) *RedisCredentials {
	return &RedisCredentials{
		client: client,
		key:    key,
	}
}

func (r *RedisCredentials) Save(ctx context.Context, creds session.Credentials) error {
	payload, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	return r.client.Set(ctx, r.key, payload, 0).Err()
}

func (r *RedisCredentials) Load(ctx context.Context) (session.Credentials, error) {
	payload, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Credentials{}, session.ErrNoCredentials
		}

		return session.Credentials{}, err
	}

	var creds session.Credentials
	if err := json.Unmarshal(payload, &creds); err != nil {
		return session.Credentials{}, fmt.Errorf("decode credentials: %w", err)
	}

	return creds, nil
}

func (r *RedisCredentials) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
