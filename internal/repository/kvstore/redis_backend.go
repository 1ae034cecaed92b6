package kvstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "campusevents:"

type redisBackend struct {
	client *redis.Client
}

// NewRedisBackend returns a Backend storing each collection under campusevents:<key>.
func NewRedisBackend(client *redis.Client) Backend {
	return &redisBackend{client: client}
}

func (b *redisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := b.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

func (b *redisBackend) Set(ctx context.Context, key string, value []byte) error {
	return b.client.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}
