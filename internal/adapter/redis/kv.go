package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
)

// KV is a domain.KeyValueStore on plain Redis strings. Keys never expire.
type KV struct {
	rdb *goredis.Client
}

func NewKV(rdb *goredis.Client) *KV {
	return &KV{rdb: rdb}
}

func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := k.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (k *KV) Set(ctx context.Context, key, value string) error {
	return k.rdb.Set(ctx, key, value, 0).Err()
}

func (k *KV) Delete(ctx context.Context, key string) error {
	return k.rdb.Del(ctx, key).Err()
}
