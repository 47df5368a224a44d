package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const maxUpdateAttempts = 3

// RedisStore keeps each owner's cart as a JSON snapshot so that several API
// instances can serve the same shopper.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, owner string) (Cart, error) {
	return r.load(ctx, r.client, owner)
}

// Update applies fn under WATCH so that concurrent writers to the same cart
// do not overwrite each other.
func (r *RedisStore) Update(ctx context.Context, owner string, fn Reducer) (Cart, error) {
	key := cacheKey(owner)
	var next Cart

	txf := func(tx *redis.Tx) error {
		current, err := r.load(ctx, tx, owner)
		if err != nil {
			return err
		}
		next = fn(current)
		body, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal cart failed: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, body, r.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return Cart{}, fmt.Errorf("redis update failed: %w", err)
		}
	}
	return Cart{}, fmt.Errorf("redis update failed: %w", redis.TxFailedErr)
}

func (r *RedisStore) Delete(ctx context.Context, owner string) error {
	if err := r.client.Del(ctx, cacheKey(owner)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisStore) load(ctx context.Context, c redis.Cmdable, owner string) (Cart, error) {
	data, err := c.Get(ctx, cacheKey(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, fmt.Errorf("redis get failed: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return Cart{}, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return cart, nil
}

func cacheKey(owner string) string {
	return fmt.Sprintf("cart:%s", owner)
}
