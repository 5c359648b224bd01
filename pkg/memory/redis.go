package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore is an optional Store backing for cross-run memoization, wired by
// the caller when it wants namespaced memory to outlive a single process.
//
// Grounded on RedisCache
// (backend/internal/infrastructure/cache/redis.go): same client-wrapper
// shape, generalized from a flat cache to the Store contract's
// namespace/key/list operations. Values round-trip through JSON so callers
// can store any of the provider config's scalar/slice/map shapes.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already-configured client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(namespace, key string) string {
	return namespace + ":" + key
}

func redisSetKey(namespace string) string {
	return namespace + ":__keys__"
}

func (s *RedisStore) Get(ctx context.Context, namespace, key string) (any, bool, error) {
	raw, err := s.client.Get(ctx, redisKey(namespace, key)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, false, fmt.Errorf("memory: decode %s/%s: %w", namespace, key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Has(ctx context.Context, namespace, key string) (bool, error) {
	n, err := s.client.Exists(ctx, redisKey(namespace, key)).Result()
	return n > 0, err
}

func (s *RedisStore) Set(ctx context.Context, namespace, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("memory: encode %s/%s: %w", namespace, key, err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisKey(namespace, key), raw, 0)
	pipe.SAdd(ctx, redisSetKey(namespace), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Append(ctx context.Context, namespace, key string, value any) error {
	existing, ok, err := s.Get(ctx, namespace, key)
	if err != nil {
		return err
	}
	if !ok {
		return s.Set(ctx, namespace, key, []any{value})
	}
	seq, ok := existing.([]any)
	if !ok {
		seq = []any{existing}
	}
	return s.Set(ctx, namespace, key, append(seq, value))
}

func (s *RedisStore) Increment(ctx context.Context, namespace, key string, amount float64) (float64, error) {
	existing, ok, err := s.Get(ctx, namespace, key)
	if err != nil {
		return 0, err
	}
	var n float64
	if ok {
		n, err = toFloat(existing)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrNotNumeric, err)
		}
	}
	n += amount
	if err := s.Set(ctx, namespace, key, n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *RedisStore) Delete(ctx context.Context, namespace, key string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, redisKey(namespace, key))
	pipe.SRem(ctx, redisSetKey(namespace), key)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Clear(ctx context.Context, namespace string) error {
	keys, err := s.client.SMembers(ctx, redisSetKey(namespace)).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	pipe := s.client.TxPipeline()
	for _, k := range keys {
		pipe.Del(ctx, redisKey(namespace, k))
	}
	pipe.Del(ctx, redisSetKey(namespace))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) List(ctx context.Context, namespace string) (map[string]any, error) {
	keys, err := s.client.SMembers(ctx, redisSetKey(namespace)).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		v, ok, err := s.Get(ctx, namespace, k)
		if err != nil {
			return nil, err
		}
		if ok {
			out[k] = v
		}
	}
	return out, nil
}
