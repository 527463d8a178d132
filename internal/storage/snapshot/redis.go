// internal/storage/snapshot/redis.go
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/newthinker/recruitdash/internal/core"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "recruitdash:snapshot"

// RedisStore keeps snapshots as JSON values in Redis, shared between
// dashboard replicas.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps client. A zero ttl keeps snapshots until replaced.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(kind core.Kind) string {
	return s.prefix + ":" + string(kind)
}

func (s *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot %s: %w", snap.Kind, err)
	}
	if err := s.client.Set(ctx, s.key(snap.Kind), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("saving snapshot %s: %w", snap.Kind, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, kind core.Kind) (Snapshot, bool, error) {
	raw, err := s.client.Get(ctx, s.key(kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("loading snapshot %s: %w", kind, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, false, core.WrapError(core.ErrMalformedData,
			fmt.Errorf("decoding snapshot %s: %w", kind, err))
	}
	if snap.Points == nil {
		snap.Points = []core.DataPoint{}
	}
	return snap, true, nil
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
