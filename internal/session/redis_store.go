package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/tourfront/internal/view"
)

const keyPrefix = "session:inquiries:"

// RedisStore keeps view state as JSON under session:inquiries:{id}.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore stores state in rdb, expiring it after ttl.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Key is the Redis key holding the state of session id.
func Key(id string) string { return keyPrefix + id }

func (s *RedisStore) Load(ctx context.Context, id string) (*view.InquiriesState, error) {
	bs, err := s.rdb.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return view.NewInquiriesState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	st := view.NewInquiriesState()
	if err := json.Unmarshal(bs, st); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return st, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, st *view.InquiriesState) error {
	bs, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}
	if err := s.rdb.Set(ctx, Key(id), bs, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	return nil
}
