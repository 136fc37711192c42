package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session as JSON under session:<id>. Every Get and Save
// pushes the expiry forward by ttl.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	data, err := r.client.GetEx(ctx, sessionKey(id), r.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewSession(id, r.now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *domain.Session) error {
	if s == nil || s.ID == "" {
		return ErrInvalidID
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}
