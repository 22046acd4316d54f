// Package cache provides Redis-backed ephemeral storage.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
)

// ResetCodeStore keeps password reset codes in Redis with a TTL, so
// codes expire on their own and survive nothing beyond their window.
type ResetCodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResetCodeStore creates a reset-code store.
func NewResetCodeStore(client *redis.Client, ttl time.Duration) *ResetCodeStore {
	return &ResetCodeStore{client: client, ttl: ttl}
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func codeKey(email string) string {
	return "reset_code:" + email
}

// Set stores a code for the email, replacing any previous one.
func (s *ResetCodeStore) Set(ctx context.Context, email, code string) error {
	if err := s.client.Set(ctx, codeKey(email), code, s.ttl).Err(); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

// Consume checks the code and deletes it on match. Returns false for
// missing, expired, or mismatched codes.
func (s *ResetCodeStore) Consume(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, codeKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, apperror.NewInternal(err)
	}
	if stored != code {
		return false, nil
	}
	if err := s.client.Del(ctx, codeKey(email)).Err(); err != nil {
		return false, apperror.NewInternal(err)
	}
	return true, nil
}
