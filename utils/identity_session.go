// File: utils/identity_session.go
package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"pinkmint/models"
)

const IdentitySessionPrefix = "bookingIdentity:"

// IdentitySession is the cached result of a successful identity establishment.
// It lets a booking session reuse its identity across submissions and restarts
// instead of minting a fresh anonymous user each time.
type IdentitySession struct {
	Identity      models.Identity `json:"identity"`
	Method        string          `json:"method"` // "session", "token" or "anonymous"
	EstablishedAt time.Time       `json:"establishedAt"`
}

// RedisIdentityStore persists identity sessions in Redis with a TTL.
type RedisIdentityStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisIdentityStore wraps a Redis client as an identity session store.
func NewRedisIdentityStore(client *redis.Client, ttl time.Duration) *RedisIdentityStore {
	return &RedisIdentityStore{Client: client, TTL: ttl}
}

// Current returns the identity cached for the given booking session, or nil
// when none has been established yet.
func (s *RedisIdentityStore) Current(ctx context.Context, sessionID string) (*models.Identity, error) {
	data, err := s.Client.Get(ctx, IdentitySessionPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch identity session: %w", err)
	}
	var session IdentitySession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal identity session: %w", err)
	}
	return &session.Identity, nil
}

// Save stores the established identity for the given booking session.
func (s *RedisIdentityStore) Save(ctx context.Context, sessionID string, id models.Identity, method string) error {
	session := IdentitySession{
		Identity:      id,
		Method:        method,
		EstablishedAt: time.Now(),
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal identity session: %w", err)
	}
	if err := s.Client.Set(ctx, IdentitySessionPrefix+sessionID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save identity session: %w", err)
	}
	return nil
}

// Delete drops the cached identity for the given booking session.
func (s *RedisIdentityStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.Client.Del(ctx, IdentitySessionPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete identity session: %w", err)
	}
	return nil
}
