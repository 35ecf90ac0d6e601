package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voicelane/voice-agent/pkg/agent"
)

const (
	// Redis key prefix for session transcripts.
	sessionKeyPrefix = "session:"
	// Default TTL for session keys (24 hours).
	defaultTTL = 24 * time.Hour
)

// RedisStore implements Store on a Redis list per session. Each turn is one
// JSON-encoded list element, so append order is the list order.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed transcript store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

// Append implements Store. Refreshes the session TTL on every write.
func (s *RedisStore) Append(ctx context.Context, sessionID string, role agent.Role, content string) error {
	val, err := json.Marshal(agent.Turn{
		Role:    role,
		Content: strings.TrimSpace(content),
	})
	if err != nil {
		return fmt.Errorf("encode turn: %w", err)
	}

	key := s.key(sessionID)
	if err := s.client.RPush(ctx, key, val).Err(); err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	// Log-free best effort: a failed TTL refresh should not fail the append.
	_ = s.client.Expire(ctx, key, s.ttl).Err()
	return nil
}

// History implements Store.
func (s *RedisStore) History(ctx context.Context, sessionID string) ([]agent.Turn, error) {
	vals, err := s.client.LRange(ctx, s.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	turns := make([]agent.Turn, 0, len(vals))
	for _, v := range vals {
		var t agent.Turn
		if err := json.Unmarshal([]byte(v), &t); err != nil {
			return nil, fmt.Errorf("decode turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// key constructs the Redis key for a session ID.
func (s *RedisStore) key(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
