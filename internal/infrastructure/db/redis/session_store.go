package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/edublog/edublog-client/internal/core/ports"
)

const roleKey = "role"

// SessionStore persists the session role in Redis under <prefix>role.
// The value is a plain string without expiry.
type SessionStore struct {
	client redis.Cmdable
	prefix string
}

// NewSessionStore wraps client. prefix namespaces the key, e.g. "edublog:".
func NewSessionStore(client redis.Cmdable, prefix string) *SessionStore {
	return &SessionStore{client: client, prefix: prefix}
}

func (s *SessionStore) key() string {
	return s.prefix + roleKey
}

func (s *SessionStore) Role(ctx context.Context) (string, bool, error) {
	val, err := s.client.Get(ctx, s.key()).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session: get role: %w", err)
	}
	return val, true, nil
}

func (s *SessionStore) SetRole(ctx context.Context, role string) error {
	if err := s.client.Set(ctx, s.key(), role, 0).Err(); err != nil {
		return fmt.Errorf("session: set role: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("session: clear role: %w", err)
	}
	return nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
