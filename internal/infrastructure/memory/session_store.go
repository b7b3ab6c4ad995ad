package memory

import (
	"context"
	"sync/atomic"

	"github.com/edublog/edublog-client/internal/core/ports"
)

// SessionStore keeps the session role in process memory. Reads and writes
// are atomic replacements of a single pointer.
type SessionStore struct {
	role atomic.Pointer[string]
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Role(_ context.Context) (string, bool, error) {
	p := s.role.Load()
	if p == nil {
		return "", false, nil
	}
	return *p, true, nil
}

func (s *SessionStore) SetRole(_ context.Context, role string) error {
	s.role.Store(&role)
	return nil
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.role.Store(nil)
	return nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
