package ports

import "context"

// SessionStore persists the role of the logged-in user. A single value is
// kept; Role reports ok=false while nobody has logged in.
type SessionStore interface {
	Role(ctx context.Context) (role string, ok bool, err error)
	SetRole(ctx context.Context, role string) error
	Clear(ctx context.Context) error
}
