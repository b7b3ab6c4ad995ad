package httpclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/edublog/edublog-client/internal/core/domain"
	"github.com/edublog/edublog-client/internal/core/ports"
)

type roleKind int

const (
	roleNone roleKind = iota
	roleSession
	roleFixed
)

// RoleSource decides the value of the role header for one request.
type RoleSource struct {
	kind  roleKind
	fixed string
}

// FromSession sends the stored session role, or domain.AbsentRole when
// nobody is logged in.
func FromSession() RoleSource { return RoleSource{kind: roleSession} }

// Fixed sends the given role regardless of the session.
func Fixed(role string) RoleSource { return RoleSource{kind: roleFixed, fixed: role} }

func noRole() RoleSource { return RoleSource{kind: roleNone} }

// resolve returns the header value and whether the header is sent at all.
func (s RoleSource) resolve(ctx context.Context, store ports.SessionStore) (string, bool, error) {
	switch s.kind {
	case roleFixed:
		return s.fixed, true, nil
	case roleSession:
		role, ok, err := store.Role(ctx)
		if err != nil {
			return "", false, fmt.Errorf("read session role: %w", err)
		}
		if !ok {
			return domain.AbsentRole, true, nil
		}
		return role, true, nil
	default:
		return "", false, nil
	}
}

// RolePolicy names which role header each read endpoint sends. The deployed
// server was written against an app that hardcoded "admin" on post reads and
// "user" on search, so that remains the default. SessionRolePolicy sends the
// caller's own role everywhere and leaves authorization to the server.
type RolePolicy struct {
	Name     string
	Posts    RoleSource
	PostByID RoleSource
	Search   RoleSource
}

const (
	PolicyLegacy  = "legacy"
	PolicySession = "session"
)

func LegacyRolePolicy() RolePolicy {
	return RolePolicy{
		Name:     PolicyLegacy,
		Posts:    Fixed(domain.RoleAdmin),
		PostByID: Fixed(domain.RoleAdmin),
		Search:   Fixed(domain.RoleUser),
	}
}

func SessionRolePolicy() RolePolicy {
	return RolePolicy{
		Name:     PolicySession,
		Posts:    FromSession(),
		PostByID: FromSession(),
		Search:   FromSession(),
	}
}

// ParseRolePolicy maps a ROLE_HEADER_POLICY value to a policy.
func ParseRolePolicy(name string) (RolePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyLegacy:
		return LegacyRolePolicy(), nil
	case PolicySession:
		return SessionRolePolicy(), nil
	default:
		return RolePolicy{}, fmt.Errorf("%w: unknown role header policy %q", domain.ErrConfig, name)
	}
}
