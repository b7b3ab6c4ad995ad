package memory

import (
	"context"
	"testing"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore()

	if _, ok, _ := s.Role(ctx); ok {
		t.Fatalf("new store should have no role")
	}
	if err := s.SetRole(ctx, "admin"); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if role, ok, _ := s.Role(ctx); !ok || role != "admin" {
		t.Fatalf("got %q ok=%v", role, ok)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := s.Role(ctx); ok {
		t.Fatalf("role survived Clear")
	}
}
