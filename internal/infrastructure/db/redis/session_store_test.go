package redis

import (
	"context"
	"os"
	"testing"
	"time"
)

// Runs against a live server when REDIS_TEST_ADDR is set.
func TestSessionStore_Lifecycle(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, Config{Addr: addr, Timeout: time.Second})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	s := NewSessionStore(client, "edublog-test:")
	t.Cleanup(func() { _ = s.Clear(ctx) })

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, err := s.Role(ctx); err != nil || ok {
		t.Fatalf("expected no role, got ok=%v err=%v", ok, err)
	}
	if err := s.SetRole(ctx, "user"); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if role, ok, err := s.Role(ctx); err != nil || !ok || role != "user" {
		t.Fatalf("got %q ok=%v err=%v", role, ok, err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected error for unreachable server")
	}
}
