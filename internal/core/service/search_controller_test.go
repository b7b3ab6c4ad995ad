package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/edublog/edublog-client/internal/core/domain"
)

const testSettle = 20 * time.Millisecond

// collect returns an onResults callback feeding a buffered channel.
func collect() (func([]domain.Post), chan []domain.Post) {
	ch := make(chan []domain.Post, 8)
	return func(p []domain.Post) { ch <- p }, ch
}

func waitResults(t *testing.T, ch chan []domain.Post) []domain.Post {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(2 * time.Second):
		t.Fatalf("no results delivered")
		return nil
	}
}

func expectNoResults(t *testing.T, ch chan []domain.Post, d time.Duration) {
	t.Helper()
	select {
	case p := <-ch:
		t.Fatalf("unexpected delivery: %+v", p)
	case <-time.After(d):
	}
}

func TestSearchController_CoalescesRapidTyping(t *testing.T) {
	api := &stubAPI{search: func(_ context.Context, term string) ([]domain.Post, error) {
		return []domain.Post{{ID: "1", Title: term}}, nil
	}}
	onResults, ch := collect()
	c := NewSearchController(api, testSettle, onResults, zerolog.Nop())
	defer c.Close()

	c.SetQuery("a")
	c.SetQuery("ab")
	c.SetQuery("abc")
	if c.State() != SearchPending {
		t.Fatalf("state = %s, want pending", c.State())
	}

	got := waitResults(t, ch)
	if len(got) != 1 || got[0].Title != "abc" {
		t.Fatalf("unexpected results: %+v", got)
	}
	expectNoResults(t, ch, 5*testSettle)

	if calls := api.Calls(); !reflect.DeepEqual(calls, []string{"search:abc"}) {
		t.Fatalf("calls = %v, want exactly one search for abc", calls)
	}
	if c.State() != SearchIdle {
		t.Fatalf("state = %s, want idle", c.State())
	}
}

func TestSearchController_TrimsTerm(t *testing.T) {
	api := &stubAPI{search: func(context.Context, string) ([]domain.Post, error) { return nil, nil }}
	onResults, ch := collect()
	c := NewSearchController(api, testSettle, onResults, zerolog.Nop())
	defer c.Close()

	c.SetQuery("  math  ")
	if got := waitResults(t, ch); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if calls := api.Calls(); !reflect.DeepEqual(calls, []string{"search:math"}) {
		t.Fatalf("calls = %v", calls)
	}
}

func TestSearchController_EmptyQueryLoadsAllPosts(t *testing.T) {
	all := []domain.Post{{ID: "1"}, {ID: "2"}}
	api := &stubAPI{
		search: func(context.Context, string) ([]domain.Post, error) { return all[:1], nil },
		posts:  func(context.Context) ([]domain.Post, error) { return all, nil },
	}
	onResults, ch := collect()
	c := NewSearchController(api, testSettle, onResults, zerolog.Nop())
	defer c.Close()

	c.SetQuery("go")
	waitResults(t, ch)
	c.SetQuery("   ")
	if got := waitResults(t, ch); !reflect.DeepEqual(got, all) {
		t.Fatalf("expected unfiltered list, got %+v", got)
	}
	if calls := api.Calls(); !reflect.DeepEqual(calls, []string{"search:go", "posts"}) {
		t.Fatalf("calls = %v", calls)
	}
}

func TestSearchController_FailureDeliversEmptyWithoutAlert(t *testing.T) {
	api := &stubAPI{search: func(context.Context, string) ([]domain.Post, error) {
		return nil, &statusErr{status: 500, body: "boom"}
	}}
	onResults, ch := collect()
	c := NewSearchController(api, testSettle, onResults, zerolog.Nop())
	defer c.Close()

	c.SetQuery("x")
	got := waitResults(t, ch)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty results, got %#v", got)
	}
}

func TestSearchController_DiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	firstStarted := make(chan struct{})
	api := &stubAPI{search: func(ctx context.Context, term string) ([]domain.Post, error) {
		if term == "slow" {
			close(firstStarted)
			<-release
			// answers despite cancellation, like a server that ignores it
			return []domain.Post{{Title: "slow"}}, nil
		}
		return []domain.Post{{Title: term}}, nil
	}}
	onResults, ch := collect()
	c := NewSearchController(api, testSettle, onResults, zerolog.Nop())
	defer c.Close()

	c.SetQuery("slow")
	select {
	case <-firstStarted:
	case <-time.After(2 * time.Second):
		t.Fatalf("first search never fired")
	}
	if c.State() != SearchInFlight {
		t.Fatalf("state = %s, want in_flight", c.State())
	}

	c.SetQuery("fast")
	if got := waitResults(t, ch); len(got) != 1 || got[0].Title != "fast" {
		t.Fatalf("unexpected results: %+v", got)
	}

	close(release)
	expectNoResults(t, ch, 5*testSettle)
}

func TestSearchController_SupersededRequestIsCancelled(t *testing.T) {
	cancelled := make(chan error, 1)
	api := &stubAPI{search: func(ctx context.Context, term string) ([]domain.Post, error) {
		if term == "first" {
			<-ctx.Done()
			cancelled <- ctx.Err()
			return nil, ctx.Err()
		}
		return nil, nil
	}}
	onResults, ch := collect()
	c := NewSearchController(api, testSettle, onResults, zerolog.Nop())
	defer c.Close()

	c.SetQuery("first")
	time.Sleep(3 * testSettle)
	c.SetQuery("second")

	select {
	case err := <-cancelled:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("unexpected ctx error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("first request was not cancelled")
	}
	waitResults(t, ch)
	expectNoResults(t, ch, 5*testSettle)
}

func TestSearchController_NoCallbackAfterClose(t *testing.T) {
	api := &stubAPI{search: func(context.Context, string) ([]domain.Post, error) {
		return []domain.Post{{ID: "1"}}, nil
	}}
	onResults, ch := collect()
	c := NewSearchController(api, testSettle, onResults, zerolog.Nop())

	c.SetQuery("abc")
	c.Close()
	c.SetQuery("ignored")

	expectNoResults(t, ch, 5*testSettle)
	if calls := api.Calls(); len(calls) != 0 {
		t.Fatalf("search fired after Close: %v", calls)
	}
	if c.Query() != "abc" {
		t.Fatalf("query changed after Close: %q", c.Query())
	}
}

func TestSearchController_CloseDuringFlight(t *testing.T) {
	started := make(chan struct{})
	api := &stubAPI{search: func(ctx context.Context, _ string) ([]domain.Post, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	onResults, ch := collect()
	c := NewSearchController(api, testSettle, onResults, zerolog.Nop())

	c.SetQuery("abc")
	<-started
	c.Close()

	expectNoResults(t, ch, 5*testSettle)
}
