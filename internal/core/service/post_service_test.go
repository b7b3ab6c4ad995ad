package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/edublog/edublog-client/internal/core/domain"
)

func TestPostService_Create_TrimsAndConfirms(t *testing.T) {
	var sent domain.PostInput
	api := &stubAPI{createPost: func(in domain.PostInput) (*domain.Result[domain.Post], error) {
		sent = in
		return &domain.Result[domain.Post]{Data: domain.Post{ID: "p1", Title: in.Title}, StatusCode: 201}, nil
	}}
	n := &stubNotifier{}
	svc := NewPostService(api, n, zerolog.Nop())

	post, err := svc.Create(context.Background(), domain.PostInput{Title: " Hello ", Content: "Body", Author: " Ana"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if post.ID != "p1" {
		t.Fatalf("unexpected post: %+v", post)
	}
	if sent.Title != "Hello" || sent.Author != "Ana" {
		t.Fatalf("input not trimmed: %+v", sent)
	}
	if got := n.Last(); got.title != titleSuccess || got.message != "Post created!" {
		t.Fatalf("unexpected alert: %+v", got)
	}
}

func TestPostService_Create_MissingFields(t *testing.T) {
	api := &stubAPI{}
	n := &stubNotifier{}
	svc := NewPostService(api, n, zerolog.Nop())

	_, err := svc.Create(context.Background(), domain.PostInput{Title: "   ", Content: "x", Author: "y"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(api.Calls()) != 0 {
		t.Fatalf("API was called: %v", api.Calls())
	}
	if got := n.Last().message; got != "Fill in title, content and author." {
		t.Fatalf("unexpected alert: %q", got)
	}
}

func TestPostService_Update_AlertsServerBodyVerbatim(t *testing.T) {
	api := &stubAPI{updatePost: func(string, domain.PostInput) (*domain.Result[domain.Post], error) {
		return nil, &statusErr{status: 403, body: "Access denied"}
	}}
	n := &stubNotifier{}
	svc := NewPostService(api, n, zerolog.Nop())

	_, err := svc.Update(context.Background(), "p1", domain.PostInput{Title: "a", Content: "b", Author: "c"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := n.Last(); got.title != titleError || got.message != "Access denied" {
		t.Fatalf("unexpected alert: %+v", got)
	}
	if svc.Loading() {
		t.Fatalf("loading flag left set after failure")
	}
}

func TestPostService_Delete_ReloadsAfterDelete(t *testing.T) {
	remaining := []domain.Post{{ID: "p2", Title: "Second"}}
	api := &stubAPI{
		deletePost: func(string) (*domain.Result[domain.Post], error) {
			return &domain.Result[domain.Post]{StatusCode: 200}, nil
		},
		posts: func(context.Context) ([]domain.Post, error) { return remaining, nil },
	}
	svc := NewPostService(api, &stubNotifier{}, zerolog.Nop())

	if err := svc.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if got, want := api.Calls(), []string{"delete-post:p1", "posts"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	if got := svc.Posts(); !reflect.DeepEqual(got, remaining) {
		t.Fatalf("cached posts = %+v", got)
	}
}

func TestPostService_Delete_FailureSkipsReload(t *testing.T) {
	api := &stubAPI{deletePost: func(string) (*domain.Result[domain.Post], error) {
		return nil, &statusErr{status: 404, body: "Post not found"}
	}}
	n := &stubNotifier{}
	svc := NewPostService(api, n, zerolog.Nop())

	if err := svc.Delete(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error")
	}
	if got := api.Calls(); len(got) != 1 {
		t.Fatalf("reload ran after failed delete: %v", got)
	}
	if n.Last().message != "Post not found" {
		t.Fatalf("unexpected alert: %+v", n.Last())
	}
}

func TestFilterByTitle(t *testing.T) {
	posts := []domain.Post{{Title: "Intro to Go"}, {Title: "Algebra"}, {Title: "GOlden ratio"}}

	if got := FilterByTitle(posts, " go "); len(got) != 2 {
		t.Fatalf("expected 2 matches, got %+v", got)
	}
	if got := FilterByTitle(posts, ""); len(got) != 3 {
		t.Fatalf("empty query should keep everything, got %d", len(got))
	}
}
