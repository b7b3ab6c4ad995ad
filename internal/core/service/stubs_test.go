package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/edublog/edublog-client/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

// stubAPI implements every ports API interface; unset funcs fail the call.
type stubAPI struct {
	mu    sync.Mutex
	calls []string

	login       func(domain.Credentials) (*domain.Result[domain.User], error)
	register    func(domain.Registration) (*domain.Result[domain.User], error)
	usersByRole func(string) ([]domain.User, error)
	userByID    func(string) (*domain.User, error)
	updateUser  func(string, domain.UserUpdate) error
	deleteUser  func(string) error
	posts       func(context.Context) ([]domain.Post, error)
	search      func(context.Context, string) ([]domain.Post, error)
	postByID    func(string) (*domain.PostDetail, error)
	createPost  func(domain.PostInput) (*domain.Result[domain.Post], error)
	updatePost  func(string, domain.PostInput) (*domain.Result[domain.Post], error)
	deletePost  func(string) (*domain.Result[domain.Post], error)
}

var errNotStubbed = errors.New("not stubbed")

func (s *stubAPI) record(call string) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()
}

func (s *stubAPI) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *stubAPI) Login(_ context.Context, c domain.Credentials) (*domain.Result[domain.User], error) {
	s.record("login")
	if s.login == nil {
		return nil, errNotStubbed
	}
	return s.login(c)
}

func (s *stubAPI) Register(_ context.Context, r domain.Registration) (*domain.Result[domain.User], error) {
	s.record("register")
	if s.register == nil {
		return nil, errNotStubbed
	}
	return s.register(r)
}

func (s *stubAPI) UsersByRole(_ context.Context, role string) ([]domain.User, error) {
	s.record("users:" + role)
	if s.usersByRole == nil {
		return nil, errNotStubbed
	}
	return s.usersByRole(role)
}

func (s *stubAPI) UserByID(_ context.Context, id string) (*domain.User, error) {
	s.record("user:" + id)
	if s.userByID == nil {
		return nil, errNotStubbed
	}
	return s.userByID(id)
}

func (s *stubAPI) UpdateUser(_ context.Context, id string, in domain.UserUpdate) error {
	s.record("update-user:" + id)
	if s.updateUser == nil {
		return errNotStubbed
	}
	return s.updateUser(id, in)
}

func (s *stubAPI) DeleteUser(_ context.Context, id string) error {
	s.record("delete-user:" + id)
	if s.deleteUser == nil {
		return errNotStubbed
	}
	return s.deleteUser(id)
}

func (s *stubAPI) Posts(ctx context.Context) ([]domain.Post, error) {
	s.record("posts")
	if s.posts == nil {
		return nil, errNotStubbed
	}
	return s.posts(ctx)
}

func (s *stubAPI) SearchPosts(ctx context.Context, term string) ([]domain.Post, error) {
	s.record("search:" + term)
	if s.search == nil {
		return nil, errNotStubbed
	}
	return s.search(ctx, term)
}

func (s *stubAPI) PostByID(_ context.Context, id string) (*domain.PostDetail, error) {
	s.record("post:" + id)
	if s.postByID == nil {
		return nil, errNotStubbed
	}
	return s.postByID(id)
}

func (s *stubAPI) CreatePost(_ context.Context, in domain.PostInput) (*domain.Result[domain.Post], error) {
	s.record("create-post")
	if s.createPost == nil {
		return nil, errNotStubbed
	}
	return s.createPost(in)
}

func (s *stubAPI) UpdatePost(_ context.Context, id string, in domain.PostInput) (*domain.Result[domain.Post], error) {
	s.record("update-post:" + id)
	if s.updatePost == nil {
		return nil, errNotStubbed
	}
	return s.updatePost(id, in)
}

func (s *stubAPI) DeletePost(_ context.Context, id string) (*domain.Result[domain.Post], error) {
	s.record("delete-post:" + id)
	if s.deletePost == nil {
		return nil, errNotStubbed
	}
	return s.deletePost(id)
}

type alert struct{ title, message string }

type stubNotifier struct {
	mu     sync.Mutex
	alerts []alert
}

func (n *stubNotifier) Alert(title, message string) {
	n.mu.Lock()
	n.alerts = append(n.alerts, alert{title, message})
	n.mu.Unlock()
}

func (n *stubNotifier) All() []alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]alert, len(n.alerts))
	copy(out, n.alerts)
	return out
}

func (n *stubNotifier) Last() alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.alerts) == 0 {
		return alert{}
	}
	return n.alerts[len(n.alerts)-1]
}

type stubSession struct {
	role   string
	ok     bool
	setErr error
}

func (s *stubSession) Role(context.Context) (string, bool, error) { return s.role, s.ok, nil }

func (s *stubSession) SetRole(_ context.Context, role string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.role, s.ok = role, true
	return nil
}

func (s *stubSession) Clear(context.Context) error {
	s.role, s.ok = "", false
	return nil
}

// statusErr is a minimal domain.StatusError, the shape the HTTP client
// returns for non-2xx responses.
type statusErr struct {
	status int
	body   string
}

func (e *statusErr) Error() string        { return fmt.Sprintf("status %d: %s", e.status, e.body) }
func (e *statusErr) HTTPStatus() int      { return e.status }
func (e *statusErr) ResponseBody() string { return e.body }
