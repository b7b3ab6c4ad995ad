// Package apitest runs an in-memory EduBlog API. It answers the same routes,
// status codes and bodies as the deployed server and records the headers it
// received, so client code can be exercised end to end without a network.
package apitest

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/edublog/edublog-client/internal/core/domain"
)

// Request is what the server saw of one call.
type Request struct {
	Method      string
	EscapedPath string
	Role        string
	HasRole     bool
}

// Server is the fake API. The zero value is not usable; call New.
type Server struct {
	e     *echo.Echo
	store *store

	mu       sync.Mutex
	requests []Request
}

func New(log zerolog.Logger) *Server {
	s := &Server{store: newStore()}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(s.record)

	anyone := RequireRole(domain.RoleAdmin, domain.RoleUser)
	admin := RequireRole(domain.RoleAdmin)

	e.POST("/auth/login", s.login)
	e.POST("/auth/register", s.register)

	e.GET("/posts", s.listPosts, anyone)
	e.GET("/posts/search/:term", s.searchPosts, anyone)
	e.GET("/posts/:id", s.getPost, anyone)
	e.POST("/posts/", s.createPost, admin)
	e.PUT("/posts/:id", s.updatePost, admin)
	e.DELETE("/posts/:id", s.deletePost, admin)

	e.GET("/user/:id", s.getUsers, admin)
	e.PUT("/user/:id", s.updateUser, admin)
	e.DELETE("/user/:id", s.deleteUser, admin)

	s.e = e
	return s
}

// Handler returns the HTTP handler, e.g. for httptest.NewServer.
func (s *Server) Handler() http.Handler { return s.e }

// Requests returns the calls received so far, oldest first.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// SeedUser registers a user directly, bypassing the API.
func (s *Server) SeedUser(reg domain.Registration) domain.User {
	u, err := s.store.register(reg)
	if err != nil {
		panic("apitest: seed user: " + err.Error())
	}
	return u
}

// SeedPost stores a post directly, bypassing the API.
func (s *Server) SeedPost(in domain.PostInput, status string) domain.Post {
	return s.store.createPost(in, status)
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := c.Request()
		values, has := r.Header[http.CanonicalHeaderKey(headerRole)]
		req := Request{Method: r.Method, EscapedPath: r.URL.EscapedPath(), HasRole: has}
		if has && len(values) > 0 {
			req.Role = values[0]
		}
		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.mu.Unlock()
		return next(c)
	}
}

// param returns the decoded path parameter. Echo may hand back the raw
// segment when the request path carried escapes.
func param(c echo.Context, name string) string {
	raw := c.Param(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
