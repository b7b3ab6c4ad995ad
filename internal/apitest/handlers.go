package apitest

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edublog/edublog-client/internal/core/domain"
)

// loginResponse mirrors the deployed server, which returns the user row
// flat, password column included.
type loginResponse struct {
	domain.User
	Password string `json:"password"`
}

type credentialsRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) login(c echo.Context) error {
	var req credentialsRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	rec, err := s.store.authenticate(req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{User: rec.User, Password: string(rec.passwordHash)})
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	u, err := s.store.register(domain.Registration(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

func (s *Server) listPosts(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.listPosts(""))
}

func (s *Server) searchPosts(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.listPosts(param(c, "term")))
}

type postDetailResponse struct {
	domain.Post
	Comments []json.RawMessage `json:"comments"`
}

func (s *Server) getPost(c echo.Context) error {
	p, err := s.store.post(param(c, "id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postDetailResponse{Post: p, Comments: []json.RawMessage{}})
}

type postRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author"  validate:"required"`
}

func (s *Server) createPost(c echo.Context) error {
	var req postRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p := s.store.createPost(domain.PostInput(req), domain.PostStatusPublished)
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) updatePost(c echo.Context) error {
	var req postRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p, err := s.store.updatePost(param(c, "id"), domain.PostInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) deletePost(c echo.Context) error {
	p, err := s.store.deletePost(param(c, "id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// getUsers serves both GET /user/{role} and GET /user/{id}: a role name
// lists users, anything else looks up one user.
func (s *Server) getUsers(c echo.Context) error {
	key := param(c, "id")
	if key == domain.RoleAdmin || key == domain.RoleUser {
		return c.JSON(http.StatusOK, s.store.usersByRole(key))
	}
	u, err := s.store.user(key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

type userUpdateRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) updateUser(c echo.Context) error {
	var req userUpdateRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	u, err := s.store.updateUser(param(c, "id"), domain.UserUpdate(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) deleteUser(c echo.Context) error {
	if err := s.store.deleteUser(param(c, "id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
