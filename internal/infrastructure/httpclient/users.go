package httpclient

import (
	"context"
	"net/http"

	"github.com/edublog/edublog-client/internal/core/domain"
)

// UsersByRole lists the users holding role; filtering happens server-side.
func (c *Client) UsersByRole(ctx context.Context, role string) ([]domain.User, error) {
	var users []domain.User
	_, err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/user/{role}",
		path:   pathOf("user", role),
		role:   FromSession(),
	}, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UserByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	_, err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/user/{id}",
		path:   pathOf("user", id),
		role:   FromSession(),
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces name, email, username and password of a user. There is
// no version check, so concurrent edits are last-write-wins.
func (c *Client) UpdateUser(ctx context.Context, id string, in domain.UserUpdate) error {
	_, err := c.do(ctx, request{
		method: http.MethodPut,
		route:  "/user/{id}",
		path:   pathOf("user", id),
		body:   in,
		role:   FromSession(),
	}, nil)
	return err
}

// DeleteUser removes a user. Deleting an id that no longer exists fails with
// a *RequestError matching domain.ErrNotFound.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		route:  "/user/{id}",
		path:   pathOf("user", id),
		role:   FromSession(),
	}, nil)
	return err
}
