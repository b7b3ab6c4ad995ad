package httpclient

import (
	"context"
	"net/http"

	"github.com/edublog/edublog-client/internal/core/domain"
)

// Login posts the credentials to /auth/login. The envelope's StatusCode and
// Role come straight from the response; the session is not touched here.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.Result[domain.User], error) {
	return doEnvelope[domain.User](ctx, c, request{
		method: http.MethodPost,
		route:  "/auth/login",
		path:   "/auth/login",
		body:   creds,
		role:   noRole(),
	})
}

// Register posts a new account to /auth/register.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.Result[domain.User], error) {
	return doEnvelope[domain.User](ctx, c, request{
		method: http.MethodPost,
		route:  "/auth/register",
		path:   "/auth/register",
		body:   reg,
		role:   noRole(),
	})
}
