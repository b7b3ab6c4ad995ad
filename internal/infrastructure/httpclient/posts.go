package httpclient

import (
	"context"
	"net/http"

	"github.com/edublog/edublog-client/internal/core/domain"
)

// Posts lists every post. The role header follows the client's RolePolicy.
func (c *Client) Posts(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	_, err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/posts",
		path:   "/posts",
		role:   c.policy.Posts,
	}, &posts)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchPosts returns the posts whose title contains term, case-insensitive.
// Matching is done by the server; term is percent-encoded into the path.
func (c *Client) SearchPosts(ctx context.Context, term string) ([]domain.Post, error) {
	var posts []domain.Post
	_, err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/posts/search/{term}",
		path:   pathOf("posts", "search", term),
		role:   c.policy.Search,
	}, &posts)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) PostByID(ctx context.Context, id string) (*domain.PostDetail, error) {
	var post domain.PostDetail
	_, err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/posts/{id}",
		path:   pathOf("posts", id),
		role:   c.policy.PostByID,
	}, &post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) CreatePost(ctx context.Context, in domain.PostInput) (*domain.Result[domain.Post], error) {
	return doEnvelope[domain.Post](ctx, c, request{
		method: http.MethodPost,
		route:  "/posts/",
		path:   "/posts/",
		body:   in,
		role:   FromSession(),
	})
}

func (c *Client) UpdatePost(ctx context.Context, id string, in domain.PostInput) (*domain.Result[domain.Post], error) {
	return doEnvelope[domain.Post](ctx, c, request{
		method: http.MethodPut,
		route:  "/posts/{id}",
		path:   pathOf("posts", id),
		body:   in,
		role:   FromSession(),
	})
}

func (c *Client) DeletePost(ctx context.Context, id string) (*domain.Result[domain.Post], error) {
	return doEnvelope[domain.Post](ctx, c, request{
		method: http.MethodDelete,
		route:  "/posts/{id}",
		path:   pathOf("posts", id),
		role:   FromSession(),
	})
}
