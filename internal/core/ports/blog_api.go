package ports

import (
	"context"

	"github.com/edublog/edublog-client/internal/core/domain"
)

// AuthAPI covers the /auth endpoints.
type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.Result[domain.User], error)
	Register(ctx context.Context, reg domain.Registration) (*domain.Result[domain.User], error)
}

// UserAPI covers the /user endpoints.
type UserAPI interface {
	UsersByRole(ctx context.Context, role string) ([]domain.User, error)
	UserByID(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, in domain.UserUpdate) error
	DeleteUser(ctx context.Context, id string) error
}

// PostReader is the read side of the /posts endpoints. The search
// controller only needs this half.
type PostReader interface {
	Posts(ctx context.Context) ([]domain.Post, error)
	SearchPosts(ctx context.Context, term string) ([]domain.Post, error)
}

// PostAPI covers all of the /posts endpoints.
type PostAPI interface {
	PostReader
	PostByID(ctx context.Context, id string) (*domain.PostDetail, error)
	CreatePost(ctx context.Context, in domain.PostInput) (*domain.Result[domain.Post], error)
	UpdatePost(ctx context.Context, id string, in domain.PostInput) (*domain.Result[domain.Post], error)
	DeletePost(ctx context.Context, id string) (*domain.Result[domain.Post], error)
}
