package domain

import "encoding/json"

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post is a blog publication as listed and searched by the API. Timestamps
// are kept as the server's text; their format is not fixed by the API.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Status    string    `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// PostDetail is a post together with its comments. The comment shape is not
// fixed by the API, so each one is kept as raw JSON.
type PostDetail struct {
	Post
	Comments []json.RawMessage `json:"comments"`
}

// PostInput is the payload for creating and updating posts.
type PostInput struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author"  validate:"required"`
}
