package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/edublog/edublog-client/internal/core/domain"
	"github.com/edublog/edublog-client/internal/core/ports"
)

// PostService backs the post screens: listing, detail, editing and
// deletion. It keeps the last loaded list.
type PostService struct {
	loading
	api      ports.PostAPI
	notify   ports.Notifier
	validate *inputValidator
	log      zerolog.Logger

	mu    sync.RWMutex
	posts []domain.Post
}

func NewPostService(api ports.PostAPI, notify ports.Notifier, log zerolog.Logger) *PostService {
	return &PostService{
		api:      api,
		notify:   notify,
		validate: newInputValidator(),
		log:      log,
	}
}

// Load fetches the unfiltered list and replaces the cached one.
func (s *PostService) Load(ctx context.Context) ([]domain.Post, error) {
	defer s.start()()

	posts, err := s.api.Posts(ctx)
	if err != nil {
		s.notify.Alert(titleError, messageFor(err, "Could not load posts"))
		return nil, fmt.Errorf("load posts: %w", err)
	}

	s.mu.Lock()
	s.posts = posts
	s.mu.Unlock()
	return posts, nil
}

// Posts returns the last loaded list.
func (s *PostService) Posts() []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.PostDetail, error) {
	defer s.start()()

	post, err := s.api.PostByID(ctx, id)
	if err != nil {
		s.notify.Alert(titleError, messageFor(err, "Could not load the post"))
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return post, nil
}

func (s *PostService) Create(ctx context.Context, in domain.PostInput) (*domain.Post, error) {
	in = trimPostInput(in)
	if err := s.validate.check(in); err != nil {
		s.notify.Alert(titleError, "Fill in title, content and author.")
		return nil, err
	}

	defer s.start()()

	res, err := s.api.CreatePost(ctx, in)
	if err != nil {
		s.notify.Alert(titleError, messageFor(err, "Could not create the post"))
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Str("post_id", res.Data.ID).Msg("post created")
	s.notify.Alert(titleSuccess, "Post created!")

	post := res.Data
	return &post, nil
}

func (s *PostService) Update(ctx context.Context, id string, in domain.PostInput) (*domain.Post, error) {
	in = trimPostInput(in)
	if err := s.validate.check(in); err != nil {
		s.notify.Alert(titleError, "Fill in title, content and author.")
		return nil, err
	}

	defer s.start()()

	res, err := s.api.UpdatePost(ctx, id, in)
	if err != nil {
		s.notify.Alert(titleError, messageFor(err, "Could not save the changes"))
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}

	s.log.Info().Str("post_id", id).Msg("post updated")
	s.notify.Alert(titleSuccess, "Changes saved!")

	post := res.Data
	return &post, nil
}

// Delete removes a post and then reloads the list. The reload starts only
// after the delete has returned.
func (s *PostService) Delete(ctx context.Context, id string) error {
	done := s.start()
	_, err := s.api.DeletePost(ctx, id)
	done()
	if err != nil {
		s.notify.Alert(titleError, messageFor(err, "Could not delete the post"))
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	s.log.Info().Str("post_id", id).Msg("post deleted")

	if _, err := s.Load(ctx); err != nil {
		return err
	}
	return nil
}

// FilterByTitle keeps the posts whose title contains q, ignoring case. An
// empty or blank q keeps everything.
func FilterByTitle(posts []domain.Post, q string) []domain.Post {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return posts
	}
	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), q) {
			out = append(out, p)
		}
	}
	return out
}

func trimPostInput(in domain.PostInput) domain.PostInput {
	return domain.PostInput{
		Title:   strings.TrimSpace(in.Title),
		Content: strings.TrimSpace(in.Content),
		Author:  strings.TrimSpace(in.Author),
	}
}
