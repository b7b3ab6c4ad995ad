package apitest

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/edublog/edublog-client/internal/core/domain"
)

var (
	errUserNotFound       = errors.New("User not found")
	errPostNotFound       = errors.New("Post not found")
	errEmailTaken         = errors.New("Email already registered")
	errInvalidCredentials = errors.New("Invalid credentials")
)

// timestampLayout is the SQL DATETIME text the server emits, not RFC 3339.
const timestampLayout = "2006-01-02 15:04:05"

type userRecord struct {
	domain.User
	passwordHash []byte
	seq          uint64
}

type postRecord struct {
	domain.Post
	seq uint64
}

// store is the in-memory state of the fake API. seq orders records by
// insertion, since the second-resolution timestamps can tie.
type store struct {
	mu    sync.RWMutex
	now   func() time.Time
	seq   uint64
	users map[string]*userRecord
	posts map[string]*postRecord
}

func newStore() *store {
	return &store{
		now:   time.Now,
		users: make(map[string]*userRecord),
		posts: make(map[string]*postRecord),
	}
}

func (s *store) stamp() string {
	return s.now().UTC().Format(timestampLayout)
}

func (s *store) register(reg domain.Registration) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.MinCost)
	if err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, reg.Email) {
			return domain.User{}, errEmailTaken
		}
	}

	role := strings.ToLower(reg.Role)
	if role != domain.RoleAdmin {
		role = domain.RoleUser
	}
	now := s.stamp()
	s.seq++
	rec := &userRecord{
		User: domain.User{
			ID:        uuid.NewString(),
			Name:      reg.Name,
			Email:     reg.Email,
			Username:  reg.Username,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		},
		passwordHash: hash,
		seq:          s.seq,
	}
	s.users[rec.ID] = rec
	return rec.User, nil
}

func (s *store) authenticate(email, password string) (userRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
			return userRecord{}, errInvalidCredentials
		}
		return *u, nil
	}
	return userRecord{}, errInvalidCredentials
}

func (s *store) usersByRole(role string) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := []*userRecord{}
	for _, u := range s.users {
		if u.Role == role {
			recs = append(recs, u)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]domain.User, len(recs))
	for i, r := range recs {
		out[i] = r.User
	}
	return out
}

func (s *store) user(id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, errUserNotFound
	}
	return u.User, nil
}

func (s *store) updateUser(id string, in domain.UserUpdate) (domain.User, error) {
	var hash []byte
	if in.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.MinCost)
		if err != nil {
			return domain.User{}, err
		}
		hash = h
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, errUserNotFound
	}
	u.Name = in.Name
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Username != "" {
		u.Username = in.Username
	}
	if hash != nil {
		u.passwordHash = hash
	}
	u.UpdatedAt = s.stamp()
	return u.User, nil
}

func (s *store) deleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return errUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *store) createPost(in domain.PostInput, status string) domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.stamp()
	s.seq++
	p := &postRecord{
		Post: domain.Post{
			ID:        uuid.NewString(),
			Title:     in.Title,
			Content:   in.Content,
			Author:    in.Author,
			Status:    status,
			CreatedAt: now,
			UpdatedAt: now,
		},
		seq: s.seq,
	}
	s.posts[p.ID] = p
	return p.Post
}

// listPosts returns posts newest first, optionally keeping only titles that
// contain term (case-insensitive).
func (s *store) listPosts(term string) []domain.Post {
	term = strings.ToLower(term)
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := []*postRecord{}
	for _, p := range s.posts {
		if term == "" || strings.Contains(strings.ToLower(p.Title), term) {
			recs = append(recs, p)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })
	out := make([]domain.Post, len(recs))
	for i, r := range recs {
		out[i] = r.Post
	}
	return out
}

func (s *store) post(id string) (domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return domain.Post{}, errPostNotFound
	}
	return p.Post, nil
}

func (s *store) updatePost(id string, in domain.PostInput) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return domain.Post{}, errPostNotFound
	}
	p.Title, p.Content, p.Author = in.Title, in.Content, in.Author
	p.UpdatedAt = s.stamp()
	return p.Post, nil
}

func (s *store) deletePost(id string) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return domain.Post{}, errPostNotFound
	}
	delete(s.posts, id)
	return p.Post, nil
}
