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

// UserService backs the teacher and student panels.
type UserService struct {
	loading
	api      ports.UserAPI
	notify   ports.Notifier
	validate *inputValidator
	log      zerolog.Logger

	mu    sync.RWMutex
	users []domain.User
}

func NewUserService(api ports.UserAPI, notify ports.Notifier, log zerolog.Logger) *UserService {
	return &UserService{
		api:      api,
		notify:   notify,
		validate: newInputValidator(),
		log:      log,
	}
}

// LoadByRole fetches the users holding role (domain.RoleAdmin for teachers,
// domain.RoleUser for students) and replaces the cached list.
func (s *UserService) LoadByRole(ctx context.Context, role string) ([]domain.User, error) {
	defer s.start()()

	users, err := s.api.UsersByRole(ctx, role)
	if err != nil {
		s.notify.Alert(titleError, messageFor(err, "Could not load users"))
		return nil, fmt.Errorf("load users %s: %w", role, err)
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return users, nil
}

// Users returns the last loaded list.
func (s *UserService) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	defer s.start()()

	user, err := s.api.UserByID(ctx, id)
	if err != nil {
		s.notify.Alert(titleError, messageFor(err, "Could not load the user"))
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}

// Update replaces the user's editable fields. Only the name is mandatory.
func (s *UserService) Update(ctx context.Context, id string, in domain.UserUpdate) error {
	in = domain.UserUpdate{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Username: strings.TrimSpace(in.Username),
		Password: in.Password,
	}
	if err := s.validate.check(in); err != nil {
		s.notify.Alert(titleError, messageFor(err, "Fill in the name."))
		return err
	}

	defer s.start()()

	if err := s.api.UpdateUser(ctx, id, in); err != nil {
		s.notify.Alert(titleError, messageFor(err, "Could not save the changes"))
		return fmt.Errorf("update user %s: %w", id, err)
	}

	s.log.Info().Str("user_id", id).Msg("user updated")
	s.notify.Alert(titleSuccess, "User updated")
	return nil
}

// Delete removes a user and then reloads the list for role. The reload
// starts only after the delete has returned.
func (s *UserService) Delete(ctx context.Context, role, id string) error {
	done := s.start()
	err := s.api.DeleteUser(ctx, id)
	done()
	if err != nil {
		s.notify.Alert(titleError, messageFor(err, "Could not delete the user"))
		return fmt.Errorf("delete user %s: %w", id, err)
	}

	s.log.Info().Str("user_id", id).Msg("user deleted")
	s.notify.Alert(titleSuccess, "User deleted")

	if _, err := s.LoadByRole(ctx, role); err != nil {
		return err
	}
	return nil
}

// FilterUsers keeps the users whose name, email or username contains q,
// ignoring case. An empty or blank q keeps everything.
func FilterUsers(users []domain.User, q string) []domain.User {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return users
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.Username), q) {
			out = append(out, u)
		}
	}
	return out
}
