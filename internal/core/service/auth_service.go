package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edublog/edublog-client/internal/core/domain"
	"github.com/edublog/edublog-client/internal/core/ports"
)

// AuthService implements login, registration and logout, and owns the
// session role.
type AuthService struct {
	loading
	api      ports.AuthAPI
	session  ports.SessionStore
	notify   ports.Notifier
	validate *inputValidator
	log      zerolog.Logger
}

func NewAuthService(api ports.AuthAPI, session ports.SessionStore, notify ports.Notifier, log zerolog.Logger) *AuthService {
	return &AuthService{
		api:      api,
		session:  session,
		notify:   notify,
		validate: newInputValidator(),
		log:      log,
	}
}

// Login authenticates and, only when the server answered 200 with a role,
// stores that role in the session. The role is never guessed client-side.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	creds := domain.Credentials{Email: strings.TrimSpace(email), Password: password}
	if err := s.validate.check(creds); err != nil {
		s.notify.Alert(titleError, "Fill in email and password")
		return nil, err
	}

	defer s.start()()

	res, err := s.api.Login(ctx, creds)
	if err != nil {
		s.log.Warn().Err(err).Str("email", creds.Email).Msg("login failed")
		s.notify.Alert(titleError, "Invalid email or password")
		return nil, fmt.Errorf("login: %w", err)
	}
	if !res.OK() {
		s.notify.Alert(titleError, "Invalid email or password")
		return nil, fmt.Errorf("%w: status %d", domain.ErrLoginFailed, res.StatusCode)
	}
	if res.Role == "" {
		s.notify.Alert(titleError, "Invalid email or password")
		return nil, fmt.Errorf("%w: response carries no role", domain.ErrLoginFailed)
	}

	if err := s.session.SetRole(ctx, res.Role); err != nil {
		s.notify.Alert(titleError, "Could not save the session")
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("user_id", res.Data.ID).Str("role", res.Role).Msg("logged in")

	user := res.Data
	return &user, nil
}

// Register creates an account. Role stays empty for self-registration so the
// server applies its default.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Role = strings.TrimSpace(reg.Role)
	if err := s.validate.check(reg); err != nil {
		s.notify.Alert(titleError, messageFor(err, "Fill in every field"))
		return nil, err
	}

	defer s.start()()

	res, err := s.api.Register(ctx, reg)
	if err != nil {
		s.notify.Alert(titleError, messageFor(err, "Could not create the account"))
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", res.Data.ID).Str("role", res.Role).Msg("account registered")
	s.notify.Alert(titleSuccess, "Account created")

	user := res.Data
	return &user, nil
}

// Logout forgets the session role. Subsequent requests carry the absent role.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Msg("logged out")
	return nil
}

// Role returns the stored session role; ok is false when nobody is logged in.
func (s *AuthService) Role(ctx context.Context) (string, bool, error) {
	return s.session.Role(ctx)
}
