package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eventsapp/events-api/internal/core/domain"
	"github.com/eventsapp/events-api/internal/core/ports"
	"github.com/eventsapp/events-api/internal/security"
)

// AuthService is the single authentication resolver consulted by both chains:
// the session form login and the API token login.
type AuthService struct {
	repo   ports.UserRepository
	hasher *security.Hasher
	tokens *security.TokenService
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher *security.Hasher, tokens *security.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// Authenticate resolves a (loginName, password) pair to a user. An unknown
// login name, a wrong password, and a disabled or locked account all return
// the same ErrBadCredentials so callers cannot probe for account existence;
// the distinction is logged internally.
func (s *AuthService) Authenticate(ctx context.Context, loginName, password string) (*domain.User, error) {
	if loginName == "" || password == "" {
		return nil, domain.ErrBadCredentials
	}

	user, err := s.repo.FindByLoginName(ctx, loginName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("login", loginName).Msg("authentication failed: unknown user")
			return nil, domain.ErrBadCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Debug().Str("login", loginName).Msg("authentication failed: password mismatch")
		return nil, domain.ErrBadCredentials
	}

	if !user.Active() {
		s.log.Debug().Str("login", loginName).Msg("authentication failed: account inactive")
		return nil, domain.ErrBadCredentials
	}

	return user, nil
}

// Register creates a new account. The login name is checked before any write
// so a duplicate never reaches the store; the unique constraint is the
// backstop for races.
//
// TODO: new accounts currently receive ROLE_ADMIN alongside ROLE_USER, which
// makes every registered visitor an admin. Revisit before opening public
// registration.
func (s *AuthService) Register(ctx context.Context, loginName, password string) (*domain.User, error) {
	if loginName == "" || password == "" {
		return nil, domain.ErrBadCredentials
	}

	if _, err := s.repo.FindByLoginName(ctx, loginName); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := &domain.User{
		LoginName:             loginName,
		PasswordHash:          hash,
		Roles:                 []domain.Role{domain.RoleUser, domain.RoleAdmin},
		Enabled:               true,
		AccountNonExpired:     true,
		CredentialsNonExpired: true,
		AccountNonLocked:      true,
	}

	created, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("login", created.LoginName).Int64("id", created.ID).Msg("user registered")
	return created, nil
}

// Login authenticates and, on success, issues a bearer token for the API
// chain.
func (s *AuthService) Login(ctx context.Context, loginName, password string) (string, *domain.User, error) {
	user, err := s.Authenticate(ctx, loginName, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.LoginName)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	return token, user, nil
}
