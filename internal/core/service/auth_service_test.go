package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventsapp/events-api/internal/core/domain"
	"github.com/eventsapp/events-api/internal/security"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
	saves  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) FindByLoginName(_ context.Context, loginName string) (*domain.User, error) {
	u, ok := r.users[loginName]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.saves++
	copy := cloneUser(user)
	if copy.ID == 0 {
		copy.ID = r.nextID
		r.nextID++
	}
	r.users[copy.LoginName] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id int64) error {
	for name, u := range r.users {
		if u.ID == id {
			delete(r.users, name)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	hasher := security.NewHasher(bcrypt.MinCost)
	tokens := security.NewTokenService([]byte("test-signing-key-test-signing-key"), time.Hour, zerolog.Nop())
	return NewAuthService(repo, hasher, tokens, zerolog.Nop())
}

func TestAuthService_RegisterAndAuthenticate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	created, err := svc.Register(context.Background(), "alice", "pass123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.PasswordHash == "pass123" {
		t.Fatalf("password stored in plaintext")
	}
	if !created.HasRole(domain.RoleUser) || !created.HasRole(domain.RoleAdmin) {
		t.Fatalf("expected default role set, got %v", created.Roles)
	}
	if !created.Active() {
		t.Fatalf("fresh account is not active: %+v", created)
	}

	user, err := svc.Authenticate(context.Background(), "alice", "pass123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.LoginName != "alice" {
		t.Fatalf("unexpected login name %q", user.LoginName)
	}
}

func TestAuthService_BadCredentialsIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "bob", "goodpass"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, errWrongPass := svc.Authenticate(context.Background(), "bob", "badpass")
	_, errUnknown := svc.Authenticate(context.Background(), "ghost", "whatever")

	if !errors.Is(errWrongPass, domain.ErrBadCredentials) {
		t.Fatalf("wrong password: expected ErrBadCredentials, got %v", errWrongPass)
	}
	if !errors.Is(errUnknown, domain.ErrBadCredentials) {
		t.Fatalf("unknown user: expected ErrBadCredentials, got %v", errUnknown)
	}
	if errWrongPass.Error() != errUnknown.Error() {
		t.Fatalf("failure kinds differ: %v vs %v", errWrongPass, errUnknown)
	}
}

func TestAuthService_InactiveAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	created, err := svc.Register(context.Background(), "carol", "pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	created.AccountNonLocked = false
	if _, err := repo.Save(context.Background(), created); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "carol", "pass"); !errors.Is(err, domain.ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials for locked account, got %v", err)
	}
}

func TestAuthService_DuplicateRegistration(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "dave", "pass"); err != nil {
		t.Fatalf("register: %v", err)
	}
	savesBefore := repo.saves

	if _, err := svc.Register(context.Background(), "dave", "otherpass"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if repo.saves != savesBefore {
		t.Fatalf("duplicate registration reached the store")
	}
}

func TestAuthService_LoginIssuesToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "erin", "pass"); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "erin", "pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if user == nil || user.LoginName != "erin" {
		t.Fatalf("unexpected user: %+v", user)
	}

	subject, err := svc.tokens.ParseSubject(token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if subject != "erin" {
		t.Fatalf("expected subject erin, got %q", subject)
	}
}

func TestAuthService_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Authenticate(context.Background(), "", "pass"); !errors.Is(err, domain.ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "frank", ""); !errors.Is(err, domain.ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}
