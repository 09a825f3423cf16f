package ports

import (
	"context"

	"github.com/eventsapp/events-api/internal/core/domain"
)

// AuthService resolves credentials to identities and registers new accounts.
// Both the session chain and the API chain authenticate through it.
type AuthService interface {
	Authenticate(ctx context.Context, loginName, password string) (*domain.User, error)
	Register(ctx context.Context, loginName, password string) (*domain.User, error)
	Login(ctx context.Context, loginName, password string) (string, *domain.User, error)
}
