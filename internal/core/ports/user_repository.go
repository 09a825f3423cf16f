package ports

import (
	"context"

	"github.com/eventsapp/events-api/internal/core/domain"
)

// UserRepository is the credential store contract. Save rewrites the full
// role set on every call; DeleteByID cascades role rows.
type UserRepository interface {
	FindByLoginName(ctx context.Context, loginName string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteByID(ctx context.Context, id int64) error
}
