package ports

import (
	"context"

	"github.com/eventsapp/events-api/internal/core/domain"
)

// EventRepository defines the persistence contract for events.
type EventRepository interface {
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindByID(ctx context.Context, id int64) (*domain.Event, error)
	FindByOrganizerID(ctx context.Context, organizerID int64) ([]domain.Event, error)
	SearchByDescription(ctx context.Context, text string) ([]domain.Event, error)
	Save(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	DeleteByID(ctx context.Context, id int64) error
}
