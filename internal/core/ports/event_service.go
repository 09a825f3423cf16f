package ports

import (
	"context"

	"github.com/eventsapp/events-api/internal/core/domain"
)

// EventService exposes the event catalogue operations. Create fills missing
// fields with defaults; Update validates required fields instead.
type EventService interface {
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindByID(ctx context.Context, id int64) (*domain.Event, error)
	FindByOrganizerID(ctx context.Context, organizerID int64) ([]domain.Event, error)
	Search(ctx context.Context, text string) ([]domain.Event, error)
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, id int64, event *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id int64) error
}
