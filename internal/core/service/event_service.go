package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventsapp/events-api/internal/core/domain"
	"github.com/eventsapp/events-api/internal/core/ports"
)

type eventService struct {
	repo ports.EventRepository
	log  zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(repo ports.EventRepository, log zerolog.Logger) ports.EventService {
	return &eventService{repo: repo, log: log}
}

func (s *eventService) FindAll(ctx context.Context) ([]domain.Event, error) {
	return s.repo.FindAll(ctx)
}

func (s *eventService) FindByID(ctx context.Context, id int64) (*domain.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *eventService) FindByOrganizerID(ctx context.Context, organizerID int64) ([]domain.Event, error) {
	return s.repo.FindByOrganizerID(ctx, organizerID)
}

func (s *eventService) Search(ctx context.Context, text string) ([]domain.Event, error) {
	return s.repo.SearchByDescription(ctx, text)
}

// Create persists a new event, filling missing fields with placeholders so a
// sparse payload still produces a presentable listing entry.
func (s *eventService) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event == nil {
		return nil, domain.ErrInvalidEvent
	}

	if event.Date.IsZero() {
		event.Date = time.Now().UTC()
	}
	if event.Name == "" {
		event.Name = "New Event"
	}
	if event.Description == "" {
		event.Description = "No description provided"
	}
	if event.Location == "" {
		event.Location = "No location provided"
	}

	created, err := s.repo.Save(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info().Int64("id", created.ID).Str("name", created.Name).Msg("event created")
	return created, nil
}

// Update validates required fields and rewrites the stored event. Unlike
// Create, missing fields are rejected rather than defaulted.
func (s *eventService) Update(ctx context.Context, id int64, event *domain.Event) (*domain.Event, error) {
	if event == nil || event.Name == "" || event.Description == "" || event.Location == "" {
		return nil, domain.ErrInvalidEvent
	}
	if event.Date.IsZero() {
		event.Date = time.Now().UTC()
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.ID = existing.ID
	if event.OrganizerID == 0 {
		event.OrganizerID = existing.OrganizerID
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.log.Info().Int64("id", id).Msg("event deleted")
	return nil
}
