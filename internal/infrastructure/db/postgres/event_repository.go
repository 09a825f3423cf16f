package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eventsapp/events-api/internal/core/domain"
)

// EventRepository persists events with plain parameterized SQL.
type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, name, date, location, organizerid, description`

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	return r.queryMany(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date`)
}

func (r *EventRepository) FindByOrganizerID(ctx context.Context, organizerID int64) ([]domain.Event, error) {
	return r.queryMany(ctx, `SELECT `+eventColumns+` FROM events WHERE organizerid = $1 ORDER BY date`, organizerID)
}

func (r *EventRepository) SearchByDescription(ctx context.Context, text string) ([]domain.Event, error) {
	return r.queryMany(ctx,
		`SELECT `+eventColumns+` FROM events WHERE description ILIKE $1 ORDER BY date`,
		"%"+text+"%")
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*domain.Event, error) {
	var e domain.Event
	err := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id,
	).Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.OrganizerID, &e.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) Save(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO events (name, date, location, organizerid, description)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		event.Name, event.Date, event.Location, event.OrganizerID, event.Description,
	).Scan(&event.ID)
	if err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET name = $1, date = $2, location = $3, organizerid = $4, description = $5
		 WHERE id = $6`,
		event.Name, event.Date, event.Location, event.OrganizerID, event.Description, event.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (r *EventRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.OrganizerID, &e.Description); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
