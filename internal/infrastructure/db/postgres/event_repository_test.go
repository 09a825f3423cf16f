package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/eventsapp/events-api/internal/core/domain"
)

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "date", "location", "organizerid", "description"})
}

func TestEventRepository_SearchByDescription(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	when := time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, name, date, location, organizerid, description FROM events WHERE description ILIKE \$1`).
		WithArgs("%music%").
		WillReturnRows(eventRows().AddRow(2, "Concert", when, "Tempe", 1, "Live music night"))

	repo := NewEventRepository(db)
	events, err := repo.SearchByDescription(context.Background(), "music")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(events) != 1 || events[0].Name != "Concert" {
		t.Fatalf("unexpected result: %+v", events)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEventRepository_SaveReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	when := time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO events`).
		WithArgs("Concert", when, "Tempe", int64(1), "Live music night").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	repo := NewEventRepository(db)
	saved, err := repo.Save(context.Background(), &domain.Event{
		Name: "Concert", Date: when, Location: "Tempe", OrganizerID: 1, Description: "Live music night",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID != 11 {
		t.Fatalf("expected id 11, got %d", saved.ID)
	}
}

func TestEventRepository_UpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE events SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewEventRepository(db)
	err = repo.Update(context.Background(), &domain.Event{
		ID: 42, Name: "n", Date: time.Now(), Location: "l", Description: "d",
	})
	if !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventRepository_FindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, date, location, organizerid, description FROM events WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(eventRows())

	repo := NewEventRepository(db)
	if _, err := repo.FindByID(context.Background(), 5); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
