package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"

	"github.com/eventsapp/events-api/internal/core/domain"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "login_name", "password", "enabled",
		"account_non_expired", "credentials_non_expired", "account_non_locked", "role",
	})
}

func TestUserRepository_FindByLoginName_FoldsRoles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT u.id, u.login_name.*LEFT JOIN roles r ON u.id = r.user_id WHERE u.login_name = \$1`).
		WithArgs("alice").
		WillReturnRows(userRows().
			AddRow(1, "alice", "$2a$10$hash", true, true, true, true, "ROLE_USER").
			AddRow(1, "alice", "$2a$10$hash", true, true, true, true, "ROLE_ADMIN"))

	repo := NewUserRepository(db, zerolog.Nop())
	user, err := repo.FindByLoginName(context.Background(), "alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if user.ID != 1 || user.LoginName != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(user.Roles) != 2 || !user.HasRole(domain.RoleUser) || !user.HasRole(domain.RoleAdmin) {
		t.Fatalf("roles not folded: %v", user.Roles)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_FindByLoginName_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT u.id, u.login_name.*WHERE u.login_name = \$1`).
		WithArgs("ghost").
		WillReturnRows(userRows())

	repo := NewUserRepository(db, zerolog.Nop())
	if _, err := repo.FindByLoginName(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_FindByLoginName_NoRoles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`WHERE u.login_name = \$1`).
		WithArgs("bare").
		WillReturnRows(userRows().AddRow(5, "bare", "$2a$10$hash", true, true, true, true, nil))

	repo := NewUserRepository(db, zerolog.Nop())
	user, err := repo.FindByLoginName(context.Background(), "bare")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(user.Roles) != 0 {
		t.Fatalf("expected empty role set, got %v", user.Roles)
	}
}

func TestUserRepository_Save_InsertRewritesRoles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("bob", "$2a$10$hash", true, true, true, true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectExec(`DELETE FROM roles WHERE user_id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO roles`).
		WithArgs(int64(9), "ROLE_USER").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO roles`).
		WithArgs(int64(9), "ROLE_ADMIN").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	repo := NewUserRepository(db, zerolog.Nop())
	saved, err := repo.Save(context.Background(), &domain.User{
		LoginName:             "bob",
		PasswordHash:          "$2a$10$hash",
		Roles:                 []domain.Role{domain.RoleUser, domain.RoleAdmin},
		Enabled:               true,
		AccountNonExpired:     true,
		CredentialsNonExpired: true,
		AccountNonLocked:      true,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID != 9 {
		t.Fatalf("expected id 9, got %d", saved.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_Save_UpdateExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET`).
		WithArgs("carol", "$2a$10$new", true, true, true, false, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM roles WHERE user_id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO roles`).
		WithArgs(int64(4), "ROLE_USER").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewUserRepository(db, zerolog.Nop())
	_, err = repo.Save(context.Background(), &domain.User{
		ID:                    4,
		LoginName:             "carol",
		PasswordHash:          "$2a$10$new",
		Roles:                 []domain.Role{domain.RoleUser},
		Enabled:               true,
		AccountNonExpired:     true,
		CredentialsNonExpired: true,
		AccountNonLocked:      false,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_DeleteByID_CascadesRoles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM roles WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewUserRepository(db, zerolog.Nop())
	if err := repo.DeleteByID(context.Background(), 7); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
