package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/eventsapp/events-api/internal/core/domain"
)

const uniqueViolation = "23505"

// UserRepository persists users and their role rows. Roles live in a child
// table and are rewritten in full (delete then reinsert) on every save.
type UserRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewUserRepository(db *sql.DB, log zerolog.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

const userWithRolesQuery = `SELECT u.id, u.login_name, u.password, u.enabled,
       u.account_non_expired, u.credentials_non_expired, u.account_non_locked, r.role
  FROM users u
  LEFT JOIN roles r ON u.id = r.user_id`

func (r *UserRepository) FindByLoginName(ctx context.Context, loginName string) (*domain.User, error) {
	return r.queryOne(ctx, userWithRolesQuery+` WHERE u.login_name = $1`, loginName)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.queryOne(ctx, userWithRolesQuery+` WHERE u.id = $1`, id)
}

func (r *UserRepository) queryOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	defer rows.Close()

	user, err := scanUserWithRoles(rows)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// scanUserWithRoles folds the LEFT JOIN rows (one per role) into a single
// user with its role set. Unknown role labels are skipped, not fatal.
func scanUserWithRoles(rows *sql.Rows) (*domain.User, error) {
	var user *domain.User
	for rows.Next() {
		var (
			u     domain.User
			label sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.LoginName, &u.PasswordHash, &u.Enabled,
			&u.AccountNonExpired, &u.CredentialsNonExpired, &u.AccountNonLocked, &label); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if user == nil {
			user = &u
		}
		if label.Valid {
			role, err := domain.ParseRole(label.String)
			if err != nil {
				continue
			}
			user.Roles = append(user.Roles, role)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}

// Save inserts the user when ID is zero, updates it otherwise, and always
// rewrites the full role set.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("save user: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if user.ID == 0 {
		err = tx.QueryRowContext(ctx,
			`INSERT INTO users (login_name, password, enabled, account_non_expired, credentials_non_expired, account_non_locked)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			user.LoginName, user.PasswordHash, user.Enabled,
			user.AccountNonExpired, user.CredentialsNonExpired, user.AccountNonLocked,
		).Scan(&user.ID)
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET login_name = $1, password = $2, enabled = $3,
			        account_non_expired = $4, credentials_non_expired = $5, account_non_locked = $6
			 WHERE id = $7`,
			user.LoginName, user.PasswordHash, user.Enabled,
			user.AccountNonExpired, user.CredentialsNonExpired, user.AccountNonLocked, user.ID,
		)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("save user: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM roles WHERE user_id = $1`, user.ID); err != nil {
		return nil, fmt.Errorf("save user: clear roles: %w", err)
	}
	for _, role := range user.Roles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO roles (user_id, role) VALUES ($1, $2)`, user.ID, role.String()); err != nil {
			return nil, fmt.Errorf("save user: insert role: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("save user: commit: %w", err)
	}
	return user, nil
}

// DeleteByID removes the user and its role rows.
func (r *UserRepository) DeleteByID(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete user: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM roles WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("delete user: roles: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return tx.Commit()
}
