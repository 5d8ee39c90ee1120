package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swapnest/swapnest/internal/model"
)

// PostgresUserStore implements UserStore on PostgreSQL. Email uniqueness
// is enforced by a unique index on lower(email), so check-then-insert
// races collapse into ErrEmailExists at insert time.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// CreateUser inserts the user and returns it with its assigned id.
func (s *PostgresUserStore) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id
	`

	stored := user.Clone()
	err := s.pool.QueryRow(ctx, query, user.Name, user.Email).Scan(&stored.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return stored, nil
}

// UpdateUser replaces the stored record wholesale.
func (s *PostgresUserStore) UpdateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		UPDATE users
		SET name = $2, email = $3
		WHERE id = $1
		RETURNING id
	`

	var id int64
	err := s.pool.QueryRow(ctx, query, user.ID, user.Name, user.Email).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user.Clone(), nil
}

// DeleteUser removes the record if present.
func (s *PostgresUserStore) DeleteUser(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// FindUser returns the record or ErrUserNotFound.
func (s *PostgresUserStore) FindUser(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, name, email
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := s.pool.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

// GetUsers returns all records.
func (s *PostgresUserStore) GetUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, email FROM users`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// EmailExists reports whether any user holds the email.
func (s *PostgresUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}
