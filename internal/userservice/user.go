package userservice

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrNotFound = errors.New("user not found")
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (email, username, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	args := []any{
		u.Email,
		u.Username,
		u.Password.hash,
	}

	return m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

// getUserByEmail matches the email exactly. Emails are not unique, so the oldest account wins.
func (m *DBModel) getUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, username, password, created_at, updated_at
		FROM users
		WHERE email = $1
		ORDER BY created_at ASC
		LIMIT 1`

	var u User

	err := m.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.Username, &u.Password.hash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}
