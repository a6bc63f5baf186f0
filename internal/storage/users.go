package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UpsertUser registers a user or refreshes their profile and role.
func (s *PostgresStorage) UpsertUser(ctx context.Context, u User) error {
	const operation = "storage.UpsertUser"

	const query = `
        INSERT INTO users (id, name, username, role)
        VALUES (:id, :name, :username, :role)
        ON CONFLICT (id) DO UPDATE
        SET name = EXCLUDED.name, username = EXCLUDED.username, role = EXCLUDED.role
    `

	if u.Role == "" {
		u.Role = RoleUser
	}
	if _, err := s.db.NamedExecContext(ctx, query, u); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}

func (s *PostgresStorage) GetUser(ctx context.Context, id int64) (*User, error) {
	const operation = "storage.GetUser"

	const query = `SELECT id, name, username, role, created_at FROM users WHERE id = $1`

	var u User
	if err := s.db.GetContext(ctx, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: user %d: %w", operation, id, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return &u, nil
}

// UserJobCounts summarises how many jobs each registered user placed.
func (s *PostgresStorage) UserJobCounts(ctx context.Context) ([]UserJobCount, error) {
	const operation = "storage.UserJobCounts"

	const query = `
        SELECT u.id AS user_id, u.name, COUNT(j.id) AS jobs
        FROM users u
        LEFT JOIN jobs j ON j.user_id = u.id
        GROUP BY u.id, u.name
        ORDER BY jobs DESC, u.id
    `

	var counts []UserJobCount
	if err := s.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return counts, nil
}
