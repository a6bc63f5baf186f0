package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const jobColumns = `
    id, user_id, file_name, pages, copies, color_mode, sidedness,
    print_quality, paper_type, paper_size, orientation, binding, finishing,
    delivery, address, payment_method, payment_status, notes, price, points,
    status, created_at
`

// SaveJob inserts job and returns its id. A zero CreatedAt is set by the
// database.
func (s *PostgresStorage) SaveJob(ctx context.Context, job Job) (int64, error) {
	const operation = "storage.SaveJob"

	const query = `
        INSERT INTO jobs (
            user_id, file_name, pages, copies, color_mode, sidedness,
            print_quality, paper_type, paper_size, orientation, binding,
            finishing, delivery, address, payment_method, payment_status,
            notes, price, points, status, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
            $12, $13, $14, $15, $16, $17, $18, $19, $20,
            COALESCE($21, NOW())
        )
        RETURNING id
    `

	var createdAt sql.NullTime
	if !job.CreatedAt.IsZero() {
		createdAt = sql.NullTime{Time: job.CreatedAt, Valid: true}
	}

	var jobID int64
	err := s.db.QueryRowContext(ctx, query,
		job.UserID,
		job.FileName,
		job.Pages,
		job.Copies,
		job.ColorMode,
		job.Sidedness,
		job.PrintQuality,
		job.PaperType,
		job.PaperSize,
		job.Orientation,
		job.Binding,
		job.Finishing,
		job.Delivery,
		job.Address,
		job.PaymentMethod,
		job.PaymentStatus,
		job.Notes,
		job.Price,
		job.Points,
		job.Status,
		createdAt,
	).Scan(&jobID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", operation, err)
	}

	s.invalidate(ctx, statsCacheKey)

	return jobID, nil
}

func (s *PostgresStorage) GetJob(ctx context.Context, id int64) (*Job, error) {
	const operation = "storage.GetJob"

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	var job Job
	if err := s.db.GetContext(ctx, &job, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: job %d: %w", operation, id, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return &job, nil
}

// ListJobs returns jobs newest first.
func (s *PostgresStorage) ListJobs(ctx context.Context, filter JobFilter) ([]Job, error) {
	const operation = "storage.ListJobs"

	query := `SELECT ` + jobColumns + ` FROM jobs`
	var args []any
	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(` WHERE user_id = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	var jobs []Job
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return jobs, nil
}

func (s *PostgresStorage) CountUserJobs(ctx context.Context, userID int64) (int, error) {
	const operation = "storage.CountUserJobs"

	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM jobs WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("%s: %w", operation, err)
	}
	return n, nil
}

func (s *PostgresStorage) UpdateJobStatus(ctx context.Context, id int64, status string) error {
	const operation = "storage.UpdateJobStatus"
	return s.updateJob(ctx, operation, `UPDATE jobs SET status = $1 WHERE id = $2`, status, id)
}

func (s *PostgresStorage) UpdatePaymentStatus(ctx context.Context, id int64, status string) error {
	const operation = "storage.UpdatePaymentStatus"
	return s.updateJob(ctx, operation, `UPDATE jobs SET payment_status = $1 WHERE id = $2`, status, id)
}

func (s *PostgresStorage) DeleteJob(ctx context.Context, id int64) error {
	const operation = "storage.DeleteJob"
	return s.updateJob(ctx, operation, `DELETE FROM jobs WHERE id = $1`, id)
}

// DeleteUserJobs removes a user's whole history and returns how many
// jobs were dropped.
func (s *PostgresStorage) DeleteUserJobs(ctx context.Context, userID int64) (int64, error) {
	const operation = "storage.DeleteUserJobs"

	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", operation, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", operation, err)
	}

	s.invalidate(ctx, statsCacheKey)
	return n, nil
}

// ClearAll wipes jobs, balances and redemption logs. Users and price
// overrides are kept.
func (s *PostgresStorage) ClearAll(ctx context.Context) error {
	const operation = "storage.ClearAll"

	if _, err := s.db.ExecContext(ctx, `TRUNCATE jobs, rewards, redemptions RESTART IDENTITY`); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	s.invalidate(ctx, statsCacheKey)
	return nil
}

func (s *PostgresStorage) updateJob(ctx context.Context, operation, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: job: %w", operation, ErrNotFound)
	}

	s.invalidate(ctx, statsCacheKey)
	return nil
}
