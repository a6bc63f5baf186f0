package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"printit-bot/internal/rewards"

	"go.uber.org/zap"
)

func (s *PostgresStorage) GetRewards(ctx context.Context, userID int64) (*Rewards, error) {
	const operation = "storage.GetRewards"

	r := &Rewards{UserID: userID}

	err := s.db.GetContext(ctx, &r.Points, `SELECT points FROM rewards WHERE user_id = $1`, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	const logQuery = `
        SELECT id, name, cost, redeemed_at
        FROM redemptions
        WHERE user_id = $1
        ORDER BY redeemed_at DESC
    `
	if err := s.db.SelectContext(ctx, &r.Redemptions, logQuery, userID); err != nil {
		return nil, fmt.Errorf("%s: redemptions: %w", operation, err)
	}

	return r, nil
}

// AddPoints credits points and returns the new balance.
func (s *PostgresStorage) AddPoints(ctx context.Context, userID int64, points float64) (float64, error) {
	const operation = "storage.AddPoints"

	const query = `
        INSERT INTO rewards (user_id, points, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id) DO UPDATE
        SET points = rewards.points + EXCLUDED.points, updated_at = NOW()
        RETURNING points
    `

	var balance float64
	if err := s.db.QueryRowContext(ctx, query, userID, points).Scan(&balance); err != nil {
		return 0, fmt.Errorf("%s: %w", operation, err)
	}
	return balance, nil
}

// RedeemPoints locks the user's balance, lets redeem decide the outcome
// and persists it atomically. Errors from redeem are returned unwrapped
// so callers can match them.
func (s *PostgresStorage) RedeemPoints(ctx context.Context, userID int64, redeem func(balance float64) (rewards.Outcome, error)) (rewards.Outcome, error) {
	const operation = "storage.RedeemPoints"

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return rewards.Outcome{}, fmt.Errorf("%s: begin: %w", operation, err)
	}
	defer func() { _ = tx.Rollback() }()

	var balance float64
	err = tx.GetContext(ctx, &balance, `SELECT points FROM rewards WHERE user_id = $1 FOR UPDATE`, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return rewards.Outcome{}, fmt.Errorf("%s: lock balance: %w", operation, err)
	}

	out, err := redeem(balance)
	if err != nil {
		return rewards.Outcome{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE rewards SET points = $1, updated_at = NOW() WHERE user_id = $2`,
		out.Balance, userID,
	); err != nil {
		return rewards.Outcome{}, fmt.Errorf("%s: update balance: %w", operation, err)
	}

	r := out.Redemption
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO redemptions (id, user_id, name, cost, redeemed_at) VALUES ($1, $2, $3, $4, $5)`,
		r.ID, userID, r.Name, r.Cost, r.At,
	); err != nil {
		return rewards.Outcome{}, fmt.Errorf("%s: log redemption: %w", operation, err)
	}

	if err := tx.Commit(); err != nil {
		return rewards.Outcome{}, fmt.Errorf("%s: commit: %w", operation, err)
	}

	s.logger.Info("Points redeemed",
		zap.Int64("user_id", userID),
		zap.String("redemption_id", r.ID),
		zap.Float64("balance", out.Balance))
	return out, nil
}
