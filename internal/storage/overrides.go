package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"printit-bot/internal/pricing"

	"go.uber.org/zap"
)

// GetPricingOverrides returns the stored admin overrides, read through
// the cache. No stored row means no overrides.
func (s *PostgresStorage) GetPricingOverrides(ctx context.Context) (pricing.Overrides, error) {
	const operation = "storage.GetPricingOverrides"

	if cached, err := s.cache.Get(ctx, overridesCacheKey); err == nil {
		if o, err := pricing.ParseOverrides(cached); err == nil {
			return o, nil
		}
	}

	var data []byte
	err := s.db.GetContext(ctx, &data, `SELECT data FROM pricing_overrides WHERE id = 1`)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	o, err := pricing.ParseOverrides(data)
	if err != nil {
		// a corrupt blob must not block pricing
		s.logger.Error("Stored pricing overrides are not valid JSON, ignoring",
			zap.Error(err))
		return pricing.Overrides{}, nil
	}

	if len(data) > 0 {
		if err := s.cache.Set(ctx, overridesCacheKey, data, overridesCacheTTL); err != nil {
			s.logger.Warn("Failed to cache pricing overrides", zap.Error(err))
		}
	}

	return o, nil
}

func (s *PostgresStorage) SavePricingOverrides(ctx context.Context, o pricing.Overrides, updatedBy int64) error {
	const operation = "storage.SavePricingOverrides"

	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", operation, err)
	}

	const query = `
        INSERT INTO pricing_overrides (id, data, updated_by, updated_at)
        VALUES (1, $1, $2, NOW())
        ON CONFLICT (id) DO UPDATE
        SET data = EXCLUDED.data, updated_by = EXCLUDED.updated_by, updated_at = NOW()
    `
	if _, err := s.db.ExecContext(ctx, query, data, updatedBy); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	s.invalidate(ctx, overridesCacheKey)
	return nil
}

func (s *PostgresStorage) ResetPricingOverrides(ctx context.Context) error {
	const operation = "storage.ResetPricingOverrides"

	if _, err := s.db.ExecContext(ctx, `DELETE FROM pricing_overrides`); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	s.invalidate(ctx, overridesCacheKey)
	return nil
}
