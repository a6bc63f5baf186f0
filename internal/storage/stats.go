package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (s *PostgresStorage) GetOrderStatistics(ctx context.Context) (*OrderStatistics, error) {
	const operation = "storage.GetOrderStatistics"

	if cached, err := s.cache.Get(ctx, statsCacheKey); err == nil {
		var stats OrderStatistics
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	}

	stats := &OrderStatistics{
		StatusCounts: make(map[string]int),
	}

	type countRevenue struct {
		Count   int             `db:"count"`
		Revenue decimal.Decimal `db:"revenue"`
	}

	const windowQuery = `
        SELECT
            COUNT(*) AS count,
            COALESCE(SUM(price), 0) AS revenue
        FROM jobs
        WHERE status <> 'Cancelled' AND created_at >= %s
    `

	var total countRevenue
	if err := s.db.GetContext(ctx, &total, fmt.Sprintf(windowQuery, "'-infinity'::timestamptz")); err != nil {
		return nil, fmt.Errorf("%s: total: %w", operation, err)
	}
	stats.TotalOrders, stats.TotalRevenue = total.Count, total.Revenue

	windows := []struct {
		since   string
		orders  *int
		revenue *decimal.Decimal
	}{
		{"CURRENT_DATE", &stats.TodayOrders, &stats.TodayRevenue},
		{"CURRENT_DATE - INTERVAL '7 days'", &stats.WeekOrders, &stats.WeekRevenue},
		{"CURRENT_DATE - INTERVAL '30 days'", &stats.MonthOrders, &stats.MonthRevenue},
	}
	for _, w := range windows {
		var cr countRevenue
		if err := s.db.GetContext(ctx, &cr, fmt.Sprintf(windowQuery, w.since)); err != nil {
			return nil, fmt.Errorf("%s: since %s: %w", operation, w.since, err)
		}
		*w.orders, *w.revenue = cr.Count, cr.Revenue
	}

	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get status counts: %w", operation, err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%s: failed to scan status count: %w", operation, err)
		}
		stats.StatusCounts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL); err != nil {
			s.logger.Warn("Failed to cache order statistics", zap.Error(err))
		}
	}

	return stats, nil
}
