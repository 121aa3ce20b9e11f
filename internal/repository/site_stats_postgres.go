package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/taylorconnect/hub/internal/domain"
)

// SiteStatsRepository implements domain.SiteStatsRepository using PostgreSQL
type SiteStatsRepository struct {
	systemDB *sql.DB
}

// NewSiteStatsRepository creates a new SiteStatsRepository
func NewSiteStatsRepository(db *sql.DB) *SiteStatsRepository {
	return &SiteStatsRepository{
		systemDB: db,
	}
}

// List returns every statistic row
func (r *SiteStatsRepository) List(ctx context.Context) ([]*domain.SiteStatistic, error) {
	rows, err := r.systemDB.QueryContext(ctx, `
		SELECT id, stat_type, calculated_value, manual_override, confirmed_total,
			current_estimate, last_calculated_at, created_at, updated_at
		FROM site_stats
		ORDER BY stat_type
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list site stats: %w", err)
	}
	defer rows.Close()

	var stats []*domain.SiteStatistic
	for rows.Next() {
		var (
			stat           domain.SiteStatistic
			manualOverride sql.NullInt64
			lastCalculated sql.NullTime
		)
		err := rows.Scan(&stat.ID, &stat.StatType, &stat.CalculatedValue, &manualOverride,
			&stat.ConfirmedTotal, &stat.CurrentEstimate, &lastCalculated, &stat.CreatedAt, &stat.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan site stat: %w", err)
		}
		if manualOverride.Valid {
			v := manualOverride.Int64
			stat.ManualOverride = &v
		}
		if lastCalculated.Valid {
			t := lastCalculated.Time
			stat.LastCalculatedAt = &t
		}
		stats = append(stats, &stat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// UpdateCalculated stores a calculated value, creating the row when missing.
// The manual override is never touched.
func (r *SiteStatsRepository) UpdateCalculated(ctx context.Context, statType domain.StatType, value int64, calculatedAt time.Time) error {
	_, err := r.systemDB.ExecContext(ctx, `
		INSERT INTO site_stats (id, stat_type, calculated_value, last_calculated_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (stat_type)
		DO UPDATE SET
			calculated_value = EXCLUDED.calculated_value,
			last_calculated_at = EXCLUDED.last_calculated_at,
			updated_at = EXCLUDED.updated_at
	`, uuid.New().String(), string(statType), value, calculatedAt, calculatedAt, calculatedAt)
	if err != nil {
		return fmt.Errorf("failed to update calculated value for %s: %w", statType, err)
	}
	return nil
}

// SetManualOverride sets the override, nil clears it
func (r *SiteStatsRepository) SetManualOverride(ctx context.Context, statType domain.StatType, value *int64) error {
	var override sql.NullInt64
	if value != nil {
		override = sql.NullInt64{Int64: *value, Valid: true}
	}

	result, err := r.systemDB.ExecContext(ctx,
		"UPDATE site_stats SET manual_override = $1, updated_at = $2 WHERE stat_type = $3",
		override, time.Now().UTC(), string(statType),
	)
	if err != nil {
		return fmt.Errorf("failed to set manual override for %s: %w", statType, err)
	}

	return requireAffected(result, &domain.ErrNotFound{Entity: "statistic", ID: string(statType), Message: "Statistic not found"})
}

// UpdateField sets the confirmed total or the current estimate
func (r *SiteStatsRepository) UpdateField(ctx context.Context, statType domain.StatType, field domain.StatField, value int64) error {
	column := "current_estimate"
	if field == domain.StatFieldConfirmed {
		column = "confirmed_total"
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query := psql.Update("site_stats").
		Set(column, value).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"stat_type": string(statType)})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	result, err := r.systemDB.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s for %s: %w", column, statType, err)
	}

	return requireAffected(result, &domain.ErrNotFound{
		Entity:  "statistic",
		ID:      string(statType),
		Message: "Statistic not found: " + string(statType),
	})
}

// requireAffected returns notFound when the statement matched no row
func requireAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
