package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taylorconnect/hub/internal/domain"
)

// ImpactRepository reads the raw tables behind the site statistics
type ImpactRepository struct {
	systemDB *sql.DB
}

// NewImpactRepository creates a new ImpactRepository
func NewImpactRepository(db *sql.DB) *ImpactRepository {
	return &ImpactRepository{
		systemDB: db,
	}
}

// CountActiveVolunteers counts volunteer profiles whose status is active
func (r *ImpactRepository) CountActiveVolunteers(ctx context.Context) (int64, error) {
	var count int64
	err := r.systemDB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM profiles
		WHERE user_type = 'volunteer' AND LOWER(COALESCE(status, '')) = 'active'
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active volunteers: %w", err)
	}
	return count, nil
}

// CountPartnerOrganizations counts approved organizations, falling back to every
// organization when none is approved yet
func (r *ImpactRepository) CountPartnerOrganizations(ctx context.Context) (int64, error) {
	var approved, total int64
	err := r.systemDB.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE LOWER(COALESCE(status, '')) = 'approved'),
			COUNT(*)
		FROM organizations
	`).Scan(&approved, &total)
	if err != nil {
		return 0, fmt.Errorf("failed to count organizations: %w", err)
	}
	if approved > 0 {
		return approved, nil
	}
	return total, nil
}

// ListSignupWindows returns the event window behind every signup
func (r *ImpactRepository) ListSignupWindows(ctx context.Context) ([]domain.SignupWindow, error) {
	rows, err := r.systemDB.QueryContext(ctx, `
		SELECT e.arrival_time, e.estimated_end_time
		FROM user_events ue
		LEFT JOIN events e ON e.id = ue.event_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list signups: %w", err)
	}
	defer rows.Close()

	var windows []domain.SignupWindow
	for rows.Next() {
		var arrival, end sql.NullString
		if err := rows.Scan(&arrival, &end); err != nil {
			return nil, fmt.Errorf("failed to scan signup: %w", err)
		}
		windows = append(windows, domain.SignupWindow{
			ArrivalTime:      arrival.String,
			EstimatedEndTime: end.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return windows, nil
}
