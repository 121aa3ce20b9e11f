package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/internal/repository/testutil"
)

func TestImpactRepository_CountActiveVolunteers(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewImpactRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM profiles WHERE user_type = 'volunteer' AND LOWER\(COALESCE\(status, ''\)\) = 'active'`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountActiveVolunteers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)

	mock.ExpectQuery(`FROM profiles`).WillReturnError(errors.New("permission denied"))

	_, err = repo.CountActiveVolunteers(context.Background())
	assert.Error(t, err)
}

func TestImpactRepository_CountPartnerOrganizations(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewImpactRepository(db)

	tests := []struct {
		name     string
		approved int64
		total    int64
		want     int64
	}{
		{"approved organizations", 3, 10, 3},
		{"none approved falls back to total", 0, 10, 10},
		{"empty table", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(`COUNT\(\*\) FILTER \(WHERE LOWER\(COALESCE\(status, ''\)\) = 'approved'\), COUNT\(\*\) FROM organizations`).
				WillReturnRows(sqlmock.NewRows([]string{"approved", "total"}).AddRow(tt.approved, tt.total))

			count, err := repo.CountPartnerOrganizations(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, count)
		})
	}
}

func TestImpactRepository_ListSignupWindows(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewImpactRepository(db)

	rows := sqlmock.NewRows([]string{"arrival_time", "estimated_end_time"}).
		AddRow("2024-05-01T09:00:00Z", "2024-05-01T11:30:00Z").
		AddRow(nil, "2024-05-01T11:30:00Z").
		AddRow(nil, nil)

	mock.ExpectQuery(`SELECT e.arrival_time, e.estimated_end_time FROM user_events ue LEFT JOIN events e ON e.id = ue.event_id`).
		WillReturnRows(rows)

	windows, err := repo.ListSignupWindows(context.Background())
	require.NoError(t, err)
	require.Len(t, windows, 3)
	assert.Equal(t, "2024-05-01T09:00:00Z", windows[0].ArrivalTime)
	assert.Empty(t, windows[1].ArrivalTime)
	assert.Equal(t, int64(2+2+2), domain.TotalHours(windows))
}
