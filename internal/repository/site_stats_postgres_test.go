package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/internal/repository/testutil"
)

var siteStatsColumns = []string{
	"id", "stat_type", "calculated_value", "manual_override", "confirmed_total",
	"current_estimate", "last_calculated_at", "created_at", "updated_at",
}

func TestSiteStatsRepository_List(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewSiteStatsRepository(db)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(siteStatsColumns).
		AddRow("s1", "active_volunteers", 12, nil, 2500, 2500, now, now, now).
		AddRow("s2", "hours_contributed", 40, 9999, 15000, 15000, nil, now, now)

	mock.ExpectQuery(`SELECT .* FROM site_stats ORDER BY stat_type`).WillReturnRows(rows)

	stats, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, domain.StatActiveVolunteers, stats[0].StatType)
	assert.Nil(t, stats[0].ManualOverride)
	require.NotNil(t, stats[0].LastCalculatedAt)
	assert.Equal(t, int64(12), stats[0].DisplayValue())

	require.NotNil(t, stats[1].ManualOverride)
	assert.Equal(t, int64(9999), stats[1].DisplayValue())
	assert.Nil(t, stats[1].LastCalculatedAt)
	assert.Equal(t, int64(15000), stats[1].ConfirmedTotal)
}

func TestSiteStatsRepository_List_Error(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`FROM site_stats`).WillReturnError(errors.New("relation does not exist"))

	_, err := NewSiteStatsRepository(db).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list site stats")
}

func TestSiteStatsRepository_UpdateCalculated(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	at := time.Now().UTC()
	mock.ExpectExec(`INSERT INTO site_stats .* ON CONFLICT \(stat_type\) DO UPDATE SET calculated_value = EXCLUDED.calculated_value`).
		WithArgs(testutil.AnyUUID{}, "partner_organizations", int64(7), at, at, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewSiteStatsRepository(db).UpdateCalculated(context.Background(), domain.StatPartnerOrganizations, 7, at)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSiteStatsRepository_SetManualOverride(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewSiteStatsRepository(db)
	value := int64(9999)

	t.Run("set", func(t *testing.T) {
		mock.ExpectExec(`UPDATE site_stats SET manual_override = \$1, updated_at = \$2 WHERE stat_type = \$3`).
			WithArgs(int64(9999), testutil.AnyTime{}, "hours_contributed").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetManualOverride(context.Background(), domain.StatHoursContributed, &value))
	})

	t.Run("clear", func(t *testing.T) {
		mock.ExpectExec(`UPDATE site_stats SET manual_override`).
			WithArgs(nil, testutil.AnyTime{}, "hours_contributed").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetManualOverride(context.Background(), domain.StatHoursContributed, nil))
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec(`UPDATE site_stats SET manual_override`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetManualOverride(context.Background(), domain.StatActiveVolunteers, &value)
		var notFound *domain.ErrNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Statistic not found", err.Error())
	})
}

func TestSiteStatsRepository_UpdateField(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewSiteStatsRepository(db)

	t.Run("confirmed", func(t *testing.T) {
		mock.ExpectExec(`UPDATE site_stats SET confirmed_total = \$1, updated_at = \$2 WHERE stat_type = \$3`).
			WithArgs(int64(3000), testutil.AnyTime{}, "active_volunteers").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateField(context.Background(), domain.StatActiveVolunteers, domain.StatFieldConfirmed, 3000))
	})

	t.Run("estimate", func(t *testing.T) {
		mock.ExpectExec(`UPDATE site_stats SET current_estimate = \$1`).
			WithArgs(int64(3100), testutil.AnyTime{}, "active_volunteers").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateField(context.Background(), domain.StatActiveVolunteers, domain.StatFieldEstimate, 3100))
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec(`UPDATE site_stats`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateField(context.Background(), domain.StatHoursContributed, domain.StatFieldEstimate, 1)
		require.Error(t, err)
		assert.Equal(t, "Statistic not found: hours_contributed", err.Error())
	})
}
