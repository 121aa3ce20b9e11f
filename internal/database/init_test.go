package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taylorconnect/hub/internal/database/schema"
)

func TestInitializeDatabase(t *testing.T) {
	t.Run("creates tables and seeds stats", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		for range schema.TableDefinitions {
			mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectExec("INSERT INTO site_stats").WillReturnResult(sqlmock.NewResult(0, 3))

		err = InitializeDatabase(context.Background(), db)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails on table creation error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS content").WillReturnError(errors.New("permission denied"))

		err = InitializeDatabase(context.Background(), db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create table")
	})

	t.Run("fails on seed error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		for range schema.TableDefinitions {
			mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectExec("INSERT INTO site_stats").WillReturnError(errors.New("disk full"))

		err = InitializeDatabase(context.Background(), db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to seed table")
	})
}

func TestCleanDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < 9; i++ {
		mock.ExpectExec("DROP TABLE IF EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, CleanDatabase(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
