package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taylorconnect/hub/internal/database/schema"
)

// InitializeDatabase creates all necessary database tables if they don't exist
// and seeds the statistic rows
func InitializeDatabase(ctx context.Context, db *sql.DB) error {
	for _, query := range schema.TableDefinitions {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, query := range schema.SeedStatements {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to seed table: %w", err)
		}
	}

	return nil
}

// CleanDatabase drops every table. Test helper.
func CleanDatabase(ctx context.Context, db *sql.DB) error {
	tables := []string{
		"notification_preferences", "notifications", "chat_messages", "user_events",
		"events", "organizations", "profiles", "site_stats", "content",
	}
	for _, table := range tables {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
