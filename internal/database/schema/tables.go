// Package schema defines the database schema.
//
// Statements are idempotent and run on every boot.
package schema

// TableDefinitions contains all the SQL statements to create the database tables
// Don't put REFERENCES and don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS content (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		page VARCHAR(100) NOT NULL,
		section VARCHAR(100) NOT NULL,
		key VARCHAR(255) NOT NULL,
		value TEXT NOT NULL,
		language_code VARCHAR(10) NOT NULL DEFAULT 'en',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (page, section, key, language_code)
	)`,
	`CREATE TABLE IF NOT EXISTS site_stats (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		stat_type VARCHAR(50) UNIQUE NOT NULL,
		calculated_value BIGINT NOT NULL DEFAULT 0,
		manual_override BIGINT,
		confirmed_total BIGINT NOT NULL DEFAULT 0,
		current_estimate BIGINT NOT NULL DEFAULT 0,
		last_calculated_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email VARCHAR(255) UNIQUE NOT NULL,
		full_name VARCHAR(255),
		user_type VARCHAR(20) NOT NULL DEFAULT 'volunteer',
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		role VARCHAR(20) NOT NULL DEFAULT 'user',
		password_hash VARCHAR(255),
		verification_code VARCHAR(10),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS organizations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID,
		name VARCHAR(255) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title VARCHAR(255) NOT NULL,
		description TEXT,
		organization_id UUID,
		location VARCHAR(255),
		arrival_time TIMESTAMPTZ,
		estimated_end_time TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS user_events (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL,
		event_id UUID NOT NULL,
		signed_up_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, event_id)
	)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		event_id UUID NOT NULL,
		user_id UUID,
		organization_id UUID,
		message TEXT NOT NULL,
		is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL,
		event_id UUID NOT NULL,
		chat_message_id UUID NOT NULL,
		notification_type VARCHAR(50) NOT NULL DEFAULT 'chat_message',
		scheduled_for TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		sent_at TIMESTAMPTZ,
		email_sent BOOLEAN NOT NULL DEFAULT FALSE,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_due ON notifications (scheduled_for) WHERE sent_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_event ON notifications (user_id, event_id, sent_at) WHERE email_sent = TRUE`,
	`CREATE TABLE IF NOT EXISTS notification_preferences (
		user_id UUID PRIMARY KEY,
		email_frequency VARCHAR(20) NOT NULL DEFAULT 'immediate',
		chat_notifications BOOLEAN NOT NULL DEFAULT TRUE,
		event_updates BOOLEAN NOT NULL DEFAULT TRUE,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// SeedStatements creates one site_stats row per statistic
var SeedStatements = []string{
	`INSERT INTO site_stats (stat_type, confirmed_total, current_estimate) VALUES
		('active_volunteers', 2500, 2500),
		('hours_contributed', 15000, 15000),
		('partner_organizations', 50, 50)
	ON CONFLICT (stat_type) DO NOTHING`,
}
