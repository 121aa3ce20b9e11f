package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/taylorconnect/hub/internal/domain"
)

// ContentRepository implements domain.ContentRepository using PostgreSQL
type ContentRepository struct {
	systemDB *sql.DB
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *sql.DB) *ContentRepository {
	return &ContentRepository{
		systemDB: db,
	}
}

var contentColumns = []string{"id", "page", "section", "key", "value", "language_code", "created_at", "updated_at"}

func contentNotFound(id string) error {
	return &domain.ErrNotFound{Entity: "content", ID: id, Message: "Content not found"}
}

func scanContent(row interface{ Scan(...interface{}) error }) (*domain.ContentEntry, error) {
	entry := &domain.ContentEntry{}
	err := row.Scan(&entry.ID, &entry.Page, &entry.Section, &entry.Key, &entry.Value,
		&entry.LanguageCode, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns entries matching the filter ordered by page, section and key
func (r *ContentRepository) List(ctx context.Context, filter domain.ContentFilter) ([]*domain.ContentEntry, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.Select(contentColumns...).From("content")
	if filter.Page != "" {
		query = query.Where(sq.Eq{"page": filter.Page})
	}
	if filter.Section != "" {
		query = query.Where(sq.Eq{"section": filter.Section})
	}
	if len(filter.Keys) > 0 {
		query = query.Where(sq.Eq{"key": filter.Keys})
	}
	if filter.LanguageCode != "" {
		query = query.Where(sq.Eq{"language_code": filter.LanguageCode})
	}
	query = query.OrderBy("page", "section", "key")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build content query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	defer rows.Close()

	entries := []*domain.ContentEntry{}
	for rows.Next() {
		entry, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Create inserts a new entry. A duplicate natural key is a validation error.
func (r *ContentRepository) Create(ctx context.Context, entry *domain.ContentEntry) error {
	now := time.Now().UTC()
	entry.ID = uuid.New().String()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if entry.LanguageCode == "" {
		entry.LanguageCode = domain.DefaultLanguageCode
	}

	_, err := r.systemDB.ExecContext(ctx, `
		INSERT INTO content (id, page, section, key, value, language_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, entry.ID, entry.Page, entry.Section, entry.Key, entry.Value, entry.LanguageCode, entry.CreatedAt, entry.UpdatedAt)

	if isUniqueViolation(err) {
		return domain.NewValidationError(fmt.Sprintf("Content already exists for %s/%s/%s", entry.Page, entry.Section, entry.Key))
	}
	if err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}
	return nil
}

// Upsert inserts the entry or updates the value of the existing row in one statement
func (r *ContentRepository) Upsert(ctx context.Context, entry *domain.ContentEntry) error {
	now := time.Now().UTC()
	if entry.LanguageCode == "" {
		entry.LanguageCode = domain.DefaultLanguageCode
	}

	err := r.systemDB.QueryRowContext(ctx, `
		INSERT INTO content (id, page, section, key, value, language_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (page, section, key, language_code)
		DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`, uuid.New().String(), entry.Page, entry.Section, entry.Key, entry.Value, entry.LanguageCode, now, now,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert content %s/%s/%s: %w", entry.Page, entry.Section, entry.Key, err)
	}
	return nil
}

// UpdateValue changes the value of an entry by ID
func (r *ContentRepository) UpdateValue(ctx context.Context, id, value string) (*domain.ContentEntry, error) {
	row := r.systemDB.QueryRowContext(ctx, `
		UPDATE content SET value = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, page, section, key, value, language_code, created_at, updated_at
	`, value, time.Now().UTC(), id)

	entry, err := scanContent(row)
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return nil, contentNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update content: %w", err)
	}
	return entry, nil
}

// Delete removes an entry by ID
func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.systemDB.ExecContext(ctx, "DELETE FROM content WHERE id = $1", id)
	if isInvalidID(err) {
		return contentNotFound(id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return contentNotFound(id)
	}

	return nil
}

// PostgreSQL error codes
const (
	pgUniqueViolation           = "23505"
	pgInvalidTextRepresentation = "22P02"
)

func pgCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return err != nil && pgCode(err) == pgUniqueViolation
}

// isInvalidID reports a malformed UUID in a WHERE clause
func isInvalidID(err error) bool {
	return err != nil && pgCode(err) == pgInvalidTextRepresentation
}
