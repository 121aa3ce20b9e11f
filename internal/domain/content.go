package domain

import (
	"context"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_content_repository.go -package mocks github.com/taylorconnect/hub/internal/domain ContentRepository
//go:generate mockgen -destination mocks/mock_content_service.go -package mocks github.com/taylorconnect/hub/internal/domain ContentService

const DefaultLanguageCode = "en"

// The homepage impact block mirrors the computed statistics
const (
	ImpactPage    = "homepage"
	ImpactSection = "impact"
)

// ContentEntry is one display string keyed by page, section, key and language
type ContentEntry struct {
	ID           string    `json:"id"`
	Page         string    `json:"page"`
	Section      string    `json:"section"`
	Key          string    `json:"key"`
	Value        string    `json:"value"`
	LanguageCode string    `json:"language_code"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ContentFilter narrows a content listing. Empty fields match everything.
type ContentFilter struct {
	Page         string
	Section      string
	Keys         []string
	LanguageCode string
}

// ParseKeys splits a comma separated key list, dropping blanks
func ParseKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// CreateContentRequest is the body of a content creation call
type CreateContentRequest struct {
	Page         string  `json:"page"`
	Section      string  `json:"section"`
	Key          string  `json:"key"`
	Value        *string `json:"value"`
	LanguageCode string  `json:"language_code,omitempty"`
}

func (r *CreateContentRequest) Validate() error {
	required := []struct {
		name    string
		present bool
	}{
		{"page", r.Page != ""},
		{"section", r.Section != ""},
		{"key", r.Key != ""},
		{"value", r.Value != nil},
	}
	for _, f := range required {
		if !f.present {
			return NewValidationError("Missing required field: " + f.name)
		}
	}
	if r.LanguageCode == "" {
		r.LanguageCode = DefaultLanguageCode
	}
	return nil
}

// UpdateContentRequest replaces the value of an existing entry
type UpdateContentRequest struct {
	ID    string  `json:"id"`
	Value *string `json:"value"`
}

func (r *UpdateContentRequest) Validate() error {
	if r.ID == "" || r.Value == nil {
		return NewValidationError("Missing required fields: id and value")
	}
	return nil
}

// ContentRepository stores content entries
type ContentRepository interface {
	// List returns entries matching the filter ordered by page, section and key
	List(ctx context.Context, filter ContentFilter) ([]*ContentEntry, error)

	// Create inserts a new entry and fills its ID and timestamps
	Create(ctx context.Context, entry *ContentEntry) error

	// Upsert inserts the entry or updates the value of the row with the same natural key,
	// in a single statement
	Upsert(ctx context.Context, entry *ContentEntry) error

	// UpdateValue changes the value of an entry by ID
	UpdateValue(ctx context.Context, id, value string) (*ContentEntry, error)

	// Delete removes an entry by ID
	Delete(ctx context.Context, id string) error
}

// ContentService is the key-value view over content used by handlers and scripts
type ContentService interface {
	List(ctx context.Context, filter ContentFilter) ([]*ContentEntry, error)
	Create(ctx context.Context, req CreateContentRequest) (*ContentEntry, error)
	Update(ctx context.Context, req UpdateContentRequest) (*ContentEntry, error)
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, page, section, key, value, languageCode string) (*ContentEntry, error)

	// SeedDefaults writes value for every key that is absent and returns the final rows
	SeedDefaults(ctx context.Context, page, section string, keys []string, value string) ([]*ContentEntry, error)
}
