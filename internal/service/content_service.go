package service

import (
	"context"
	"fmt"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/pkg/logger"
)

type ContentService struct {
	repo   domain.ContentRepository
	logger logger.Logger
}

func NewContentService(repo domain.ContentRepository, logger logger.Logger) *ContentService {
	return &ContentService{
		repo:   repo,
		logger: logger,
	}
}

var _ domain.ContentService = (*ContentService)(nil)

func (s *ContentService) List(ctx context.Context, filter domain.ContentFilter) ([]*domain.ContentEntry, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.WithField("page", filter.Page).Error(fmt.Sprintf("Failed to list content: %v", err))
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	return entries, nil
}

func (s *ContentService) Create(ctx context.Context, req domain.CreateContentRequest) (*domain.ContentEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry := &domain.ContentEntry{
		Page:         req.Page,
		Section:      req.Section,
		Key:          req.Key,
		Value:        *req.Value,
		LanguageCode: req.LanguageCode,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ContentService) Update(ctx context.Context, req domain.UpdateContentRequest) (*domain.ContentEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry, err := s.repo.UpdateValue(ctx, req.ID, *req.Value)
	if err != nil {
		s.logger.WithField("content_id", req.ID).Error(fmt.Sprintf("Failed to update content: %v", err))
		return nil, err
	}
	return entry, nil
}

func (s *ContentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("Missing required parameter: id")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.WithField("content_id", id).Error(fmt.Sprintf("Failed to delete content: %v", err))
		return err
	}
	return nil
}

// Upsert writes value under the natural key, creating the row when missing
func (s *ContentService) Upsert(ctx context.Context, page, section, key, value, languageCode string) (*domain.ContentEntry, error) {
	if languageCode == "" {
		languageCode = domain.DefaultLanguageCode
	}
	entry := &domain.ContentEntry{
		Page:         page,
		Section:      section,
		Key:          key,
		Value:        value,
		LanguageCode: languageCode,
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// SeedDefaults writes value for every absent key and reads the rows back. The
// read is repeated once when the store returns fewer rows than keys; if the rows
// are still short the rows found are returned with an error.
func (s *ContentService) SeedDefaults(ctx context.Context, page, section string, keys []string, value string) ([]*domain.ContentEntry, error) {
	filter := domain.ContentFilter{
		Page:         page,
		Section:      section,
		Keys:         keys,
		LanguageCode: domain.DefaultLanguageCode,
	}

	existing, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing content: %w", err)
	}

	present := make(map[string]bool, len(existing))
	for _, e := range existing {
		present[e.Key] = true
	}

	for _, key := range keys {
		if present[key] {
			s.logger.WithField("key", key).Debug("Content key already present")
			continue
		}
		if _, err := s.Upsert(ctx, page, section, key, value, domain.DefaultLanguageCode); err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", key, err)
		}
		s.logger.WithFields(map[string]interface{}{
			"page":    page,
			"section": section,
			"key":     key,
			"value":   value,
		}).Info("Seeded content key")
	}

	final, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to read seeded content: %w", err)
	}
	if len(final) < len(keys) {
		s.logger.WithFields(map[string]interface{}{
			"expected": len(keys),
			"found":    len(final),
		}).Warn("Seeded content not visible yet, reading again")

		final, err = s.repo.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to read seeded content: %w", err)
		}
		if len(final) < len(keys) {
			return final, fmt.Errorf("seeded content not confirmed: found %d of %d keys", len(final), len(keys))
		}
	}

	return final, nil
}
