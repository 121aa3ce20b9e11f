package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/internal/domain/mocks"
	"github.com/taylorconnect/hub/pkg/logger"
)

func strPtr(s string) *string { return &s }

func TestContentService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockContentRepository(ctrl)
	service := NewContentService(mockRepo, logger.NewTestLogger(t))
	ctx := context.Background()

	t.Run("defaults language", func(t *testing.T) {
		mockRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.ContentEntry) error {
			assert.Equal(t, "en", e.LanguageCode)
			assert.Equal(t, "", e.Value)
			e.ID = "c1"
			return nil
		})

		entry, err := service.Create(ctx, domain.CreateContentRequest{Page: "about", Section: "hero", Key: "title", Value: strPtr("")})
		require.NoError(t, err)
		assert.Equal(t, "c1", entry.ID)
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := service.Create(ctx, domain.CreateContentRequest{Page: "about", Section: "hero", Key: "title"})
		assert.EqualError(t, err, "validation error: Missing required field: value")
	})
}

func TestContentService_UpdateAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockContentRepository(ctrl)
	service := NewContentService(mockRepo, logger.NewTestLogger(t))
	ctx := context.Background()

	mockRepo.EXPECT().UpdateValue(ctx, "c1", "Hello").Return(&domain.ContentEntry{ID: "c1", Value: "Hello"}, nil)
	entry, err := service.Update(ctx, domain.UpdateContentRequest{ID: "c1", Value: strPtr("Hello")})
	require.NoError(t, err)
	assert.Equal(t, "Hello", entry.Value)

	_, err = service.Update(ctx, domain.UpdateContentRequest{ID: "c1"})
	assert.EqualError(t, err, "validation error: Missing required fields: id and value")

	notFound := &domain.ErrNotFound{Entity: "content", ID: "c2", Message: "Content not found"}
	mockRepo.EXPECT().Delete(ctx, "c2").Return(notFound)
	err = service.Delete(ctx, "c2")
	assert.Equal(t, notFound, err)

	assert.Error(t, service.Delete(ctx, ""))
}

func TestContentService_SeedDefaults(t *testing.T) {
	keys := []string{"volunteers_count", "hours_served_total", "partner_orgs_count"}
	filter := domain.ContentFilter{Page: "homepage", Section: "impact", Keys: keys, LanguageCode: "en"}
	ctx := context.Background()

	rows := func(keys ...string) []*domain.ContentEntry {
		var out []*domain.ContentEntry
		for _, k := range keys {
			out = append(out, &domain.ContentEntry{Page: "homepage", Section: "impact", Key: k, Value: "100"})
		}
		return out
	}

	t.Run("seeds only missing keys", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockRepo := mocks.NewMockContentRepository(ctrl)
		service := NewContentService(mockRepo, logger.NewTestLogger(t))

		gomock.InOrder(
			mockRepo.EXPECT().List(ctx, filter).Return(rows("volunteers_count"), nil),
			mockRepo.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.ContentEntry) error {
				assert.Equal(t, "hours_served_total", e.Key)
				assert.Equal(t, "100", e.Value)
				return nil
			}),
			mockRepo.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.ContentEntry) error {
				assert.Equal(t, "partner_orgs_count", e.Key)
				return nil
			}),
			mockRepo.EXPECT().List(ctx, filter).Return(rows(keys...), nil),
		)

		entries, err := service.SeedDefaults(ctx, "homepage", "impact", keys, "100")
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("second run writes nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockRepo := mocks.NewMockContentRepository(ctrl)
		service := NewContentService(mockRepo, logger.NewTestLogger(t))

		mockRepo.EXPECT().List(ctx, filter).Return(rows(keys...), nil).Times(2)
		mockRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(0)

		entries, err := service.SeedDefaults(ctx, "homepage", "impact", keys, "100")
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("re-reads once when rows lag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockRepo := mocks.NewMockContentRepository(ctrl)
		service := NewContentService(mockRepo, logger.NewTestLogger(t))

		gomock.InOrder(
			mockRepo.EXPECT().List(ctx, filter).Return(rows("volunteers_count", "hours_served_total"), nil),
			mockRepo.EXPECT().Upsert(ctx, gomock.Any()).Return(nil),
			mockRepo.EXPECT().List(ctx, filter).Return(rows("volunteers_count", "hours_served_total"), nil),
			mockRepo.EXPECT().List(ctx, filter).Return(rows(keys...), nil),
		)

		entries, err := service.SeedDefaults(ctx, "homepage", "impact", keys, "100")
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("rows still missing after re-read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockRepo := mocks.NewMockContentRepository(ctrl)
		service := NewContentService(mockRepo, logger.NewTestLogger(t))

		gomock.InOrder(
			mockRepo.EXPECT().List(ctx, filter).Return(rows("volunteers_count"), nil),
			mockRepo.EXPECT().Upsert(ctx, gomock.Any()).Return(nil).Times(2),
			mockRepo.EXPECT().List(ctx, filter).Return(rows("volunteers_count"), nil),
			mockRepo.EXPECT().List(ctx, filter).Return(rows("volunteers_count", "hours_served_total"), nil),
		)

		entries, err := service.SeedDefaults(ctx, "homepage", "impact", keys, "100")
		assert.EqualError(t, err, "seeded content not confirmed: found 2 of 3 keys")
		assert.Len(t, entries, 2)
	})

	t.Run("upsert failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockRepo := mocks.NewMockContentRepository(ctrl)
		service := NewContentService(mockRepo, logger.NewTestLogger(t))

		mockRepo.EXPECT().List(ctx, filter).Return(nil, nil)
		mockRepo.EXPECT().Upsert(ctx, gomock.Any()).Return(errors.New("read-only transaction"))

		_, err := service.SeedDefaults(ctx, "homepage", "impact", keys, "100")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to seed volunteers_count")
	})
}
