package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"soulsmc/internal/cache"
	apperrors "soulsmc/internal/errors"
	"soulsmc/internal/model"
	"soulsmc/internal/repository"
)

// MockGalleryRepository is a mock implementation of GalleryRepository.
type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) Create(ctx context.Context, image *model.GalleryImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockGalleryRepository) Update(ctx context.Context, image *model.GalleryImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockGalleryRepository) FindByID(ctx context.Context, id uint) (*model.GalleryImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GalleryImage), args.Error(1)
}

func (m *MockGalleryRepository) List(ctx context.Context, filters repository.GalleryFilters) ([]model.GalleryImage, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GalleryImage), args.Error(1)
}

func (m *MockGalleryRepository) Count(ctx context.Context, filters repository.GalleryFilters) (int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGalleryRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGalleryRepository) CountByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoryCount), args.Error(1)
}

// noCache is a nil cache client; every lookup is a miss.
var noCache *cache.Client

func TestGalleryServiceCreateValidatesURL(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a non-URL before persistence", func(t *testing.T) {
		repo := new(MockGalleryRepository)
		svc := NewGalleryService(repo, noCache)

		_, err := svc.Create(ctx, &model.GalleryImage{
			Title: "t", Category: "Club", Description: "d", ImageURL: "not a url",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidImageURL)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a relative URL", func(t *testing.T) {
		repo := new(MockGalleryRepository)
		svc := NewGalleryService(repo, noCache)

		_, err := svc.Create(ctx, &model.GalleryImage{
			Title: "t", Category: "Club", Description: "d", ImageURL: "/images/a.jpg",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidImageURL)
	})

	t.Run("accepts an absolute URL and defaults lists", func(t *testing.T) {
		repo := new(MockGalleryRepository)
		svc := NewGalleryService(repo, noCache)

		repo.On("Create", ctx, mock.AnythingOfType("*model.GalleryImage")).Return(nil)

		image, err := svc.Create(ctx, &model.GalleryImage{
			Title: "t", Category: "Club", Description: "d", ImageURL: "https://example.com/a.jpg",
		})
		require.NoError(t, err)
		assert.Equal(t, model.StringList{}, image.Tags)
		assert.Equal(t, model.StringList{}, image.Members)
		assert.False(t, image.Date.IsZero())
	})
}

func TestGalleryServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("missing image maps to not found", func(t *testing.T) {
		repo := new(MockGalleryRepository)
		svc := NewGalleryService(repo, noCache)

		repo.On("FindByID", ctx, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Update(ctx, 9, GalleryUpdate{})
		assert.ErrorIs(t, err, apperrors.ErrImageNotFound)
	})

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		repo := new(MockGalleryRepository)
		svc := NewGalleryService(repo, noCache)

		existing := &model.GalleryImage{
			ID: 3, Title: "Old", Category: "Club", Description: "d",
			ImageURL: "https://example.com/a.jpg",
			Tags:     model.StringList{"ride"},
			Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		}
		repo.On("FindByID", ctx, uint(3)).Return(existing, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*model.GalleryImage")).Return(nil)

		title := "New"
		updated, err := svc.Update(ctx, 3, GalleryUpdate{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, "Club", updated.Category)
		assert.Equal(t, model.StringList{"ride"}, updated.Tags)
	})

	t.Run("invalid replacement URL is rejected before persistence", func(t *testing.T) {
		repo := new(MockGalleryRepository)
		svc := NewGalleryService(repo, noCache)

		existing := &model.GalleryImage{ID: 3, ImageURL: "https://example.com/a.jpg"}
		repo.On("FindByID", ctx, uint(3)).Return(existing, nil)

		bad := "nope"
		_, err := svc.Update(ctx, 3, GalleryUpdate{ImageURL: &bad})
		assert.ErrorIs(t, err, apperrors.ErrInvalidImageURL)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestGalleryServiceDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockGalleryRepository)
	svc := NewGalleryService(repo, noCache)

	repo.On("Delete", ctx, uint(4)).Return(gorm.ErrRecordNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 4), apperrors.ErrImageNotFound)

	repo.On("Delete", ctx, uint(5)).Return(nil)
	assert.NoError(t, svc.Delete(ctx, 5))
}

func TestGalleryServiceList(t *testing.T) {
	ctx := context.Background()
	repo := new(MockGalleryRepository)
	svc := NewGalleryService(repo, noCache)

	filters := repository.GalleryFilters{Category: "Club"}
	repo.On("List", ctx, filters).Return([]model.GalleryImage{{ID: 1}}, nil)
	repo.On("Count", ctx, filters).Return(int64(7), nil)

	images, total, err := svc.List(ctx, filters)
	require.NoError(t, err)
	assert.Len(t, images, 1)
	assert.Equal(t, int64(7), total)
}
