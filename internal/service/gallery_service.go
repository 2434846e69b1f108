package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"gorm.io/gorm"

	"soulsmc/internal/cache"
	apperrors "soulsmc/internal/errors"
	"soulsmc/internal/model"
	"soulsmc/internal/repository"
)

const categoriesCacheKey = "gallery:categories"

// GalleryUpdate carries a partial gallery image update. Nil fields are
// left untouched.
type GalleryUpdate struct {
	Title       *string
	Category    *string
	Description *string
	ImageURL    *string
	Tags        *model.StringList
	Members     *model.StringList
	Featured    *bool
	Location    *string
	Date        *time.Time
}

// GalleryService exposes gallery operations.
type GalleryService interface {
	List(ctx context.Context, filters repository.GalleryFilters) ([]model.GalleryImage, int64, error)
	GetByID(ctx context.Context, id uint) (*model.GalleryImage, error)
	Create(ctx context.Context, image *model.GalleryImage) (*model.GalleryImage, error)
	Update(ctx context.Context, id uint, update GalleryUpdate) (*model.GalleryImage, error)
	Delete(ctx context.Context, id uint) error
	Categories(ctx context.Context) ([]model.CategoryCount, error)
}

type galleryService struct {
	galleryRepo repository.GalleryRepository
	cache       *cache.Client
}

// NewGalleryService creates a new gallery service.
func NewGalleryService(galleryRepo repository.GalleryRepository, cacheClient *cache.Client) GalleryService {
	return &galleryService{
		galleryRepo: galleryRepo,
		cache:       cacheClient,
	}
}

// validImageURL accepts only absolute http(s) URLs.
func validImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// List returns the filtered page plus the total count of matching rows
// so callers can paginate.
func (s *galleryService) List(ctx context.Context, filters repository.GalleryFilters) ([]model.GalleryImage, int64, error) {
	images, err := s.galleryRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list gallery images: %w", err)
	}
	total, err := s.galleryRepo.Count(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("count gallery images: %w", err)
	}
	return images, total, nil
}

func (s *galleryService) GetByID(ctx context.Context, id uint) (*model.GalleryImage, error) {
	image, err := s.galleryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, fmt.Errorf("find gallery image: %w", err)
	}
	return image, nil
}

func (s *galleryService) Create(ctx context.Context, image *model.GalleryImage) (*model.GalleryImage, error) {
	if !validImageURL(image.ImageURL) {
		return nil, apperrors.ErrInvalidImageURL
	}
	if image.Tags == nil {
		image.Tags = model.StringList{}
	}
	if image.Members == nil {
		image.Members = model.StringList{}
	}
	if image.Date.IsZero() {
		image.Date = time.Now()
	}

	if err := s.galleryRepo.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("create gallery image: %w", err)
	}
	_ = s.cache.Delete(ctx, categoriesCacheKey)
	return image, nil
}

func (s *galleryService) Update(ctx context.Context, id uint, update GalleryUpdate) (*model.GalleryImage, error) {
	image, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.ImageURL != nil {
		if !validImageURL(*update.ImageURL) {
			return nil, apperrors.ErrInvalidImageURL
		}
		image.ImageURL = *update.ImageURL
	}
	if update.Title != nil {
		image.Title = *update.Title
	}
	if update.Category != nil {
		image.Category = *update.Category
	}
	if update.Description != nil {
		image.Description = *update.Description
	}
	if update.Tags != nil {
		image.Tags = *update.Tags
	}
	if update.Members != nil {
		image.Members = *update.Members
	}
	if update.Featured != nil {
		image.Featured = *update.Featured
	}
	if update.Location != nil {
		image.Location = *update.Location
	}
	if update.Date != nil {
		image.Date = *update.Date
	}

	if err := s.galleryRepo.Update(ctx, image); err != nil {
		return nil, fmt.Errorf("update gallery image: %w", err)
	}
	_ = s.cache.Delete(ctx, categoriesCacheKey)
	return image, nil
}

func (s *galleryService) Delete(ctx context.Context, id uint) error {
	if err := s.galleryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrImageNotFound
		}
		return fmt.Errorf("delete gallery image: %w", err)
	}
	_ = s.cache.Delete(ctx, categoriesCacheKey)
	return nil
}

func (s *galleryService) Categories(ctx context.Context) ([]model.CategoryCount, error) {
	var cached []model.CategoryCount
	if s.cache.GetJSON(ctx, categoriesCacheKey, &cached) {
		return cached, nil
	}

	counts, err := s.galleryRepo.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	s.cache.SetJSON(ctx, categoriesCacheKey, counts, countsCacheTTL)
	return counts, nil
}
