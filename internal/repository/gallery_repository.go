package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"soulsmc/internal/model"
)

// GalleryFilters narrows List results. Zero values mean "no filter";
// Category "all" is treated the same as empty.
type GalleryFilters struct {
	Category     string
	Featured     *bool
	Search       string
	Member       string
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	ItemsPerPage int
}

// GalleryRepository defines gallery image persistence operations.
type GalleryRepository interface {
	Create(ctx context.Context, image *model.GalleryImage) error
	Update(ctx context.Context, image *model.GalleryImage) error
	FindByID(ctx context.Context, id uint) (*model.GalleryImage, error)
	List(ctx context.Context, filters GalleryFilters) ([]model.GalleryImage, error)
	Count(ctx context.Context, filters GalleryFilters) (int64, error)
	Delete(ctx context.Context, id uint) error
	CountByCategory(ctx context.Context) ([]model.CategoryCount, error)
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository builds a GORM-backed repository.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Create(ctx context.Context, image *model.GalleryImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *galleryRepository) Update(ctx context.Context, image *model.GalleryImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *galleryRepository) FindByID(ctx context.Context, id uint) (*model.GalleryImage, error) {
	var image model.GalleryImage
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// applyFilters builds the WHERE clause shared by List and Count. Tags
// and members are JSON text columns, so term matches run against the
// serialized form, mirroring how the data is queried elsewhere.
func applyFilters(query *gorm.DB, filters GalleryFilters) *gorm.DB {
	if filters.Category != "" && filters.Category != "all" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}
	if filters.Search != "" {
		term := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ? OR LOWER(tags) LIKE ? OR LOWER(members) LIKE ?",
			term, term, term, term, term,
		)
	}
	if filters.Member != "" {
		query = query.Where("LOWER(members) LIKE ?", "%"+strings.ToLower(filters.Member)+"%")
	}
	if filters.StartDate != nil && filters.EndDate != nil {
		query = query.Where("date BETWEEN ? AND ?", *filters.StartDate, *filters.EndDate)
	}
	return query
}

func (r *galleryRepository) List(ctx context.Context, filters GalleryFilters) ([]model.GalleryImage, error) {
	query := applyFilters(r.db.WithContext(ctx).Model(&model.GalleryImage{}), filters)
	query = query.Order("date DESC")

	if filters.Page > 0 && filters.ItemsPerPage > 0 {
		offset := (filters.Page - 1) * filters.ItemsPerPage
		query = query.Limit(filters.ItemsPerPage).Offset(offset)
	}

	var images []model.GalleryImage
	if err := query.Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *galleryRepository) Count(ctx context.Context, filters GalleryFilters) (int64, error) {
	var total int64
	query := applyFilters(r.db.WithContext(ctx).Model(&model.GalleryImage{}), filters)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *galleryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.GalleryImage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *galleryRepository) CountByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	var counts []model.CategoryCount
	err := r.db.WithContext(ctx).Model(&model.GalleryImage{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("category ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
