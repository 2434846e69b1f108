package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"soulsmc/internal/model"
)

// MemberFilters narrows List results. Zero values mean "no filter".
type MemberFilters struct {
	Rank    string
	Chapter string
	Search  string
}

// MemberRepository defines member persistence operations.
type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	Update(ctx context.Context, member *model.Member) error
	FindByID(ctx context.Context, id uint) (*model.Member, error)
	List(ctx context.Context, filters MemberFilters) ([]model.Member, error)
	// Delete removes the member and nulls the memberId of any user that
	// references it, in one transaction.
	Delete(ctx context.Context, id uint) error
	CountByRank(ctx context.Context) ([]model.RankCount, error)
	CountByChapter(ctx context.Context) ([]model.ChapterCount, error)
	Count(ctx context.Context) (int64, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository builds a GORM-backed repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) Update(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *memberRepository) FindByID(ctx context.Context, id uint) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) List(ctx context.Context, filters MemberFilters) ([]model.Member, error) {
	query := r.db.WithContext(ctx).Model(&model.Member{})

	if filters.Rank != "" {
		query = query.Where("`rank` = ?", filters.Rank)
	}
	if filters.Chapter != "" {
		query = query.Where("chapter = ?", filters.Chapter)
	}
	if filters.Search != "" {
		term := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(roadname) LIKE ? OR LOWER(`rank`) LIKE ? OR LOWER(chapter) LIKE ? OR LOWER(bio) LIKE ?",
			term, term, term, term, term,
		)
	}

	var members []model.Member
	if err := query.Order("`rank` ASC").Order("name ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).
			Where("member_id = ?", id).
			Update("member_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Member{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *memberRepository) CountByRank(ctx context.Context) ([]model.RankCount, error) {
	var counts []model.RankCount
	err := r.db.WithContext(ctx).Model(&model.Member{}).
		Select("`rank`, COUNT(*) AS count").
		Group("`rank`").
		Order("`rank` ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *memberRepository) CountByChapter(ctx context.Context) ([]model.ChapterCount, error) {
	var counts []model.ChapterCount
	err := r.db.WithContext(ctx).Model(&model.Member{}).
		Select("chapter, COUNT(*) AS count").
		Group("chapter").
		Order("chapter ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *memberRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Member{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
