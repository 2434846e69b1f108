package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"soulsmc/internal/cache"
	apperrors "soulsmc/internal/errors"
	"soulsmc/internal/model"
	"soulsmc/internal/repository"
)

const (
	ranksCacheKey    = "members:ranks"
	chaptersCacheKey = "members:chapters"
	countsCacheTTL   = 5 * time.Minute
)

// MemberUpdate carries a partial member update. Nil fields are left
// untouched.
type MemberUpdate struct {
	Name     *string
	Roadname *string
	Rank     *string
	Chapter  *string
	Bio      *string
	Image    *string
	JoinDate *time.Time
	IsActive *bool
}

// MemberService exposes roster operations.
type MemberService interface {
	List(ctx context.Context, filters repository.MemberFilters) ([]model.Member, error)
	GetByID(ctx context.Context, id uint) (*model.Member, error)
	Create(ctx context.Context, member *model.Member) (*model.Member, error)
	Update(ctx context.Context, id uint, update MemberUpdate) (*model.Member, error)
	Delete(ctx context.Context, id uint) error
	Ranks(ctx context.Context) ([]model.RankCount, error)
	Chapters(ctx context.Context) ([]model.ChapterCount, error)
	Stats(ctx context.Context) (*model.MemberStats, error)
}

type memberService struct {
	memberRepo repository.MemberRepository
	cache      *cache.Client
}

// NewMemberService creates a new member service.
func NewMemberService(memberRepo repository.MemberRepository, cacheClient *cache.Client) MemberService {
	return &memberService{
		memberRepo: memberRepo,
		cache:      cacheClient,
	}
}

func (s *memberService) List(ctx context.Context, filters repository.MemberFilters) ([]model.Member, error) {
	members, err := s.memberRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (s *memberService) GetByID(ctx context.Context, id uint) (*model.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return member, nil
}

func (s *memberService) Create(ctx context.Context, member *model.Member) (*model.Member, error) {
	member.IsActive = true
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	s.invalidateCounts(ctx)
	return member, nil
}

func (s *memberService) Update(ctx context.Context, id uint, update MemberUpdate) (*model.Member, error) {
	member, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		member.Name = *update.Name
	}
	if update.Roadname != nil {
		member.Roadname = *update.Roadname
	}
	if update.Rank != nil {
		member.Rank = *update.Rank
	}
	if update.Chapter != nil {
		member.Chapter = *update.Chapter
	}
	if update.Bio != nil {
		member.Bio = *update.Bio
	}
	if update.Image != nil {
		member.Image = *update.Image
	}
	if update.JoinDate != nil {
		member.JoinDate = update.JoinDate
	}
	if update.IsActive != nil {
		member.IsActive = *update.IsActive
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	s.invalidateCounts(ctx)
	return member, nil
}

func (s *memberService) Delete(ctx context.Context, id uint) error {
	if err := s.memberRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMemberNotFound
		}
		return fmt.Errorf("delete member: %w", err)
	}
	s.invalidateCounts(ctx)
	return nil
}

func (s *memberService) Ranks(ctx context.Context) ([]model.RankCount, error) {
	var cached []model.RankCount
	if s.cache.GetJSON(ctx, ranksCacheKey, &cached) {
		return cached, nil
	}

	counts, err := s.memberRepo.CountByRank(ctx)
	if err != nil {
		return nil, fmt.Errorf("count ranks: %w", err)
	}
	s.cache.SetJSON(ctx, ranksCacheKey, counts, countsCacheTTL)
	return counts, nil
}

func (s *memberService) Chapters(ctx context.Context) ([]model.ChapterCount, error) {
	var cached []model.ChapterCount
	if s.cache.GetJSON(ctx, chaptersCacheKey, &cached) {
		return cached, nil
	}

	counts, err := s.memberRepo.CountByChapter(ctx)
	if err != nil {
		return nil, fmt.Errorf("count chapters: %w", err)
	}
	s.cache.SetJSON(ctx, chaptersCacheKey, counts, countsCacheTTL)
	return counts, nil
}

func (s *memberService) Stats(ctx context.Context) (*model.MemberStats, error) {
	total, err := s.memberRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	byChapter, err := s.memberRepo.CountByChapter(ctx)
	if err != nil {
		return nil, fmt.Errorf("count chapters: %w", err)
	}
	byRank, err := s.memberRepo.CountByRank(ctx)
	if err != nil {
		return nil, fmt.Errorf("count ranks: %w", err)
	}
	return &model.MemberStats{
		TotalMembers:     total,
		MembersByChapter: byChapter,
		MembersByRank:    byRank,
	}, nil
}

func (s *memberService) invalidateCounts(ctx context.Context) {
	_ = s.cache.Delete(ctx, ranksCacheKey)
	_ = s.cache.Delete(ctx, chaptersCacheKey)
}
