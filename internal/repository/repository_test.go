package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"soulsmc/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Member{}, &model.GalleryImage{}, &model.User{}))
	return db
}

func seedMembers(t *testing.T, repo MemberRepository) {
	t.Helper()
	ctx := context.Background()
	members := []model.Member{
		{Name: "John Smith", Roadname: "Reaper", Rank: "President", Chapter: "Dockside", Bio: "Founding member", IsActive: true},
		{Name: "Mike Johnson", Roadname: "Shadow", Rank: "Vice President", Chapter: "Dockside", Bio: "Handles operations", IsActive: true},
		{Name: "David Williams", Roadname: "Bones", Rank: "Full Patch Member", Chapter: "National", Bio: "Loves long rides", IsActive: true},
	}
	for i := range members {
		require.NoError(t, repo.Create(ctx, &members[i]))
	}
}

func TestMemberRepositoryListFilters(t *testing.T) {
	repo := NewMemberRepository(newTestDB(t))
	seedMembers(t, repo)
	ctx := context.Background()

	t.Run("no filters returns all", func(t *testing.T) {
		members, err := repo.List(ctx, MemberFilters{})
		require.NoError(t, err)
		assert.Len(t, members, 3)
	})

	t.Run("rank and chapter are conjunctive", func(t *testing.T) {
		members, err := repo.List(ctx, MemberFilters{Rank: "President", Chapter: "Dockside"})
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, "John Smith", members[0].Name)

		members, err = repo.List(ctx, MemberFilters{Rank: "President", Chapter: "National"})
		require.NoError(t, err)
		assert.Empty(t, members)
	})

	t.Run("search is case-insensitive across fields", func(t *testing.T) {
		members, err := repo.List(ctx, MemberFilters{Search: "RIDES"})
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, "David Williams", members[0].Name)

		members, err = repo.List(ctx, MemberFilters{Search: "shadow"})
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, "Mike Johnson", members[0].Name)
	})
}

func TestMemberRepositoryCounts(t *testing.T) {
	repo := NewMemberRepository(newTestDB(t))
	seedMembers(t, repo)
	ctx := context.Background()

	chapters, err := repo.CountByChapter(ctx)
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, "Dockside", chapters[0].Chapter)
	assert.Equal(t, int64(2), chapters[0].Count)
	assert.Equal(t, "National", chapters[1].Chapter)
	assert.Equal(t, int64(1), chapters[1].Count)

	ranks, err := repo.CountByRank(ctx)
	require.NoError(t, err)
	assert.Len(t, ranks, 3)
}

func TestMemberRepositoryDeleteNullsUserRef(t *testing.T) {
	db := newTestDB(t)
	memberRepo := NewMemberRepository(db)
	userRepo := NewUserRepository(db)
	ctx := context.Background()

	member := &model.Member{Name: "John Smith", Rank: "President", Chapter: "Dockside", Bio: "Founder", IsActive: true}
	require.NoError(t, memberRepo.Create(ctx, member))

	user := &model.User{
		Username:     "reaper",
		Email:        "reaper@example.com",
		PasswordHash: "x",
		Role:         model.RoleAdmin,
		MemberID:     &member.ID,
		IsActive:     true,
	}
	require.NoError(t, userRepo.Create(ctx, user))

	require.NoError(t, memberRepo.Delete(ctx, member.ID))

	got, err := userRepo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.MemberID)

	_, err = memberRepo.FindByID(ctx, member.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemberRepositoryDeleteMissing(t *testing.T) {
	repo := NewMemberRepository(newTestDB(t))
	err := repo.Delete(context.Background(), 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func seedImages(t *testing.T, repo GalleryRepository) {
	t.Helper()
	ctx := context.Background()
	images := []model.GalleryImage{
		{
			Title: "Annual Charity Ride", Category: "Events", Description: "Charity run for the hospital",
			ImageURL: "https://example.com/a.jpg", Tags: model.StringList{"charity", "ride"},
			Members: model.StringList{"Reaper"}, Featured: true, Location: "Dockside",
			Date: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			Title: "Clubhouse Cookout", Category: "Club", Description: "Summer cookout",
			ImageURL: "https://example.com/b.jpg", Tags: model.StringList{"family"},
			Members: model.StringList{"Bones"}, Featured: false, Location: "Dockside",
			Date: time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			Title: "Coast Run", Category: "Club", Description: "Full chapter run down the coast",
			ImageURL: "https://example.com/c.jpg", Tags: model.StringList{"ride", "coast"},
			Members: model.StringList{"Reaper", "Bones"}, Featured: true, Location: "Bay City",
			Date: time.Date(2025, 8, 13, 0, 0, 0, 0, time.UTC),
		},
	}
	for i := range images {
		require.NoError(t, repo.Create(ctx, &images[i]))
	}
}

func TestGalleryRepositoryTagsRoundTrip(t *testing.T) {
	repo := NewGalleryRepository(newTestDB(t))
	ctx := context.Background()

	image := &model.GalleryImage{
		Title: "Test", Category: "Club", Description: "d",
		ImageURL: "https://example.com/x.jpg",
		Tags:     model.StringList{"a", "b"},
		Date:     time.Now(),
	}
	require.NoError(t, repo.Create(ctx, image))

	got, err := repo.FindByID(ctx, image.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StringList{"a", "b"}, got.Tags)
	assert.Equal(t, model.StringList{}, got.Members)
}

func TestGalleryRepositoryListFilters(t *testing.T) {
	repo := NewGalleryRepository(newTestDB(t))
	seedImages(t, repo)
	ctx := context.Background()
	featured := true

	t.Run("category and featured are conjunctive", func(t *testing.T) {
		images, err := repo.List(ctx, GalleryFilters{Category: "Club", Featured: &featured})
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, "Coast Run", images[0].Title)
	})

	t.Run("category all disables the filter", func(t *testing.T) {
		images, err := repo.List(ctx, GalleryFilters{Category: "all"})
		require.NoError(t, err)
		assert.Len(t, images, 3)
	})

	t.Run("search matches tags and title case-insensitively", func(t *testing.T) {
		images, err := repo.List(ctx, GalleryFilters{Search: "RIDE"})
		require.NoError(t, err)
		assert.Len(t, images, 2)
	})

	t.Run("member substring match", func(t *testing.T) {
		images, err := repo.List(ctx, GalleryFilters{Member: "bones"})
		require.NoError(t, err)
		assert.Len(t, images, 2)
	})

	t.Run("date range", func(t *testing.T) {
		start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
		images, err := repo.List(ctx, GalleryFilters{StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, "Clubhouse Cookout", images[0].Title)
	})

	t.Run("ordered by date descending with pagination", func(t *testing.T) {
		images, err := repo.List(ctx, GalleryFilters{Page: 1, ItemsPerPage: 2})
		require.NoError(t, err)
		require.Len(t, images, 2)
		assert.Equal(t, "Coast Run", images[0].Title)
		assert.Equal(t, "Clubhouse Cookout", images[1].Title)

		images, err = repo.List(ctx, GalleryFilters{Page: 2, ItemsPerPage: 2})
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, "Annual Charity Ride", images[0].Title)
	})

	t.Run("count honors filters", func(t *testing.T) {
		total, err := repo.Count(ctx, GalleryFilters{Category: "Club"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}

func TestGalleryRepositoryCountByCategory(t *testing.T) {
	repo := NewGalleryRepository(newTestDB(t))
	seedImages(t, repo)

	counts, err := repo.CountByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "Club", counts[0].Category)
	assert.Equal(t, int64(2), counts[0].Count)
	assert.Equal(t, "Events", counts[1].Category)
	assert.Equal(t, int64(1), counts[1].Count)
}

func TestUserRepositoryUpdateLastLogin(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Username: "reaper", Email: "r@example.com", PasswordHash: "x", Role: model.RoleAdmin, IsActive: true}
	require.NoError(t, repo.Create(ctx, user))
	require.Nil(t, user.LastLogin)

	require.NoError(t, repo.UpdateLastLogin(ctx, user.ID))

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.WithinDuration(t, time.Now(), *got.LastLogin, time.Minute)
}
