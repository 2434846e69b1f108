package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"soulsmc/internal/config"
	"soulsmc/internal/db"
	"soulsmc/internal/model"
	"soulsmc/internal/repository"
)

const bcryptCost = 12

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// The admin credential must be supplied explicitly; there is no
	// default password.
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Fatal("ADMIN_PASSWORD must be set")
	}
	adminUsername := envOr("ADMIN_USERNAME", "admin")
	adminEmail := envOr("ADMIN_EMAIL", "admin@unholysoulsmc.com")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.Member{},
		&model.GalleryImage{},
		&model.User{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	memberRepo := repository.NewMemberRepository(gormDB)
	galleryRepo := repository.NewGalleryRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	seeded := 0
	for _, member := range sampleMembers() {
		existing, err := memberRepo.List(ctx, repository.MemberFilters{Search: member.Name})
		if err != nil {
			log.Fatalf("check member %q: %v", member.Name, err)
		}
		if len(existing) > 0 {
			continue
		}
		m := member
		if err := memberRepo.Create(ctx, &m); err != nil {
			log.Fatalf("create member %q: %v", member.Name, err)
		}
		seeded++
	}
	log.Printf("Seeded %d members", seeded)

	seeded = 0
	for _, image := range sampleImages() {
		existing, err := galleryRepo.List(ctx, repository.GalleryFilters{Search: image.Title})
		if err != nil {
			log.Fatalf("check image %q: %v", image.Title, err)
		}
		if len(existing) > 0 {
			continue
		}
		img := image
		if err := galleryRepo.Create(ctx, &img); err != nil {
			log.Fatalf("create image %q: %v", image.Title, err)
		}
		seeded++
	}
	log.Printf("Seeded %d gallery images", seeded)

	if _, err := userRepo.FindByUsername(ctx, adminUsername); err == nil {
		log.Printf("Admin user %q already exists, skipping", adminUsername)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("check admin user: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcryptCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	admin := &model.User{
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("create admin user: %v", err)
	}
	log.Printf("Created admin user %q", adminUsername)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Fatalf("parse date %q: %v", value, err)
	}
	return t
}

func datePtr(value string) *time.Time {
	t := date(value)
	return &t
}

func sampleMembers() []model.Member {
	return []model.Member{
		{
			Name:     `John "Reaper" Smith`,
			Roadname: "Reaper",
			Rank:     "President",
			Chapter:  "Dockside",
			Bio:      "Founding member and current President. Known for his leadership and dedication to the club.",
			Image:    "https://example.com/images/reaper.jpg",
			JoinDate: datePtr("2020-01-01"),
			IsActive: true,
		},
		{
			Name:     `Mike "Shadow" Johnson`,
			Roadname: "Shadow",
			Rank:     "Vice President",
			Chapter:  "Dockside",
			Bio:      "Vice President and trusted advisor. Handles club operations and member relations.",
			Image:    "https://example.com/images/shadow.jpg",
			JoinDate: datePtr("2020-02-01"),
			IsActive: true,
		},
		{
			Name:     `David "Bones" Williams`,
			Roadname: "Bones",
			Rank:     "Full Patch Member",
			Chapter:  "National",
			Bio:      "Full patch member with a passion for long rides and club brotherhood.",
			Image:    "https://example.com/images/bones.jpg",
			JoinDate: datePtr("2020-03-01"),
			IsActive: true,
		},
		{
			Name:     `Alex "Raven" Davis`,
			Roadname: "Raven",
			Rank:     "Prospect",
			Chapter:  "Dockside",
			Bio:      "New prospect showing great potential and dedication to earning his patch.",
			Image:    "https://example.com/images/raven.jpg",
			JoinDate: datePtr("2024-01-01"),
			IsActive: true,
		},
	}
}

func sampleImages() []model.GalleryImage {
	return []model.GalleryImage{
		{
			Title:       "Annual Charity Ride",
			Category:    "Events",
			Description: "The club riding out for the annual children's hospital charity run.",
			ImageURL:    "https://example.com/gallery/charity-ride.jpg",
			Tags:        model.StringList{"charity", "ride"},
			Members:     model.StringList{"Reaper", "Shadow"},
			Featured:    true,
			Location:    "Dockside",
			Date:        date("2025-06-14"),
		},
		{
			Title:       "Clubhouse Cookout",
			Category:    "Club",
			Description: "Summer cookout at the Dockside clubhouse with members and families.",
			ImageURL:    "https://example.com/gallery/cookout.jpg",
			Tags:        model.StringList{"clubhouse", "family"},
			Members:     model.StringList{"Bones"},
			Featured:    false,
			Location:    "Dockside",
			Date:        date("2025-07-04"),
		},
		{
			Title:       "Coast Run",
			Category:    "Rides",
			Description: "Full chapter run down the coast highway.",
			ImageURL:    "https://example.com/gallery/coast-run.jpg",
			Tags:        model.StringList{"ride", "coast"},
			Members:     model.StringList{"Reaper", "Bones", "Raven"},
			Featured:    true,
			Location:    "Bay City",
			Date:        date("2025-08-13"),
		},
	}
}
