package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"soulsmc/docs"

	"github.com/labstack/echo/v4"

	"soulsmc/internal/auth"
	"soulsmc/internal/cache"
	"soulsmc/internal/config"
	"soulsmc/internal/db"
	"soulsmc/internal/handler"
	"soulsmc/internal/model"
	"soulsmc/internal/repository"
	"soulsmc/internal/router"
	"soulsmc/internal/service"
)

// @title Unholy Souls MC API
// @version 1.0
// @description Club site backend: public roster and gallery, admin CRUD, JWT authentication.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

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

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	memberRepo := repository.NewMemberRepository(gormDB)
	galleryRepo := repository.NewGalleryRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)
	memberService := service.NewMemberService(memberRepo, cacheClient)
	galleryService := service.NewGalleryService(galleryRepo, cacheClient)
	userService := service.NewUserService(userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	memberHandler := handler.NewMemberHandler(memberService)
	galleryHandler := handler.NewGalleryHandler(galleryService)
	userHandler := handler.NewUserHandler(userService)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, authHandler, memberHandler, galleryHandler, userHandler)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := db.Close(gormDB); err != nil {
		log.Printf("close database: %v", err)
	}
}
