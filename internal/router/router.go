package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"soulsmc/internal/auth"
	"soulsmc/internal/config"
	apperrors "soulsmc/internal/errors"
	"soulsmc/internal/handler"
	"soulsmc/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	memberHandler *handler.MemberHandler,
	galleryHandler *handler.GalleryHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit("10M"))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(cfg.RateLimitMax) / cfg.RateLimitWindow.Seconds()),
			Burst:     cfg.RateLimitMax,
			ExpiresIn: cfg.RateLimitWindow,
		}),
	}))

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	// Public routes
	e.GET("/health", handler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)

	e.GET("/gallery", galleryHandler.List)
	e.GET("/gallery/categories", galleryHandler.Categories)
	e.GET("/gallery/:id", galleryHandler.Get)

	e.GET("/meetthesouls", memberHandler.List)
	e.GET("/meetthesouls/ranks", memberHandler.Ranks)
	e.GET("/meetthesouls/chapters", memberHandler.Chapters)
	e.GET("/meetthesouls/:id", memberHandler.Get)

	// Admin routes: verified token plus admin role.
	admin := e.Group("/admin", auth.Middleware(cfg.JWTSecret), auth.RequireRole(model.RoleAdmin))

	admin.GET("/gallery", galleryHandler.List)
	admin.POST("/gallery", galleryHandler.Create)
	admin.PUT("/gallery/:id", galleryHandler.Update)
	admin.DELETE("/gallery/:id", galleryHandler.Delete)

	admin.GET("/members", memberHandler.List)
	admin.GET("/members/stats", memberHandler.Stats)
	admin.POST("/members", memberHandler.Create)
	admin.PUT("/members/:id", memberHandler.Update)
	admin.DELETE("/members/:id", memberHandler.Delete)

	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// errorHandler renders every error as {"error": ..., "code": ...}.
// Unknown routes get the conventional "Route not found" body, and
// anything unexpected collapses to a generic 500.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := apperrors.ErrorResponse{Error: "Internal server error", Code: "INTERNAL_ERROR"}

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch msg := he.Message.(type) {
		case apperrors.ErrorResponse:
			body = msg
		case string:
			body = apperrors.ErrorResponse{Error: msg}
		default:
			body = apperrors.ErrorResponse{Error: http.StatusText(status)}
		}
		if status == http.StatusNotFound && he == echo.ErrNotFound {
			body = apperrors.ErrorResponse{Error: "Route not found"}
		}
	} else {
		c.Logger().Error(err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}
