package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"soulsmc/internal/auth"
	"soulsmc/internal/cache"
	"soulsmc/internal/config"
	"soulsmc/internal/handler"
	"soulsmc/internal/model"
	"soulsmc/internal/repository"
	"soulsmc/internal/router"
	"soulsmc/internal/service"
)

const testSecret = "router-test-secret"

func setupServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Member{}, &model.GalleryImage{}, &model.User{}))

	cfg := &config.Config{
		JWTSecret:       testSecret,
		CORSOrigins:     []string{"*"},
		RateLimitWindow: time.Minute,
		RateLimitMax:    10000,
	}

	var noCache *cache.Client

	memberRepo := repository.NewMemberRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	userRepo := repository.NewUserRepository(db)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)
	memberService := service.NewMemberService(memberRepo, noCache)
	galleryService := service.NewGalleryService(galleryRepo, noCache)
	userService := service.NewUserService(userRepo)

	e := echo.New()
	e.Logger.SetOutput(nopWriter{})
	router.Register(e, cfg,
		handler.NewAuthHandler(authService),
		handler.NewMemberHandler(memberService),
		handler.NewGalleryHandler(galleryService),
		handler.NewUserHandler(userService),
	)
	return e, db
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func createUser(t *testing.T, db *gorm.DB, username, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func tokenFor(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := auth.NewJWTService(testSecret).IssueToken(user)
	require.NoError(t, err)
	return token
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminMemberCreateAuthorization(t *testing.T) {
	e, db := setupServer(t)

	admin := createUser(t, db, "prez", "gavel123", model.RoleAdmin)
	plain := createUser(t, db, "prospect", "hangaround", model.RoleMember)

	body := `{"name":"Tiny","rank":"Enforcer","chapter":"Mother Chapter","bio":"Keeps the peace."}`

	rec := doJSON(e, http.MethodPost, "/admin/members", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/admin/members", tokenFor(t, plain), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(e, http.MethodPost, "/admin/members", tokenFor(t, admin),
		`{"name":"Tiny","rank":"Enforcer","chapter":"Mother Chapter"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/admin/members", tokenFor(t, admin), body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Member
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)

	rec = doJSON(e, http.MethodGet, "/meetthesouls", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var members []model.Member
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &members))
	require.Len(t, members, 1)
	assert.Equal(t, "Tiny", members[0].Name)
	assert.Equal(t, "Enforcer", members[0].Rank)
}

func TestLogin(t *testing.T) {
	e, db := setupServer(t)
	createUser(t, db, "roadcaptain", "openroad1", model.RoleMember)

	rec := doJSON(e, http.MethodPost, "/login", "", `{"username":"roadcaptain","password":"wrongpass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/login", "", `{"username":"roadcaptain","password":"openroad1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
}

func TestUnknownRoute(t *testing.T) {
	e, _ := setupServer(t)

	rec := doJSON(e, http.MethodGet, "/no/such/route", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Route not found", body["error"])
}

func TestHealth(t *testing.T) {
	e, _ := setupServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
}
