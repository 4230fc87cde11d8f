package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andestrack/field-service-api/internal/dto"
	"github.com/andestrack/field-service-api/internal/middleware"
	"github.com/andestrack/field-service-api/internal/models"
	"github.com/andestrack/field-service-api/internal/repository"
	"github.com/andestrack/field-service-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	authService := services.NewAuthService(repository.NewUserRepository(db))
	handler := NewAuthHandler(authService)

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", store))

	r.POST("/signup", handler.Signup)
	r.POST("/login", handler.Login)
	r.POST("/logout", handler.Logout)
	r.GET("/me", middleware.RequireAuth(), handler.GetCurrentUser)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupValidation(t *testing.T) {
	r := setupAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/signup", gin.H{
		"username": "mariap",
		"password": "short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/signup", gin.H{
		"username": "ab",
		"password": "longenough",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupAndDuplicateUsername(t *testing.T) {
	r := setupAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/signup", gin.H{
		"username":     "mariap",
		"display_name": "Maria P",
		"password":     "supersecret",
		"role":         "admin",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var user dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "mariap", user.Username)
	assert.Equal(t, "Maria P", user.DisplayName)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NotContains(t, w.Body.String(), "supersecret")

	w = doJSON(t, r, http.MethodPost, "/signup", gin.H{
		"username": "mariap",
		"password": "anothersecret",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginSessionLifecycle(t *testing.T) {
	r := setupAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/signup", gin.H{
		"username": "worker1",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", gin.H{
		"username": "worker1",
		"password": "wrongpassword",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", gin.H{
		"username": "worker1",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = doJSON(t, r, http.MethodGet, "/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var user dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "worker1", user.Username)
	assert.Equal(t, models.RoleWorker, user.Role)

	w = doJSON(t, r, http.MethodPost, "/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	loggedOut := w.Result().Cookies()

	w = doJSON(t, r, http.MethodGet, "/me", nil, loggedOut)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRequiresSession(t *testing.T) {
	r := setupAuthRouter(t)

	w := doJSON(t, r, http.MethodGet, "/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
