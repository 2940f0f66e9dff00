package handler

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
	gormlogger "gorm.io/gorm/logger"

	"github.com/ketanMehtaa/gymone/internal/authz"
	"github.com/ketanMehtaa/gymone/internal/middleware"
	"github.com/ketanMehtaa/gymone/internal/model"
	"github.com/ketanMehtaa/gymone/internal/service"
	"github.com/ketanMehtaa/gymone/internal/store"
	"github.com/ketanMehtaa/gymone/pkg/config"
	"github.com/ketanMehtaa/gymone/pkg/database"
	"github.com/ketanMehtaa/gymone/pkg/jwtutil"
)

type authTestEnv struct {
	echo   *echo.Echo
	store  *store.Store
	tokens *jwtutil.TokenService
}

func setupAuthEnv(t *testing.T) *authTestEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	st := store.New(db)
	tokens := jwtutil.New(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	auth := service.NewAuthService(st, tokens)
	h := NewAuthHandler(auth, time.Hour)

	e := echo.New()
	e.POST("/auth/login", h.Login)
	e.POST("/auth/logout", h.Logout)

	api := e.Group("/api", middleware.Auth(tokens))
	api.GET("/auth/me", h.Me, middleware.Require(authz.RuleAuthenticated))

	return &authTestEnv{echo: e, store: st, tokens: tokens}
}

func (env *authTestEnv) seedSuperAdmin(t *testing.T, email, password string) *model.SuperAdmin {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	sa := &model.SuperAdmin{
		Email:     email,
		Password:  string(hash),
		FirstName: "Ada",
		LastName:  "Root",
	}
	require.NoError(t, env.store.CreateSuperAdmin(sa))
	return sa
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLoginEndpointSetsCookieAndReturnsToken(t *testing.T) {
	env := setupAuthEnv(t)
	env.seedSuperAdmin(t, "root@example.com", "root-secret")

	rec := postJSON(env.echo, "/auth/login",
		`{"email":"root@example.com","password":"root-secret","role":"SUPER_ADMIN"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	user, _ := body["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, "SUPER_ADMIN", user["role"])

	var tokenCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.TokenCookieName {
			tokenCookie = cookie
		}
	}
	require.NotNil(t, tokenCookie)
	assert.Equal(t, token, tokenCookie.Value)
	assert.True(t, tokenCookie.HttpOnly)
	assert.Equal(t, int(time.Hour.Seconds()), tokenCookie.MaxAge)

	claims, err := env.tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", claims.Email)
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	env := setupAuthEnv(t)
	env.seedSuperAdmin(t, "root@example.com", "root-secret")

	rec := postJSON(env.echo, "/auth/login",
		`{"email":"root@example.com","password":"wrong","role":"SUPER_ADMIN"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decodeBody(t, rec)["error"])
}

func TestLoginEndpointInvalidRole(t *testing.T) {
	env := setupAuthEnv(t)

	rec := postJSON(env.echo, "/auth/login",
		`{"email":"root@example.com","password":"root-secret","role":"JANITOR"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid role", decodeBody(t, rec)["error"])
}

func TestMeEndpointWithBearerToken(t *testing.T) {
	env := setupAuthEnv(t)
	sa := env.seedSuperAdmin(t, "root@example.com", "root-secret")
	token, err := env.tokens.Generate(sa.ID, sa.Email, string(authz.RoleSuperAdmin), nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	user, _ := decodeBody(t, rec)["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, sa.Email, user["email"])
}

func TestMeEndpointWithCookie(t *testing.T) {
	env := setupAuthEnv(t)
	sa := env.seedSuperAdmin(t, "root@example.com", "root-secret")
	token, err := env.tokens.Generate(sa.ID, sa.Email, string(authz.RoleSuperAdmin), nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: token})
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMeEndpointMissingToken(t *testing.T) {
	env := setupAuthEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeEndpointGarbageToken(t *testing.T) {
	env := setupAuthEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired token", decodeBody(t, rec)["error"])
}

func TestMeEndpointDeletedPrincipal(t *testing.T) {
	env := setupAuthEnv(t)
	token, err := env.tokens.Generate("gone-id", "ghost@example.com", string(authz.RoleSuperAdmin), nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication required", decodeBody(t, rec)["error"])
}

func TestLogoutEndpointClearsCookie(t *testing.T) {
	env := setupAuthEnv(t)

	rec := postJSON(env.echo, "/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tokenCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.TokenCookieName {
			tokenCookie = cookie
		}
	}
	require.NotNil(t, tokenCookie)
	assert.Empty(t, tokenCookie.Value)
	assert.Negative(t, tokenCookie.MaxAge)
}
