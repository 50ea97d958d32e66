package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emkaan/api/internal/config"
	"emkaan/api/internal/ids"
	"emkaan/api/internal/models"
	"emkaan/api/internal/repository"
	"emkaan/api/internal/security"
)

type stubLoader struct {
	users map[string]models.User
}

func (s stubLoader) GetByID(ctx context.Context, id string) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Security: config.SecurityConfig{JWTSecret: "test-secret", JWTTTL: time.Hour},
	}
}

func newTestRouter(cfg *config.AppConfig, loader PrincipalLoader, roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	chain := []gin.HandlerFunc{Auth(cfg, loader)}
	if len(roles) > 0 {
		chain = append(chain, RequireRoles(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": user.ID})
	})

	engine.DELETE("/pages/:id", chain...)
	return engine
}

func do(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/pages/abc", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthRejectsAnonymous(t *testing.T) {
	engine := newTestRouter(testConfig(), stubLoader{})
	rec := do(engine, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	engine := newTestRouter(testConfig(), stubLoader{})
	rec := do(engine, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	userID := ids.New()
	loader := stubLoader{users: map[string]models.User{
		userID: {ID: userID, Role: models.UserRoleAdmin},
	}}
	token, err := security.GenerateToken("test-secret", userID, "admin", -time.Minute)
	require.NoError(t, err)

	rec := do(newTestRouter(testConfig(), loader), token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsDeletedPrincipal(t *testing.T) {
	token, err := security.GenerateToken("test-secret", ids.New(), "admin", time.Hour)
	require.NoError(t, err)

	rec := do(newTestRouter(testConfig(), stubLoader{}), token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthLoadsPrincipal(t *testing.T) {
	userID := ids.New()
	loader := stubLoader{users: map[string]models.User{
		userID: {ID: userID, Role: models.UserRoleEditor},
	}}
	token, err := security.GenerateToken("test-secret", userID, "editor", time.Hour)
	require.NoError(t, err)

	rec := do(newTestRouter(testConfig(), loader), token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID)
}

func TestRequireRolesForbidsEditor(t *testing.T) {
	userID := ids.New()
	loader := stubLoader{users: map[string]models.User{
		userID: {ID: userID, Role: models.UserRoleEditor},
	}}
	token, err := security.GenerateToken("test-secret", userID, "editor", time.Hour)
	require.NoError(t, err)

	rec := do(newTestRouter(testConfig(), loader, models.UserRoleAdmin), token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesPermitsAdmin(t *testing.T) {
	userID := ids.New()
	loader := stubLoader{users: map[string]models.User{
		userID: {ID: userID, Role: models.UserRoleAdmin},
	}}
	token, err := security.GenerateToken("test-secret", userID, "admin", time.Hour)
	require.NoError(t, err)

	rec := do(newTestRouter(testConfig(), loader, models.UserRoleAdmin), token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/x", RequireRoles(models.UserRoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
