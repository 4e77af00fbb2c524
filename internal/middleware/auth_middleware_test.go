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

	"github.com/campusgate/admission-portal/internal/app/models"
	"github.com/campusgate/admission-portal/internal/app/models/dto"
	"github.com/campusgate/admission-portal/internal/app/repositories"
	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
	"github.com/campusgate/admission-portal/internal/pkg/auth"
)

// stubUserRepo overrides only GetByID; JWTAuth touches nothing else.
type stubUserRepo struct {
	repositories.IUserRepository
	user *models.User
}

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *s.user
	return &copied, nil
}

func newAuthTestRouter(user *models.User) (*gin.Engine, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "middleware-test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "admission-portal",
	})
	mw := NewAuthMiddleware(jwtService, &stubUserRepo{user: user})

	router := gin.New()
	router.GET("/protected", mw.JWTAuth(), func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"userId": identity.UserID})
	})
	router.GET("/admin-only", mw.JWTAuth(), mw.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, jwtService
}

func requestWithToken(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestJWTAuth_ValidToken(t *testing.T) {
	user := &models.User{ID: 7, Email: "s@example.com", Role: models.RoleStudent, IsActive: true}
	router, jwtService := newAuthTestRouter(user)

	token, _, err := jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)

	recorder := requestWithToken(router, "/protected", token)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"userId":7`)
}

func TestJWTAuth_MissingToken(t *testing.T) {
	router, _ := newAuthTestRouter(nil)

	recorder := requestWithToken(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	router, _ := newAuthTestRouter(nil)

	recorder := requestWithToken(router, "/protected", "not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestJWTAuth_DeactivatedUserRejected(t *testing.T) {
	user := &models.User{ID: 7, Email: "s@example.com", Role: models.RoleStudent, IsActive: true}
	router, jwtService := newAuthTestRouter(user)

	token, _, err := jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)

	// Token was valid when issued; deactivation must reject it anyway
	user.IsActive = false
	recorder := requestWithToken(router, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), string(dto.ErrorCodeAccountDisabled))
}

func TestJWTAuth_DeletedUserRejected(t *testing.T) {
	router, jwtService := newAuthTestRouter(nil)

	token, _, err := jwtService.GenerateToken(99, "ghost@example.com", string(models.RoleStudent))
	require.NoError(t, err)

	recorder := requestWithToken(router, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRoleRequired_StudentBlockedFromAdminRoute(t *testing.T) {
	user := &models.User{ID: 7, Email: "s@example.com", Role: models.RoleStudent, IsActive: true}
	router, jwtService := newAuthTestRouter(user)

	token, _, err := jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)

	recorder := requestWithToken(router, "/admin-only", token)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestRoleRequired_AdminAllowed(t *testing.T) {
	user := &models.User{ID: 3, Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true}
	router, jwtService := newAuthTestRouter(user)

	token, _, err := jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)

	recorder := requestWithToken(router, "/admin-only", token)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
