package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/campusgate/admission-portal/internal/app/auth"
	"github.com/campusgate/admission-portal/internal/app/models"
	"github.com/campusgate/admission-portal/internal/app/models/dto"
	"github.com/campusgate/admission-portal/internal/app/repositories"
	"github.com/campusgate/admission-portal/internal/pkg/auth"
)

const identityKey = "identity"

// AuthMiddleware validates tokens and resolves the caller's identity
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   repositories.IUserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo repositories.IUserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// JWTAuth validates the bearer token and loads the account behind it. The
// account is re-resolved on every request so that deactivating a user kills
// their outstanding tokens immediately.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}
		if !user.IsActive {
			abortUnauthorized(c, dto.ErrorCodeAccountDisabled, "Account is disabled")
			return
		}

		c.Set(identityKey, appauth.Identity{UserID: user.ID, Role: user.Role})
		c.Next()
	}
}

// RoleRequired restricts a route group to one role. It assumes JWTAuth
// already ran.
func (m *AuthMiddleware) RoleRequired(role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}
		if identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))
			return
		}
		c.Next()
	}
}

// GetIdentity retrieves the authenticated identity placed by JWTAuth
func GetIdentity(c *gin.Context) (appauth.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return appauth.Identity{}, false
	}
	identity, ok := value.(appauth.Identity)
	return identity, ok
}
