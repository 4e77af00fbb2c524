package auth

import (
	"github.com/campusgate/admission-portal/internal/app/models"
	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
)

// Ownable is any resource that belongs to a single user. Applications and
// documents both satisfy it, so one guard covers every ownership check.
type Ownable interface {
	OwnerID() int64
}

// Identity is the authenticated caller, as resolved by the auth middleware.
type Identity struct {
	UserID int64
	Role   models.RoleType
}

// IsAdmin reports whether the identity carries the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// Authorize grants access to a resource when the caller is an admin or owns
// it. Callers must have already fetched the resource, so a missing resource
// surfaces as not-found before ever reaching this check.
func Authorize(identity Identity, resource Ownable) error {
	if identity.IsAdmin() {
		return nil
	}
	if resource.OwnerID() == identity.UserID {
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// RequireRole fails unless the identity carries the given role
func RequireRole(identity Identity, role models.RoleType) error {
	if identity.Role != role {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
