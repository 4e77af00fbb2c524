package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusgate/admission-portal/internal/app/models"
	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
)

func TestAuthorize_Owner(t *testing.T) {
	identity := Identity{UserID: 7, Role: models.RoleStudent}
	app := &models.Application{ID: 1, StudentID: 7}

	assert.NoError(t, Authorize(identity, app))
}

func TestAuthorize_Admin(t *testing.T) {
	identity := Identity{UserID: 99, Role: models.RoleAdmin}
	app := &models.Application{ID: 1, StudentID: 7}

	assert.NoError(t, Authorize(identity, app))
}

func TestAuthorize_OtherStudentDenied(t *testing.T) {
	identity := Identity{UserID: 8, Role: models.RoleStudent}

	app := &models.Application{ID: 1, StudentID: 7}
	assert.ErrorIs(t, Authorize(identity, app), apperrors.ErrPermissionDenied)

	doc := &models.Document{ID: 3, StudentID: 7}
	assert.ErrorIs(t, Authorize(identity, doc), apperrors.ErrPermissionDenied)
}

func TestRequireRole(t *testing.T) {
	admin := Identity{UserID: 1, Role: models.RoleAdmin}
	student := Identity{UserID: 2, Role: models.RoleStudent}

	assert.NoError(t, RequireRole(admin, models.RoleAdmin))
	assert.ErrorIs(t, RequireRole(student, models.RoleAdmin), apperrors.ErrPermissionDenied)
}
