package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/admission-portal/internal/app/models"
	"github.com/campusgate/admission-portal/internal/app/models/dto"
	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
	"github.com/campusgate/admission-portal/internal/pkg/auth"
)

func newTestUserService(t *testing.T) (*UserService, *fakeUserRepo, *fakeApplicationRepo, int64) {
	t.Helper()
	docRepo := newFakeDocumentRepo()
	appRepo := newFakeApplicationRepo(docRepo)
	userRepo := newFakeUserRepo()

	hashed, err := auth.HashPassword("S3cret!pass")
	require.NoError(t, err)
	id, err := userRepo.Create(context.Background(), &models.User{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Password: hashed,
		Role:     models.RoleStudent,
		IsActive: true,
	})
	require.NoError(t, err)

	return NewUserService(userRepo, appRepo, docRepo), userRepo, appRepo, id
}

func TestChangePassword(t *testing.T) {
	service, userRepo, _, userID := newTestUserService(t)

	err := service.ChangePassword(context.Background(), userID, &dto.ChangePasswordRequest{
		CurrentPassword: "S3cret!pass",
		NewPassword:     "N3w!password",
	})
	require.NoError(t, err)

	stored, err := userRepo.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.Password, "N3w!password"))
	assert.False(t, auth.CheckPassword(stored.Password, "S3cret!pass"))
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	service, _, _, userID := newTestUserService(t)

	err := service.ChangePassword(context.Background(), userID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "N3w!password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestUpdateProfile(t *testing.T) {
	service, _, _, userID := newTestUserService(t)

	profile, err := service.UpdateProfile(context.Background(), userID, &dto.UpdateProfileRequest{
		Name:   "Asha V.",
		Phone:  "9876543210",
		Gender: "female",
		Address: &dto.AddressRequest{
			City:    "Pune",
			Country: "India",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha V.", profile.Name)
	assert.Equal(t, "Pune", profile.Address.City)
	// Email is never editable through the profile flow
	assert.Equal(t, "asha@example.com", profile.Email)
}

func TestGetStudentDashboard_NoApplication(t *testing.T) {
	service, _, _, userID := newTestUserService(t)

	dashboard, err := service.GetStudentDashboard(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, dashboard.Application)
	assert.Equal(t, "not_submitted", dashboard.ApplicationStatus)
	assert.Equal(t, 0, dashboard.DocumentsUploaded)
}

func TestGetStudentDashboard_WithApplication(t *testing.T) {
	service, _, appRepo, userID := newTestUserService(t)

	_, err := appRepo.Create(context.Background(), &models.Application{
		StudentID: userID,
		Status:    models.StatusPending,
		CoursePreferences: models.CoursePreferences{
			FirstChoice: "Computer Science",
		},
	})
	require.NoError(t, err)

	dashboard, err := service.GetStudentDashboard(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, dashboard.Application)
	assert.Equal(t, "pending", dashboard.ApplicationStatus)
}

func TestSetUserStatus(t *testing.T) {
	service, userRepo, _, userID := newTestUserService(t)

	profile, err := service.SetUserStatus(context.Background(), userID, false)
	require.NoError(t, err)
	assert.False(t, profile.IsActive)

	stored, err := userRepo.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestListUsers_FilterByRole(t *testing.T) {
	service, userRepo, _, _ := newTestUserService(t)

	_, err := userRepo.Create(context.Background(), &models.User{
		Name:     "Administrator",
		Email:    "admin@example.com",
		Password: "hashed",
		Role:     models.RoleAdmin,
		IsActive: true,
	})
	require.NoError(t, err)

	resp, err := service.ListUsers(context.Background(), dto.UserFilter{Role: "admin"}, 1, 10)
	require.NoError(t, err)
	profiles, ok := resp.Items.([]*dto.UserProfile)
	require.True(t, ok)
	require.Len(t, profiles, 1)
	assert.Equal(t, "admin@example.com", profiles[0].Email)
	assert.Equal(t, int64(1), resp.Pagination.TotalItems)
}
