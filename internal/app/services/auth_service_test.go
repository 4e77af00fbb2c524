package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/admission-portal/internal/app/models"
	"github.com/campusgate/admission-portal/internal/app/models/dto"
	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
	"github.com/campusgate/admission-portal/internal/pkg/auth"
)

func newTestAuthService() (*AuthService, *fakeUserRepo, *fakeEmailService) {
	userRepo := newFakeUserRepo()
	emailService := newFakeEmailService()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "admission-portal-test",
	})
	return NewAuthService(userRepo, jwtService, emailService), userRepo, emailService
}

func registerRequest(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:        "Asha Verma",
		Email:       email,
		Password:    "S3cret!pass",
		Phone:       "9876543210",
		DateOfBirth: time.Date(2005, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
	}
}

func waitForEmail(t *testing.T, ch chan string) string {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("expected an email to be sent")
		return ""
	}
}

func TestRegister_CreatesStudentAndIssuesToken(t *testing.T) {
	service, userRepo, emailService := newTestAuthService()

	resp, err := service.Register(context.Background(), registerRequest("asha@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "asha@example.com", resp.User.Email)
	// Self-registration always creates students regardless of any input
	assert.Equal(t, string(models.RoleStudent), resp.User.Role)

	stored, err := userRepo.GetByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, "S3cret!pass", stored.Password)

	assert.Equal(t, "asha@example.com", waitForEmail(t, emailService.welcome))
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	service, _, _ := newTestAuthService()

	_, err := service.Register(context.Background(), registerRequest("asha@example.com"))
	require.NoError(t, err)

	_, err = service.Register(context.Background(), registerRequest("ASHA@Example.COM"))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	service, userRepo, _ := newTestAuthService()

	reg, err := service.Register(context.Background(), registerRequest("asha@example.com"))
	require.NoError(t, err)

	resp, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "S3cret!pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, reg.User.ID, resp.User.ID)

	stored, err := userRepo.GetByID(context.Background(), reg.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	service, _, _ := newTestAuthService()

	_, err := service.Register(context.Background(), registerRequest("asha@example.com"))
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	service, _, _ := newTestAuthService()

	_, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	service, userRepo, _ := newTestAuthService()

	reg, err := service.Register(context.Background(), registerRequest("asha@example.com"))
	require.NoError(t, err)
	require.NoError(t, userRepo.SetActive(context.Background(), reg.User.ID, false))

	_, err = service.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "S3cret!pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}
