package services

import (
	"context"
	"fmt"

	"github.com/campusgate/admission-portal/internal/app/models"
	"github.com/campusgate/admission-portal/internal/app/models/dto"
	"github.com/campusgate/admission-portal/internal/app/repositories"
	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
	"github.com/campusgate/admission-portal/internal/pkg/auth"
	"github.com/campusgate/admission-portal/internal/pkg/email"
	"github.com/campusgate/admission-portal/internal/pkg/logger"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo     repositories.IUserRepository
	jwtService   *auth.JWTService
	emailService email.EmailService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, emailService email.EmailService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		emailService: emailService,
	}
}

// Register creates a new student account and returns a logged-in token.
// The role is always student; admins are created through seeding or by
// another admin, never through self-registration.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hashedPassword,
		Role:        models.RoleStudent,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Address: models.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			Pincode: req.Address.Pincode,
			Country: req.Address.Country,
		},
		IsActive: true,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	// Fire-and-forget: a failed welcome email never fails registration
	go func(toEmail, toName string) {
		if err := s.emailService.SendWelcomeEmail(toEmail, toName); err != nil {
			logger.Error().Err(err).Str("email", toEmail).Msg("Failed to send welcome email")
		}
	}(user.Email, user.Name)

	return s.issueToken(user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Indistinguishable from a wrong password to the caller
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login time")
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (*dto.TokenResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
		User:      dto.NewPublicUser(user),
	}, nil
}
