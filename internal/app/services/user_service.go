package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusgate/admission-portal/internal/app/models"
	"github.com/campusgate/admission-portal/internal/app/models/dto"
	"github.com/campusgate/admission-portal/internal/app/repositories"
	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
	"github.com/campusgate/admission-portal/internal/pkg/auth"
	"github.com/campusgate/admission-portal/internal/pkg/helpers"
)

// UserService handles profile and account management
type UserService struct {
	userRepo repositories.IUserRepository
	appRepo  repositories.IApplicationRepository
	docRepo  repositories.IDocumentRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, appRepo repositories.IApplicationRepository, docRepo repositories.IDocumentRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		appRepo:  appRepo,
		docRepo:  docRepo,
	}
}

// GetProfile returns the full profile of a user
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserProfile(user), nil
}

// UpdateProfile applies a profile update and returns the new profile
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Phone = req.Phone
	user.DateOfBirth = req.DateOfBirth
	user.Gender = req.Gender
	if req.Address != nil {
		user.Address = models.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			Pincode: req.Address.Pincode,
			Country: req.Address.Country,
		}
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return dto.NewUserProfile(user), nil
}

// ChangePassword verifies the current password and stores a new hash
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidPassword
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

// GetStudentDashboard assembles the student landing view. Students without an
// application get a dashboard with an empty application slot rather than an
// error.
func (s *UserService) GetStudentDashboard(ctx context.Context, userID int64) (*dto.StudentDashboard, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &dto.StudentDashboard{
		User:              dto.NewPublicUser(user),
		ApplicationStatus: "not_submitted",
	}

	app, err := s.appRepo.GetByStudentID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrApplicationNotFound) {
			return dashboard, nil
		}
		return nil, err
	}

	docs, err := s.docRepo.ListByApplicationID(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	app.Documents = docs

	dashboard.Application = app
	dashboard.ApplicationStatus = string(app.Status)
	dashboard.DocumentsUploaded = len(docs)
	return dashboard, nil
}

// ListUsers returns a page of users for the admin panel
func (s *UserService) ListUsers(ctx context.Context, filter dto.UserFilter, page, size int) (*dto.PagedResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	users, total, err := s.userRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	profiles := make([]*dto.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, dto.NewUserProfile(u))
	}

	return &dto.PagedResponse{
		Items:      profiles,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// SetUserStatus activates or deactivates an account. Deactivation takes
// effect immediately because the auth middleware re-resolves the user on
// every request.
func (s *UserService) SetUserStatus(ctx context.Context, userID int64, isActive bool) (*dto.UserProfile, error) {
	if err := s.userRepo.SetActive(ctx, userID, isActive); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserProfile(user), nil
}
