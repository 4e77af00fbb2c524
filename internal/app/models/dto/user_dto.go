package dto

import (
	"time"

	"github.com/campusgate/admission-portal/internal/app/models"
)

// UpdateProfileRequest is the payload for profile updates.
// Email and password are deliberately absent; password changes go through
// ChangePasswordRequest so re-hashing happens only there.
type UpdateProfileRequest struct {
	Name        string          `json:"name" binding:"required,min=2,max=100"`
	Phone       string          `json:"phone" binding:"required,len=10,numeric"`
	DateOfBirth time.Time       `json:"dateOfBirth" binding:"required"`
	Gender      string          `json:"gender" binding:"required,oneof=male female other"`
	Address     *AddressRequest `json:"address"`
}

// ChangePasswordRequest is the payload for the password-change flow
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// UpdateUserStatusRequest toggles a user's active flag (admin only)
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UserProfile is the full profile view returned to the user themselves
type UserProfile struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Role        string         `json:"role"`
	Phone       string         `json:"phone"`
	DateOfBirth time.Time      `json:"dateOfBirth"`
	Gender      string         `json:"gender"`
	Address     models.Address `json:"address"`
	IsActive    bool           `json:"isActive"`
	LastLoginAt *time.Time     `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// StudentDashboard is the student's landing view: profile summary plus the
// state of their application, if any.
type StudentDashboard struct {
	User              PublicUser          `json:"user"`
	Application       *models.Application `json:"application,omitempty"`
	DocumentsUploaded int                 `json:"documentsUploaded"`
	ApplicationStatus string              `json:"applicationStatus"`
}

// NewUserProfile builds a UserProfile from a user model
func NewUserProfile(u *models.User) *UserProfile {
	return &UserProfile{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Phone:       u.Phone,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		Address:     u.Address,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// NewPublicUser builds the client-safe projection of a user
func NewPublicUser(u *models.User) PublicUser {
	return PublicUser{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Phone:       u.Phone,
		LastLoginAt: u.LastLoginAt,
	}
}
