package dto

import "time"

// AddressRequest carries a postal address on registration/profile updates
type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// RegisterRequest is the payload for student self-registration.
// Role is never accepted from the client; registration always creates a student.
type RegisterRequest struct {
	Name        string         `json:"name" binding:"required,min=2,max=100"`
	Email       string         `json:"email" binding:"required,email"`
	Password    string         `json:"password" binding:"required,min=6"`
	Phone       string         `json:"phone" binding:"required,len=10,numeric"`
	DateOfBirth time.Time      `json:"dateOfBirth" binding:"required"`
	Gender      string         `json:"gender" binding:"required,oneof=male female other"`
	Address     AddressRequest `json:"address"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PublicUser is the client-safe projection of a user
type PublicUser struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Phone       string     `json:"phone"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// TokenResponse is returned on successful registration or login
type TokenResponse struct {
	Token     string     `json:"token"`
	TokenType string     `json:"tokenType"`
	ExpiresIn int64      `json:"expiresIn"`
	User      PublicUser `json:"user"`
}
