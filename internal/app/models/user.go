package models

import (
	"time"
)

// Address holds a user's postal address
type Address struct {
	Street  string `json:"street" db:"street"`
	City    string `json:"city" db:"city"`
	State   string `json:"state" db:"state"`
	Pincode string `json:"pincode" db:"pincode"`
	Country string `json:"country" db:"country"`
}

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Email       string     `json:"email" db:"email"`
	Password    string     `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Role        RoleType   `json:"role" db:"role"`
	Phone       string     `json:"phone" db:"phone"`
	DateOfBirth time.Time  `json:"dateOfBirth" db:"date_of_birth"`
	Gender      string     `json:"gender" db:"gender"`
	Address     Address    `json:"address"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
