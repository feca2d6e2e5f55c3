package dto

import (
	"time"

	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

// LoginRequest payload for staff login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the session envelope. The token also travels in the
// session cookie; the body copy supports non-browser clients.
type LoginResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// UserResponse staff account view; the password hash never leaves the server.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CreateUserRequest payload for admin account creation.
type CreateUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// UpdateUserRequest payload for admin account edits.
type UpdateUserRequest struct {
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	Active bool        `json:"active"`
}

// ChangePasswordRequest payload for self-service rotation.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ResetPasswordRequest payload for admin resets.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}
