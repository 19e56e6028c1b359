package account

import (
	"time"

	"github.com/redlaboral/portal/pkg/iam/auth"
	"github.com/redlaboral/portal/pkg/kernel"
)

// RegisterRequest - DTO for creating a new account
type RegisterRequest struct {
	Email    kernel.Email `json:"email" validate:"required"`
	Name     string       `json:"name" validate:"required"`
	Password string       `json:"password" validate:"required"`
	Role     auth.Role    `json:"role" validate:"required"`
}

// LoginRequest - DTO for credential authentication
type LoginRequest struct {
	Email    kernel.Email `json:"email" validate:"required"`
	Password string       `json:"password" validate:"required"`
}

// UserResponse - DTO returned for an account, never carries the hash
type UserResponse struct {
	ID        kernel.UserID `json:"id"`
	Email     kernel.Email  `json:"email"`
	Name      string        `json:"name"`
	Role      auth.Role     `json:"role"`
	CreatedAt time.Time     `json:"created_at"`
}

// AuthResponse - DTO returned after register/login
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

// ToResponse converts a user entity to its response DTO
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
