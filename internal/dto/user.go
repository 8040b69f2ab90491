package dto

import "github.com/parkgrid/parkgrid-api/internal/models"

// CreateUserRequest payload for admin-side account creation.
type CreateUserRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	FullName string          `json:"full_name" validate:"required,min=2,max=100"`
	Role     models.UserRole `json:"role" validate:"required"`
}

// UpdateUserRequest payload for admin-side account edits. Nil fields are
// left untouched.
type UpdateUserRequest struct {
	Email    *string          `json:"email" validate:"omitempty,email"`
	FullName *string          `json:"full_name" validate:"omitempty,min=2,max=100"`
	Role     *models.UserRole `json:"role"`
	Active   *bool            `json:"active"`
}

// UpdateProfileRequest payload for a user editing their own account.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
}
