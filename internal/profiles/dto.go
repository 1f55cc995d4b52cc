package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	"github.com/amara-cosmetics/amara-backend/pkg/enums"
)

// ProfileDTO is the client-facing view of a user record.
type ProfileDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	FullName    string         `json:"full_name"`
	Phone       *string        `json:"phone,omitempty"`
	Address     *string        `json:"address,omitempty"`
	Role        enums.UserRole `json:"role"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	FullName string  `json:"full_name" validate:"required,min=1,max=200"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

// UsersPageDTO is the admin view of the user list.
type UsersPageDTO struct {
	Users      []ProfileDTO `json:"users"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// FromModel maps a user row to its client view.
func FromModel(user *models.User) ProfileDTO {
	return ProfileDTO{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		Phone:       user.Phone,
		Address:     user.Address,
		Role:        user.Role,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
