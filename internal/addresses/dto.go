package addresses

import (
	"time"

	"github.com/google/uuid"

	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
)

// UpsertAddressRequest carries the address form fields.
type UpsertAddressRequest struct {
	Title        string  `json:"title" validate:"required,min=1,max=100"`
	FullName     string  `json:"full_name" validate:"required,min=1,max=200"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	AddressLine1 string  `json:"address_line1" validate:"required,min=1,max=300"`
	AddressLine2 *string `json:"address_line2,omitempty" validate:"omitempty,max=300"`
	City         string  `json:"city" validate:"required,min=1,max=100"`
	State        *string `json:"state,omitempty" validate:"omitempty,max=100"`
	PostalCode   *string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
	Country      string  `json:"country" validate:"required,min=1,max=100"`
	IsDefault    bool    `json:"is_default"`
}

// AddressDTO is the client view of a saved address.
type AddressDTO struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	FullName     string    `json:"full_name"`
	Phone        *string   `json:"phone,omitempty"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 *string   `json:"address_line2,omitempty"`
	City         string    `json:"city"`
	State        *string   `json:"state,omitempty"`
	PostalCode   *string   `json:"postal_code,omitempty"`
	Country      string    `json:"country"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromModel maps an address row to its client view.
func FromModel(address *models.UserAddress) AddressDTO {
	return AddressDTO{
		ID:           address.ID,
		Title:        address.Title,
		FullName:     address.FullName,
		Phone:        address.Phone,
		AddressLine1: address.AddressLine1,
		AddressLine2: address.AddressLine2,
		City:         address.City,
		State:        address.State,
		PostalCode:   address.PostalCode,
		Country:      address.Country,
		IsDefault:    address.IsDefault,
		CreatedAt:    address.CreatedAt,
		UpdatedAt:    address.UpdatedAt,
	}
}
