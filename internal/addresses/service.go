package addresses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
)

// Service exposes the saved-address book.
type Service interface {
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error)
	CreateAddress(ctx context.Context, userID uuid.UUID, req UpsertAddressRequest) (AddressDTO, error)
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, req UpsertAddressRequest) (AddressDTO, error)
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error
	SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) (AddressDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the address service.
type ServiceParams struct {
	AddressRepo *Repository
	DB          txRunner
}

type service struct {
	addresses *Repository
	runner    txRunner
}

// NewService builds an address service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.AddressRepo == nil {
		return nil, fmt.Errorf("address repository is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &service{addresses: params.AddressRepo, runner: params.DB}, nil
}

// ListAddresses returns the user's address book, default first.
func (s *service) ListAddresses(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	addresses := make([]AddressDTO, 0, len(rows))
	for i := range rows {
		addresses = append(addresses, FromModel(&rows[i]))
	}
	return addresses, nil
}

// CreateAddress saves a new address. When flagged as default the previous
// default is cleared in the same transaction.
func (s *service) CreateAddress(ctx context.Context, userID uuid.UUID, req UpsertAddressRequest) (AddressDTO, error) {
	if userID == uuid.Nil {
		return AddressDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	address := &models.UserAddress{
		UserID:       userID,
		Title:        strings.TrimSpace(req.Title),
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        req.Phone,
		AddressLine1: strings.TrimSpace(req.AddressLine1),
		AddressLine2: req.AddressLine2,
		City:         strings.TrimSpace(req.City),
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      strings.TrimSpace(req.Country),
		IsDefault:    req.IsDefault,
	}

	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.addresses.WithTx(tx)
		if req.IsDefault {
			if err := repo.ClearDefault(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear default address")
			}
		}
		if _, err := repo.Create(ctx, address); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create address")
		}
		return nil
	})
	if err != nil {
		return AddressDTO{}, err
	}
	return FromModel(address), nil
}

// UpdateAddress replaces the editable fields on an owned address.
func (s *service) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, req UpsertAddressRequest) (AddressDTO, error) {
	address, err := s.loadOwned(ctx, userID, addressID)
	if err != nil {
		return AddressDTO{}, err
	}

	address.Title = strings.TrimSpace(req.Title)
	address.FullName = strings.TrimSpace(req.FullName)
	address.Phone = req.Phone
	address.AddressLine1 = strings.TrimSpace(req.AddressLine1)
	address.AddressLine2 = req.AddressLine2
	address.City = strings.TrimSpace(req.City)
	address.State = req.State
	address.PostalCode = req.PostalCode
	address.Country = strings.TrimSpace(req.Country)

	err = s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.addresses.WithTx(tx)
		if req.IsDefault && !address.IsDefault {
			if err := repo.ClearDefault(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear default address")
			}
			address.IsDefault = true
		}
		if _, err := repo.Update(ctx, address); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update address")
		}
		return nil
	})
	if err != nil {
		return AddressDTO{}, err
	}
	return FromModel(address), nil
}

// DeleteAddress removes an owned address.
func (s *service) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	if userID == uuid.Nil || addressID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and address id are required")
	}
	affected, err := s.addresses.Delete(ctx, addressID, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete address")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	return nil
}

// SetDefaultAddress promotes one address and demotes the previous default in
// the same transaction.
func (s *service) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) (AddressDTO, error) {
	if _, err := s.loadOwned(ctx, userID, addressID); err != nil {
		return AddressDTO{}, err
	}

	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.addresses.WithTx(tx)
		if err := repo.ClearDefault(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear default address")
		}
		affected, err := repo.SetDefault(ctx, addressID, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set default address")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return nil
	})
	if err != nil {
		return AddressDTO{}, err
	}

	address, err := s.loadOwned(ctx, userID, addressID)
	if err != nil {
		return AddressDTO{}, err
	}
	return FromModel(address), nil
}

func (s *service) loadOwned(ctx context.Context, userID, addressID uuid.UUID) (*models.UserAddress, error) {
	if userID == uuid.Nil || addressID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and address id are required")
	}
	address, err := s.addresses.FindByIDForUser(ctx, addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
	}
	return address, nil
}
