package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	"github.com/amara-cosmetics/amara-backend/pkg/enums"
	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
)

// Service exposes profile reads and updates plus the admin user console.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (ProfileDTO, error)
	ListUsers(ctx context.Context, cursor string, limit int) (UsersPageDTO, error)
	UpdateUserRole(ctx context.Context, userID uuid.UUID, role enums.UserRole) (ProfileDTO, error)
	SetUserActive(ctx context.Context, userID uuid.UUID, active bool) (ProfileDTO, error)
}

// ServiceParams groups dependencies for the profile service.
type ServiceParams struct {
	UserRepo *Repository
}

type service struct {
	users *Repository
}

// NewService builds a profile service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{users: params.UserRepo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (ProfileDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return ProfileDTO{}, err
	}
	return FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (ProfileDTO, error) {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return ProfileDTO{}, err
	}
	if err := s.users.UpdateProfile(ctx, userID, req.FullName, req.Phone, req.Address); err != nil {
		return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return s.GetProfile(ctx, userID)
}

func (s *service) ListUsers(ctx context.Context, cursor string, limit int) (UsersPageDTO, error) {
	rows, nextCursor, err := s.users.List(ctx, cursor, limit)
	if err != nil {
		return UsersPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	users := make([]ProfileDTO, 0, len(rows))
	for i := range rows {
		users = append(users, FromModel(&rows[i]))
	}
	return UsersPageDTO{Users: users, NextCursor: nextCursor}, nil
}

func (s *service) UpdateUserRole(ctx context.Context, userID uuid.UUID, role enums.UserRole) (ProfileDTO, error) {
	if !role.IsValid() {
		return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", role))
	}
	if _, err := s.loadUser(ctx, userID); err != nil {
		return ProfileDTO{}, err
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update role")
	}
	return s.GetProfile(ctx, userID)
}

func (s *service) SetUserActive(ctx context.Context, userID uuid.UUID, active bool) (ProfileDTO, error) {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return ProfileDTO{}, err
	}
	if err := s.users.SetActive(ctx, userID, active); err != nil {
		return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update active flag")
	}
	return s.GetProfile(ctx, userID)
}

func (s *service) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}
