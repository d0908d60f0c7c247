package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ltj54/restructuring/internal/server/domain"
	"github.com/ltj54/restructuring/internal/server/store"
)

var ErrUserNotFound = errors.New("service: user not found")

// UserService covers profile reads and the admin user management surface.
type UserService struct {
	Store store.Store
}

func (s *UserService) GetByID(ctx context.Context, id int64) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("service: get user: %w", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: list users: %w", err)
	}
	return users, nil
}

// UpdateInfoParams carries the self-service editable profile fields.
type UpdateInfoParams struct {
	FirstName string
	LastName  string
	Phone     string
	SSN       string
}

func (s *UserService) UpdateInfo(ctx context.Context, id int64, params UpdateInfoParams) (domain.User, error) {
	err := s.Store.Users().UpdateUserInfo(ctx, id, params.FirstName, params.LastName, params.Phone, params.SSN)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("service: update user info: %w", err)
	}
	return s.GetByID(ctx, id)
}

// SetRole moves a user between the known roles. The role value is validated
// here so store drivers never see arbitrary strings.
func (s *UserService) SetRole(ctx context.Context, id int64, role string) (domain.User, error) {
	if role != domain.DefaultRole && role != domain.AdminRole {
		return domain.User{}, fmt.Errorf("service: unknown role %q", role)
	}
	if err := s.Store.Users().UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("service: update role: %w", err)
	}
	return s.GetByID(ctx, id)
}
