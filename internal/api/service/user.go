package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/so-ota-biz/fridge-chef/internal/api/domain"
	"github.com/so-ota-biz/fridge-chef/internal/api/identity"
	"github.com/so-ota-biz/fridge-chef/internal/api/store"
)

type UserService struct {
	Identity identity.Provider
	Store    store.Store
}

// GetProfile fetches a user by id.
func (s *UserService) GetProfile(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// UpdateProfile writes the set fields. Blank names are rejected rather than
// stored.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, p domain.ProfileUpdate) (domain.User, error) {
	var err error
	if p.DisplayName, err = requiredName("displayName", p.DisplayName); err != nil {
		return domain.User{}, err
	}
	if p.FirstName, err = requiredName("firstName", p.FirstName); err != nil {
		return domain.User{}, err
	}
	if p.LastName, err = requiredName("lastName", p.LastName); err != nil {
		return domain.User{}, err
	}

	if !p.Empty() {
		if err := s.Store.Users().UpdateProfile(ctx, userID, p); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.User{}, ErrNotFound
			}
			return domain.User{}, fmt.Errorf("update profile: %w", err)
		}
	}
	return s.GetProfile(ctx, userID)
}

// ChangePassword replaces the password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if current == "" {
		return invalid("currentPassword", "is required")
	}
	if err := validateStrongPassword("newPassword", next); err != nil {
		return err
	}
	return mapIdentityErr(s.Identity.ChangePassword(ctx, userID, current, next))
}

// DeleteAccount removes the profile, its records and the account after
// confirming the password.
func (s *UserService) DeleteAccount(ctx context.Context, userID, password string) error {
	if password == "" {
		return invalid("password", "is required")
	}

	id, err := s.Identity.GetAccount(ctx, userID)
	if err != nil {
		return mapIdentityErr(err)
	}
	if _, err := s.Identity.VerifyCredentials(ctx, id.Email, password); err != nil {
		return mapIdentityErr(err)
	}

	if err := s.Store.Users().DeleteUser(ctx, userID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("delete user: %w", err)
	}
	return mapIdentityErr(s.Identity.DeleteAccount(ctx, userID))
}
