// Package user serves the signed-in account's own profile.
package user

import (
	"context"
	"errors"
	"log/slog"

	userDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/user"
	"github.com/frahmantamala/bizmanager/internal/storage"
)

type Service struct {
	store  storage.UserStore
	logger *slog.Logger
}

func NewService(store storage.UserStore, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// UpdateProfile merges the supplied profile fields into the account.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, dto UpdateProfileDTO) (*userDatamodel.User, error) {
	patch, err := storage.NewPatch(dto)
	if err != nil {
		return nil, err
	}

	u, err := s.store.UpdateUser(ctx, userID, patch)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("failed to update profile", "error", err, "user_id", userID)
		}
		return nil, err
	}
	s.logger.Info("profile updated", "user_id", userID)
	return u, nil
}
