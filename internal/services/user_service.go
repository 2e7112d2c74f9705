package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/blucialabs/backend/internal/apperrors"
	"github.com/blucialabs/backend/internal/models"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load profile", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User not found")
	}
	return user, nil
}

// UpdateProfile applies a partial update. Set-but-empty name/username are
// rejected; email and username changes re-probe uniqueness excluding the
// caller's own row.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch *models.ProfilePatch) (*models.User, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, apperrors.Validation("Name cannot be empty")
		}
		patch.Name = &trimmed
	}
	if patch.Username != nil {
		trimmed := strings.TrimSpace(*patch.Username)
		if trimmed == "" {
			return nil, apperrors.Validation("Username cannot be empty")
		}
		patch.Username = &trimmed
	}
	if patch.Email != nil && !emailPattern.MatchString(*patch.Email) {
		return nil, apperrors.Validation("Valid email is required")
	}
	if patch.Empty() {
		return nil, apperrors.Validation("No fields to update")
	}

	if patch.Username != nil {
		taken, err := s.users.UsernameTaken(ctx, *patch.Username, userID)
		if err != nil {
			return nil, apperrors.Internal("failed to check username", err)
		}
		if taken {
			return nil, apperrors.Conflict("Username already in use")
		}
	}
	if patch.Email != nil {
		taken, err := s.users.EmailTaken(ctx, *patch.Email, userID)
		if err != nil {
			return nil, apperrors.Internal("failed to check email", err)
		}
		if taken {
			return nil, apperrors.Conflict("Email already in use")
		}
	}

	user, err := s.users.UpdateProfile(ctx, userID, patch)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindConflict {
			return nil, err
		}
		return nil, apperrors.Internal("failed to update profile", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User not found")
	}
	return user, nil
}
