package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/blucialabs/backend/internal/models"
)

// UserStore is what the identity services need from the users table.
// Satisfied by repositories.UserRepository; tests substitute in-memory maps.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	LinkGoogleAccount(ctx context.Context, email, googleID, avatarURL string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch *models.ProfilePatch) (*models.User, error)
	EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	UsernameTaken(ctx context.Context, username string, excludeID uuid.UUID) (bool, error)
	CountByRole(ctx context.Context) (total, clients, admins int, err error)
}

// RequestStore is what the lifecycle service needs from the
// service_requests table. Satisfied by repositories.RequestRepository.
type RequestStore interface {
	Create(ctx context.Context, req *models.ServiceRequest) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ServiceRequest, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.ServiceRequest, error)
	ListAllWithOwner(ctx context.Context) ([]models.AdminRequest, error)
	FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*models.AdminRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.ServiceRequest, error)
	StatusCounts(ctx context.Context) (*models.RequestCounts, error)
	ListRecentWithOwner(ctx context.Context, limit int) ([]models.AdminRequest, error)
}
