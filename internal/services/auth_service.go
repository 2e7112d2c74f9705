package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blucialabs/backend/internal/apperrors"
	"github.com/blucialabs/backend/internal/mailer"
	"github.com/blucialabs/backend/internal/models"
	"github.com/blucialabs/backend/internal/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthService struct {
	users       UserStore
	dispatcher  mailer.Dispatcher
	jwtSecret   []byte
	frontendURL string
	logger      *zap.Logger
}

func NewAuthService(users UserStore, dispatcher mailer.Dispatcher, jwtSecret []byte, frontendURL string, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:       users,
		dispatcher:  dispatcher,
		jwtSecret:   jwtSecret,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Register creates a password account and returns it with a fresh token.
// Email is probed for uniqueness before username; the first hit wins.
func (s *AuthService) Register(ctx context.Context, name, username, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	switch {
	case name == "":
		return nil, "", apperrors.Validation("Name is required")
	case username == "":
		return nil, "", apperrors.Validation("Username is required")
	case !emailPattern.MatchString(email):
		return nil, "", apperrors.Validation("Valid email is required")
	case len(password) < 6:
		return nil, "", apperrors.Validation("Password must be at least 6 characters")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.Internal("failed to check email", err)
	}
	if existing != nil {
		return nil, "", apperrors.Conflict("User already exists with this email")
	}

	existing, err = s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", apperrors.Internal("failed to check username", err)
	}
	if existing != nil {
		return nil, "", apperrors.Conflict("Username already taken")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", apperrors.Internal("failed to hash password", err)
	}

	user := &models.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleClient,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the probes; the repository
		// translates the unique violation to the same Conflict error.
		if apperrors.KindOf(err) == apperrors.KindConflict {
			return nil, "", err
		}
		return nil, "", apperrors.Internal("failed to create user", err)
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, s.jwtSecret)
	if err != nil {
		return nil, "", apperrors.Internal("failed to generate token", err)
	}

	s.dispatcher.Dispatch(mailer.Welcome(user.Email, user.Name, s.frontendURL))
	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))

	return user, token, nil
}

// Login resolves the identifier as an email when it contains '@', as a
// username otherwise. Failures collapse to "Invalid credentials" with one
// deliberate exception: an account with no password directs the caller to
// Google sign-in so legitimate OAuth users aren't locked out.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*models.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, "", apperrors.Validation("Email or username is required")
	}
	if password == "" {
		return nil, "", apperrors.Validation("Password is required")
	}

	var (
		user *models.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.users.FindByEmail(ctx, identifier)
	} else {
		user, err = s.users.FindByUsername(ctx, identifier)
	}
	if err != nil {
		return nil, "", apperrors.Internal("failed to look up user", err)
	}
	if user == nil {
		return nil, "", apperrors.Unauthenticated("Invalid credentials")
	}

	if !user.HasPassword() {
		return nil, "", apperrors.Unauthenticated("Please sign in with Google")
	}

	if err := utils.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, "", apperrors.Unauthenticated("Invalid credentials")
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, s.jwtSecret)
	if err != nil {
		return nil, "", apperrors.Internal("failed to generate token", err)
	}

	return user, token, nil
}

// CurrentUser loads the account behind a verified token.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User not found")
	}
	return user, nil
}
