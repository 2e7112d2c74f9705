package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/blucialabs/backend/internal/apperrors"
	"github.com/blucialabs/backend/internal/models"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProfile is the slice of the userinfo response the adapter needs.
type GoogleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type GoogleAuthService struct {
	users  UserStore
	client *http.Client
	logger *zap.Logger
}

func NewGoogleAuthService(users UserStore, logger *zap.Logger) *GoogleAuthService {
	return &GoogleAuthService{
		users:  users,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// FetchProfile exchanges the provider token for the user's Google profile.
func (s *GoogleAuthService) FetchProfile(ctx context.Context, token *oauth2.Token) (*GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read userinfo response: %w", err)
	}

	var profile GoogleProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}

	if !profile.VerifiedEmail {
		return nil, fmt.Errorf("email is not verified by Google")
	}

	return &profile, nil
}

// Resolve turns a Google profile into a local account. Three steps, first
// match wins:
//  1. provider id already known: plain login.
//  2. email already registered: link the Google identity to that account,
//     leaving role and password alone.
//  3. otherwise create a client account with a username derived from the
//     email, suffixed until free.
//
// The created flag is true only in the third case so the caller can send
// the welcome email exactly once.
func (s *GoogleAuthService) Resolve(ctx context.Context, profile *GoogleProfile) (*models.User, bool, error) {
	user, err := s.users.FindByGoogleID(ctx, profile.ID)
	if err != nil {
		return nil, false, apperrors.Internal("failed to look up google id", err)
	}
	if user != nil {
		return user, false, nil
	}

	user, err = s.users.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, false, apperrors.Internal("failed to look up email", err)
	}
	if user != nil {
		linked, err := s.users.LinkGoogleAccount(ctx, profile.Email, profile.ID, profile.Picture)
		if err != nil {
			return nil, false, apperrors.Internal("failed to link google account", err)
		}
		s.logger.Info("google account linked", zap.String("user_id", linked.ID.String()))
		return linked, false, nil
	}

	username, err := s.uniqueUsername(ctx, profile.Email)
	if err != nil {
		return nil, false, apperrors.Internal("failed to derive username", err)
	}

	newUser := &models.User{
		Name:      profile.Name,
		Username:  username,
		Email:     profile.Email,
		GoogleID:  profile.ID,
		AvatarURL: profile.Picture,
		Role:      models.RoleClient,
	}
	if err := s.users.Create(ctx, newUser); err != nil {
		return nil, false, apperrors.Internal("failed to create user", err)
	}
	s.logger.Info("google account created", zap.String("user_id", newUser.ID.String()))

	return newUser, true, nil
}

// uniqueUsername derives a base candidate from the email's local part and
// probes sequentially, appending an incrementing suffix until free. The
// loop is unbounded on purpose; realistic signup volume bounds it.
func (s *GoogleAuthService) uniqueUsername(ctx context.Context, email string) (string, error) {
	base := usernameBase(email)

	candidate := base
	for suffix := 1; ; suffix++ {
		existing, err := s.users.FindByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(suffix)
	}
}

func usernameBase(email string) string {
	local, _, _ := strings.Cut(email, "@")
	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
