package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/blog-platform-api/internal/apperrors"
	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/blog-platform-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// authService is the concrete implementation of AuthService
type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	log    zerolog.Logger
}

func newAuthService(users repository.UserRepository, tokens *auth.TokenManager, log zerolog.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		log:    log.With().Str("service", "auth").Logger(),
	}
}

// SignUp creates an account and returns it with a fresh access token
func (s *authService) SignUp(ctx context.Context, email, password, username string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.ValidateCredentials(email, password); err != nil {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Username:     strings.TrimSpace(username),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsAlreadyExists(err) {
			return nil, "", fmt.Errorf("email already registered: %w", apperrors.ErrAlreadyExists)
		}
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("User signed up")
	return user, token, nil
}

// SignIn verifies credentials and returns the account with a fresh access
// token. A wrong password and an unknown email are reported identically.
func (s *authService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, "", fmt.Errorf("invalid credentials: %w", apperrors.ErrPermission)
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", fmt.Errorf("invalid credentials: %w", apperrors.ErrPermission)
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// GetProfile returns the user's public profile. An account created without
// a username gets one derived from its email local part on first fetch, so
// profiles materialize lazily for accounts provisioned with credentials
// only.
func (s *authService) GetProfile(ctx context.Context, userID, email string) (*models.Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Username == "" {
		fallback := usernameFromEmail(email)
		if fallback == "" {
			fallback = usernameFromEmail(user.Email)
		}
		patched, err := s.users.UpdateProfile(ctx, userID, &models.ProfilePatch{Username: &fallback}, time.Now())
		if err != nil {
			// The derived name is still usable for this response even when
			// the write fails.
			s.log.Warn().Err(err).Str("user_id", userID).Msg("Failed to persist derived username")
			user.Username = fallback
		} else {
			user = patched
		}
	}

	return user.Profile(), nil
}

// UpdateProfile applies a partial update to the actor's own profile
func (s *authService) UpdateProfile(ctx context.Context, actorID string, patch *models.ProfilePatch) (*models.Profile, error) {
	if err := validation.ValidateProfilePatch(patch); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, actorID, patch, time.Now())
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

func usernameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found {
		return strings.TrimSpace(email)
	}
	return strings.TrimSpace(local)
}
