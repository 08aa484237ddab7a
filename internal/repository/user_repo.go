package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/blog-platform-api/internal/apperrors"
	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// Create inserts a new user. A duplicate email surfaces as
// apperrors.ErrAlreadyExists.
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, username, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Username, user.AvatarURL,
		user.CreatedAt, user.UpdatedAt,
	)
	return apperrors.FromDB("user create", err)
}

func (r *userRepo) get(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, username, avatar_url, created_at, updated_at
		FROM users WHERE ` + where

	var user models.User
	var avatarURL sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Username,
		&avatarURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, apperrors.FromDB("user get", err)
	}

	user.AvatarURL = avatarURL.String
	return &user, nil
}

// GetByID retrieves a user by ID
func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.get(ctx, "id = $1", id)
}

// GetByEmail retrieves a user by email
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.get(ctx, "email = $1", email)
}

// UpdateProfile applies a partial profile patch and stamps updated_at
func (r *userRepo) UpdateProfile(ctx context.Context, id string, patch *models.ProfilePatch, updatedAt time.Time) (*models.User, error) {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	if patch.Username != nil {
		sets = append(sets, fmt.Sprintf("username = $%d", idx))
		args = append(args, *patch.Username)
		idx++
	}
	if patch.AvatarURL != nil {
		sets = append(sets, fmt.Sprintf("avatar_url = NULLIF($%d, '')", idx))
		args = append(args, *patch.AvatarURL)
		idx++
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", idx))
	args = append(args, updatedAt)
	idx++

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.FromDB("user update", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}
