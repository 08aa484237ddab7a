package repository

import (
	"context"

	"github.com/blog-platform-api/internal/apperrors"
	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// likeRepo is the concrete implementation of LikeRepository
type likeRepo struct {
	db *database.DB
}

// NewLikeRepo creates a new like repository
func NewLikeRepo(db *database.DB) LikeRepository {
	return &likeRepo{db: db}
}

// Add inserts a like row. A concurrent duplicate surfaces as
// apperrors.ErrAlreadyExists via the unique constraint.
func (r *likeRepo) Add(ctx context.Context, like *models.Like) error {
	query := `
		INSERT INTO likes (id, article_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query,
		like.ID, like.ArticleID, like.UserID, like.CreatedAt,
	)
	return apperrors.FromDB("like add", err)
}

// Remove deletes the matching like row; removing an absent row is a no-op
func (r *likeRepo) Remove(ctx context.Context, articleID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM likes WHERE article_id = $1 AND user_id = $2",
		articleID, userID,
	)
	return apperrors.FromDB("like remove", err)
}

// Exists reports whether the user has liked the article
func (r *likeRepo) Exists(ctx context.Context, articleID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM likes WHERE article_id = $1 AND user_id = $2)",
		articleID, userID,
	).Scan(&exists)
	return exists, apperrors.FromDB("like exists", err)
}

// DeleteByArticle removes every like referencing the article
func (r *likeRepo) DeleteByArticle(ctx context.Context, articleID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM likes WHERE article_id = $1", articleID)
	return apperrors.FromDB("like delete by article", err)
}
