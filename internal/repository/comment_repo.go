package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blog-platform-api/internal/apperrors"
	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, article_id, user_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.ArticleID, comment.UserID, comment.Content,
		comment.CreatedAt, comment.UpdatedAt,
	)
	return apperrors.FromDB("comment create", err)
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `
		SELECT id, article_id, user_id, content, created_at, updated_at
		FROM comments WHERE id = $1
	`

	var comment models.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.ArticleID, &comment.UserID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("comment %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, apperrors.FromDB("comment get", err)
	}
	return &comment, nil
}

// UpdateContent replaces the comment body and stamps updated_at
func (r *commentRepo) UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) (*models.Comment, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE comments SET content = $2, updated_at = $3 WHERE id = $1",
		id, content, updatedAt,
	)
	if err != nil {
		return nil, apperrors.FromDB("comment update", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, fmt.Errorf("comment %s: %w", id, apperrors.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a comment
func (r *commentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id)
	return apperrors.FromDB("comment delete", err)
}

// DeleteByArticle removes every comment referencing the article
func (r *commentRepo) DeleteByArticle(ctx context.Context, articleID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE article_id = $1", articleID)
	return apperrors.FromDB("comment delete by article", err)
}

// ListByArticle returns the article's comments with author snapshots,
// oldest first
func (r *commentRepo) ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	query := `
		SELECT c.id, c.article_id, c.user_id, c.content, c.created_at, c.updated_at,
		       u.username, u.avatar_url
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.article_id = $1
		ORDER BY c.created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, apperrors.FromDB("comment list", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		var username string
		var avatarURL sql.NullString

		err := rows.Scan(
			&comment.ID, &comment.ArticleID, &comment.UserID, &comment.Content,
			&comment.CreatedAt, &comment.UpdatedAt,
			&username, &avatarURL,
		)
		if err != nil {
			return nil, apperrors.FromDB("comment scan", err)
		}

		comment.User = &models.Profile{
			ID:        comment.UserID,
			Username:  username,
			AvatarURL: avatarURL.String,
		}
		comments = append(comments, &comment)
	}

	return comments, apperrors.FromDB("comment list", rows.Err())
}
