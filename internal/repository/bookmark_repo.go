package repository

import (
	"context"

	"github.com/blog-platform-api/internal/apperrors"
	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// bookmarkRepo is the concrete implementation of BookmarkRepository
type bookmarkRepo struct {
	db *database.DB
}

// NewBookmarkRepo creates a new bookmark repository
func NewBookmarkRepo(db *database.DB) BookmarkRepository {
	return &bookmarkRepo{db: db}
}

// Add inserts a bookmark row, surfacing duplicates as ErrAlreadyExists
func (r *bookmarkRepo) Add(ctx context.Context, bookmark *models.Bookmark) error {
	query := `
		INSERT INTO bookmarks (id, article_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query,
		bookmark.ID, bookmark.ArticleID, bookmark.UserID, bookmark.CreatedAt,
	)
	return apperrors.FromDB("bookmark add", err)
}

// Remove deletes the matching bookmark row; removing an absent row is a no-op
func (r *bookmarkRepo) Remove(ctx context.Context, articleID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM bookmarks WHERE article_id = $1 AND user_id = $2",
		articleID, userID,
	)
	return apperrors.FromDB("bookmark remove", err)
}

// Exists reports whether the user has bookmarked the article
func (r *bookmarkRepo) Exists(ctx context.Context, articleID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM bookmarks WHERE article_id = $1 AND user_id = $2)",
		articleID, userID,
	).Scan(&exists)
	return exists, apperrors.FromDB("bookmark exists", err)
}

// ListByUser returns all of a user's bookmark rows, newest first
func (r *bookmarkRepo) ListByUser(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	query := `
		SELECT id, article_id, user_id, created_at
		FROM bookmarks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.FromDB("bookmark list", err)
	}
	defer rows.Close()

	var bookmarks []*models.Bookmark
	for rows.Next() {
		var bookmark models.Bookmark
		err := rows.Scan(&bookmark.ID, &bookmark.ArticleID, &bookmark.UserID, &bookmark.CreatedAt)
		if err != nil {
			return nil, apperrors.FromDB("bookmark scan", err)
		}
		bookmarks = append(bookmarks, &bookmark)
	}

	return bookmarks, apperrors.FromDB("bookmark list", rows.Err())
}
