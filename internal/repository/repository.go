package repository

import (
	"context"
	"time"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// ArticleRepository defines the interface for article data operations.
// Read methods never return soft-deleted rows; lookups for absent rows
// return apperrors.ErrNotFound.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	Update(ctx context.Context, id string, patch *models.ArticlePatch, updatedAt time.Time) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id, markerTitle string) error
	MarkTitle(ctx context.Context, id, markerTitle string) error
	ListPublished(ctx context.Context, opts models.ListOptions) ([]*models.Article, int, error)
	ListByAuthor(ctx context.Context, authorID string, includeDrafts bool, opts models.ListOptions) ([]*models.Article, int, error)
	ListByTag(ctx context.Context, tag string, opts models.ListOptions) ([]*models.Article, int, error)
	Search(ctx context.Context, query string, opts models.ListOptions) ([]*models.Article, int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) (*models.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByArticle(ctx context.Context, articleID string) error
	ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error)
}

// LikeRepository defines the interface for like data operations.
// Add surfaces a duplicate insert as apperrors.ErrAlreadyExists; Remove of
// an absent row is a no-op.
type LikeRepository interface {
	Add(ctx context.Context, like *models.Like) error
	Remove(ctx context.Context, articleID, userID string) error
	Exists(ctx context.Context, articleID, userID string) (bool, error)
	DeleteByArticle(ctx context.Context, articleID string) error
}

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	Add(ctx context.Context, bookmark *models.Bookmark) error
	Remove(ctx context.Context, articleID, userID string) error
	Exists(ctx context.Context, articleID, userID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Bookmark, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, patch *models.ProfilePatch, updatedAt time.Time) (*models.User, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article  ArticleRepository
	Comment  CommentRepository
	Like     LikeRepository
	Bookmark BookmarkRepository
	User     UserRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:  NewArticleRepo(db),
		Comment:  NewCommentRepo(db),
		Like:     NewLikeRepo(db),
		Bookmark: NewBookmarkRepo(db),
		User:     NewUserRepo(db),
	}
}
