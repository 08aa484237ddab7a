package service

import (
	"context"

	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/realtime"
	"github.com/blog-platform-api/internal/repository"
	"github.com/rs/zerolog"
)

// ArticleService owns the article lifecycle: create/update/read/delete plus
// the like toggle. Mutations are author-only; actorID is the authenticated
// identity threaded in by the handler.
type ArticleService interface {
	Create(ctx context.Context, actorID string, input *models.ArticleInput) (*models.Article, error)
	Update(ctx context.Context, actorID, articleID string, patch *models.ArticlePatch) (*models.Article, error)
	Get(ctx context.Context, actorID, articleID string) (*models.Article, error)
	ListPublished(ctx context.Context, opts models.ListOptions) (*models.ArticlePage, error)
	ListByAuthor(ctx context.Context, actorID, authorID string, includeDrafts bool, opts models.ListOptions) (*models.ArticlePage, error)
	ListByTag(ctx context.Context, tag string, opts models.ListOptions) (*models.ArticlePage, error)
	Search(ctx context.Context, query string, opts models.ListOptions) (*models.ArticlePage, error)
	Delete(ctx context.Context, actorID, articleID string) (*models.DeleteOutcome, error)
	Like(ctx context.Context, actorID, articleID string) error
	Unlike(ctx context.Context, actorID, articleID string) error
	HasLiked(ctx context.Context, actorID, articleID string) (bool, error)
}

// CommentService owns comments on published articles and publishes change
// events to the realtime feed
type CommentService interface {
	Add(ctx context.Context, actorID, articleID, content string) (*models.Comment, error)
	Update(ctx context.Context, actorID, commentID, content string) (*models.Comment, error)
	Delete(ctx context.Context, actorID, commentID string) error
	ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error)
}

// BookmarkService owns the bookmark toggle and the cached per-user list of
// bookmarked-article summaries
type BookmarkService interface {
	Toggle(ctx context.Context, actorID, articleID string) (bool, error)
	List(ctx context.Context, actorID string) ([]*models.BookmarkSummary, error)
}

// AuthService owns accounts and profiles
type AuthService interface {
	SignUp(ctx context.Context, email, password, username string) (*models.User, string, error)
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)
	GetProfile(ctx context.Context, userID, email string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, actorID string, patch *models.ProfilePatch) (*models.Profile, error)
}

// Services holds all service interfaces
type Services struct {
	Article  ArticleService
	Comment  CommentService
	Bookmark BookmarkService
	Auth     AuthService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, feed realtime.Feed, cache SummaryCache, tokens *auth.TokenManager, log zerolog.Logger) *Services {
	return &Services{
		Article:  newArticleService(repos, log),
		Comment:  newCommentService(repos, feed, log),
		Bookmark: newBookmarkService(repos, cache, log),
		Auth:     newAuthService(repos.User, tokens, log),
	}
}
