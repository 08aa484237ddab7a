package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blog-platform-api/internal/apperrors"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/blog-platform-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	comments repository.CommentRepository
	likes    repository.LikeRepository
	log      zerolog.Logger
}

func newArticleService(repos *repository.Repositories, log zerolog.Logger) ArticleService {
	return &articleService{
		articles: repos.Article,
		comments: repos.Comment,
		likes:    repos.Like,
		log:      log.With().Str("service", "article").Logger(),
	}
}

// Create persists a new article owned by the actor. Published defaults to
// false when the input leaves it unset.
func (s *articleService) Create(ctx context.Context, actorID string, input *models.ArticleInput) (*models.Article, error) {
	if err := validation.ValidateArticleInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	article := &models.Article{
		ID:                uuid.New().String(),
		Title:             input.Title,
		Content:           input.Content,
		Tags:              input.Tags,
		AuthorID:          actorID,
		Published:         input.Published,
		FeaturedImageURL:  input.FeaturedImageURL,
		FeaturedImagePath: input.FeaturedImagePath,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}

	// Return the stored record so the caller sees the row as the gateway
	// persisted it, not just the input echoed back.
	return s.articles.GetByID(ctx, article.ID)
}

// Update applies a partial patch to the actor's own article, stamping
// updated_at. Last write wins; there is no optimistic concurrency.
func (s *articleService) Update(ctx context.Context, actorID, articleID string, patch *models.ArticlePatch) (*models.Article, error) {
	if err := validation.ValidateArticlePatch(patch); err != nil {
		return nil, err
	}

	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.IsDeleted() {
		return nil, fmt.Errorf("article %s: %w", articleID, apperrors.ErrNotFound)
	}
	if article.AuthorID != actorID {
		return nil, fmt.Errorf("update article %s: %w", articleID, apperrors.ErrPermission)
	}

	return s.articles.Update(ctx, articleID, patch, time.Now())
}

// Get fetches a single article. Drafts are visible only to their author;
// soft-deleted rows are reported as absent.
func (s *articleService) Get(ctx context.Context, actorID, articleID string) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.IsDeleted() {
		return nil, fmt.Errorf("article %s: %w", articleID, apperrors.ErrNotFound)
	}
	if !article.Published && article.AuthorID != actorID {
		return nil, fmt.Errorf("article %s: %w", articleID, apperrors.ErrNotFound)
	}
	return article, nil
}

// ListPublished returns the published feed
func (s *articleService) ListPublished(ctx context.Context, opts models.ListOptions) (*models.ArticlePage, error) {
	articles, count, err := s.articles.ListPublished(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &models.ArticlePage{Articles: articles, Count: count}, nil
}

// ListByAuthor returns an author's articles. Drafts are included only when
// the actor asks for their own list.
func (s *articleService) ListByAuthor(ctx context.Context, actorID, authorID string, includeDrafts bool, opts models.ListOptions) (*models.ArticlePage, error) {
	if actorID != authorID {
		includeDrafts = false
	}
	articles, count, err := s.articles.ListByAuthor(ctx, authorID, includeDrafts, opts)
	if err != nil {
		return nil, err
	}
	return &models.ArticlePage{Articles: articles, Count: count}, nil
}

// ListByTag returns published articles carrying the tag
func (s *articleService) ListByTag(ctx context.Context, tag string, opts models.ListOptions) (*models.ArticlePage, error) {
	articles, count, err := s.articles.ListByTag(ctx, tag, opts)
	if err != nil {
		return nil, err
	}
	return &models.ArticlePage{Articles: articles, Count: count}, nil
}

// Search matches query case-insensitively against title or content of
// published articles
func (s *articleService) Search(ctx context.Context, query string, opts models.ListOptions) (*models.ArticlePage, error) {
	articles, count, err := s.articles.Search(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	return &models.ArticlePage{Articles: articles, Count: count}, nil
}

// deletedMarkerTitle builds the soft-delete title. The random suffix keeps
// repeated soft-deletes distinguishable and avoids colliding with any
// uniqueness expectation on titles.
func deletedMarkerTitle() string {
	return models.DeletedTitlePrefix + uuid.New().String()[:8]
}

// Delete runs the layered deletion fallback. States are attempted in strict
// order, each at most once per invocation:
//
//	PRECHECK -> HARD_DELETE -> VERIFY -> SOFT_DELETE -> MINIMAL_MARK
//
// A failure at HARD_DELETE or SOFT_DELETE advances to the next state rather
// than propagating; the user-visible effect of "delete" is always achieved,
// with the outcome's Warning flagging any backing-store inconsistency.
func (s *articleService) Delete(ctx context.Context, actorID, articleID string) (*models.DeleteOutcome, error) {
	// PRECHECK: the article must exist and belong to the actor. A row
	// already carrying the marker means an earlier delete got as far as
	// hiding it; the operation is idempotent success with no side effects.
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != actorID {
		return nil, fmt.Errorf("delete article %s: %w", articleID, apperrors.ErrPermission)
	}
	if article.IsDeleted() {
		return &models.DeleteOutcome{Mode: models.DeleteModeNoop}, nil
	}

	// HARD_DELETE: dependents first, then the row. Dependent cleanup is
	// best-effort; the row delete decides the state transition.
	if err := s.comments.DeleteByArticle(ctx, articleID); err != nil {
		s.log.Warn().Err(err).Str("article_id", articleID).Msg("Comment cleanup failed during delete")
	}
	if err := s.likes.DeleteByArticle(ctx, articleID); err != nil {
		s.log.Warn().Err(err).Str("article_id", articleID).Msg("Like cleanup failed during delete")
	}
	if err := s.articles.Delete(ctx, articleID); err != nil {
		s.log.Warn().Err(err).Str("article_id", articleID).Msg("Hard delete rejected")
	}

	// VERIFY: re-read the row. Only a confirmed not-found counts as a
	// successful hard delete; any surviving row advances the fallback.
	_, err = s.articles.GetByID(ctx, articleID)
	if apperrors.IsNotFound(err) {
		return &models.DeleteOutcome{Mode: models.DeleteModeHard}, nil
	}
	if err != nil {
		s.log.Warn().Err(err).Str("article_id", articleID).Msg("Delete verification re-read failed, assuming row survived")
	}

	// SOFT_DELETE: hide the surviving row in place.
	marker := deletedMarkerTitle()
	if err := s.articles.SoftDelete(ctx, articleID, marker); err == nil {
		return &models.DeleteOutcome{
			Mode:    models.DeleteModeSoft,
			Warning: "hard delete was rejected by the store; article hidden by soft delete",
		}, nil
	} else {
		s.log.Warn().Err(err).Str("article_id", articleID).Msg("Soft delete failed, falling back to title marker")
	}

	// MINIMAL_MARK: last resort, touch only the title. The operation
	// reports success either way; the warning lets operators detect the
	// leftover inconsistency.
	outcome := &models.DeleteOutcome{
		Mode:    models.DeleteModeMinimal,
		Warning: "hard and soft delete both failed; only the title marker was written",
	}
	if err := s.articles.MarkTitle(ctx, articleID, marker); err != nil {
		s.log.Error().Err(err).Str("article_id", articleID).Msg("Title marker write failed, article may remain visible")
		outcome.Warning = "all deletion layers failed; the article may remain visible in the store"
	}
	return outcome, nil
}

// Like records the actor's like. A duplicate insert, including one racing a
// concurrent like, is benign no-op success.
func (s *articleService) Like(ctx context.Context, actorID, articleID string) error {
	like := &models.Like{
		ID:        uuid.New().String(),
		ArticleID: articleID,
		UserID:    actorID,
		CreatedAt: time.Now(),
	}
	err := s.likes.Add(ctx, like)
	if apperrors.IsAlreadyExists(err) {
		return nil
	}
	return err
}

// Unlike removes the actor's like; removing an absent like is a no-op
func (s *articleService) Unlike(ctx context.Context, actorID, articleID string) error {
	return s.likes.Remove(ctx, articleID, actorID)
}

// HasLiked reports whether the actor has liked the article
func (s *articleService) HasLiked(ctx context.Context, actorID, articleID string) (bool, error) {
	return s.likes.Exists(ctx, articleID, actorID)
}
