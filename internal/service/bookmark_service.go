package service

import (
	"context"
	"time"

	"github.com/blog-platform-api/internal/apperrors"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// bookmarkService is the concrete implementation of BookmarkService
type bookmarkService struct {
	bookmarks repository.BookmarkRepository
	articles  repository.ArticleRepository
	cache     SummaryCache
	log       zerolog.Logger
}

func newBookmarkService(repos *repository.Repositories, cache SummaryCache, log zerolog.Logger) BookmarkService {
	return &bookmarkService{
		bookmarks: repos.Bookmark,
		articles:  repos.Article,
		cache:     cache,
		log:       log.With().Str("service", "bookmark").Logger(),
	}
}

// Toggle flips the actor's bookmark on the article and returns the new
// state: true when the toggle added a bookmark, false when it removed one.
// A duplicate add racing another toggle lands on the same final state.
func (s *bookmarkService) Toggle(ctx context.Context, actorID, articleID string) (bool, error) {
	exists, err := s.bookmarks.Exists(ctx, articleID, actorID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.bookmarks.Remove(ctx, articleID, actorID); err != nil {
			return false, err
		}
		s.patchCache(ctx, actorID, articleID, nil)
		return false, nil
	}

	bookmark := &models.Bookmark{
		ID:        uuid.New().String(),
		ArticleID: articleID,
		UserID:    actorID,
		CreatedAt: time.Now(),
	}
	if err := s.bookmarks.Add(ctx, bookmark); err != nil {
		if apperrors.IsAlreadyExists(err) {
			// Lost a race with a concurrent add; the bookmark is set either
			// way.
			return true, nil
		}
		return false, err
	}
	s.patchCache(ctx, actorID, articleID, bookmark)
	return true, nil
}

// List returns the actor's bookmarks newest first, each with an article
// snapshot. Served from the cache when warm; bookmarks whose article has
// since been deleted are listed without a snapshot.
func (s *bookmarkService) List(ctx context.Context, actorID string) ([]*models.BookmarkSummary, error) {
	cached, err := s.cache.Get(ctx, actorID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", actorID).Msg("Bookmark cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	bookmarks, err := s.bookmarks.ListByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*models.BookmarkSummary, 0, len(bookmarks))
	for _, b := range bookmarks {
		summary := &models.BookmarkSummary{Bookmark: *b}
		article, err := s.articles.GetByID(ctx, b.ArticleID)
		if err == nil && !article.IsDeleted() {
			summary.Article = article
		} else if err != nil && !apperrors.IsNotFound(err) {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err := s.cache.Set(ctx, actorID, summaries); err != nil {
		s.log.Warn().Err(err).Str("user_id", actorID).Msg("Bookmark cache write failed")
	}
	return summaries, nil
}

// patchCache applies a toggle to the cached list in place. added is nil for
// a removal. Any failure just drops the cache entry; correctness comes from
// the store.
func (s *bookmarkService) patchCache(ctx context.Context, actorID, articleID string, added *models.Bookmark) {
	cached, err := s.cache.Get(ctx, actorID)
	if err != nil || cached == nil {
		if err := s.cache.Invalidate(ctx, actorID); err != nil {
			s.log.Warn().Err(err).Str("user_id", actorID).Msg("Bookmark cache invalidation failed")
		}
		return
	}

	if added == nil {
		trimmed := cached[:0]
		for _, entry := range cached {
			if entry.ArticleID != articleID {
				trimmed = append(trimmed, entry)
			}
		}
		cached = trimmed
	} else {
		summary := &models.BookmarkSummary{Bookmark: *added}
		if article, err := s.articles.GetByID(ctx, articleID); err == nil && !article.IsDeleted() {
			summary.Article = article
		}
		cached = append([]*models.BookmarkSummary{summary}, cached...)
	}

	if err := s.cache.Set(ctx, actorID, cached); err != nil {
		s.log.Warn().Err(err).Str("user_id", actorID).Msg("Bookmark cache write failed")
	}
}
