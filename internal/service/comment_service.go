package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/blog-platform-api/internal/apperrors"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/realtime"
	"github.com/blog-platform-api/internal/repository"
	"github.com/blog-platform-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	feed     realtime.Feed
	log      zerolog.Logger
}

func newCommentService(repos *repository.Repositories, feed realtime.Feed, log zerolog.Logger) CommentService {
	return &commentService{
		comments: repos.Comment,
		articles: repos.Article,
		feed:     feed,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// Add creates a comment on a visible article and announces it on the
// realtime feed
func (s *commentService) Add(ctx context.Context, actorID, articleID, content string) (*models.Comment, error) {
	if err := validation.ValidateCommentContent(content); err != nil {
		return nil, err
	}

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

	now := time.Now()
	comment := &models.Comment{
		ID:        uuid.New().String(),
		ArticleID: articleID,
		UserID:    actorID,
		Content:   strings.TrimSpace(content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.comments.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.EventInsert, articleID, created)
	return created, nil
}

// Update rewrites the comment body. Only the comment's author may edit it.
func (s *commentService) Update(ctx context.Context, actorID, commentID, content string) (*models.Comment, error) {
	if err := validation.ValidateCommentContent(content); err != nil {
		return nil, err
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actorID {
		return nil, fmt.Errorf("update comment %s: %w", commentID, apperrors.ErrPermission)
	}

	updated, err := s.comments.UpdateContent(ctx, commentID, strings.TrimSpace(content), time.Now())
	if err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.EventUpdate, comment.ArticleID, updated)
	return updated, nil
}

// Delete removes a comment. The comment's author and the article's author
// may both delete it.
func (s *commentService) Delete(ctx context.Context, actorID, commentID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != actorID {
		article, err := s.articles.GetByID(ctx, comment.ArticleID)
		if err != nil {
			return err
		}
		if article.AuthorID != actorID {
			return fmt.Errorf("delete comment %s: %w", commentID, apperrors.ErrPermission)
		}
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}

	s.publish(ctx, realtime.EventDelete, comment.ArticleID, comment)
	return nil
}

// ListByArticle returns the article's comments oldest first
func (s *commentService) ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	return s.comments.ListByArticle(ctx, articleID)
}

// publish is best-effort; a broker outage never fails the write that
// triggered it
func (s *commentService) publish(ctx context.Context, typ realtime.EventType, articleID string, comment *models.Comment) {
	payload, err := json.Marshal(comment)
	if err != nil {
		s.log.Error().Err(err).Str("comment_id", comment.ID).Msg("Failed to encode comment event")
		return
	}
	event := realtime.Event{
		Type:    typ,
		Table:   "comments",
		Scope:   articleID,
		Payload: payload,
	}
	if err := s.feed.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("article_id", articleID).Msg("Failed to publish comment event")
	}
}
