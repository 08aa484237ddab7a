package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/blog-platform-api/internal/apperrors"
	"github.com/blog-platform-api/internal/realtime"
)

func TestCommentService_AddAndPublish(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)

	comment, err := f.services.Comment.Add(ctx, "user-1", "a1", "  great read  ")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if comment.Content != "great read" {
		t.Errorf("Content should be trimmed, got %q", comment.Content)
	}
	if comment.UserID != "user-1" {
		t.Errorf("Expected commenter user-1, got %s", comment.UserID)
	}

	if len(f.feed.Published) != 1 {
		t.Fatalf("Expected one feed event, got %d", len(f.feed.Published))
	}
	event := f.feed.Published[0]
	if event.Type != realtime.EventInsert || event.Table != "comments" || event.Scope != "a1" {
		t.Errorf("Unexpected event: %+v", event)
	}
}

func TestCommentService_AddRejectsEmptyAndOversized(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)

	if _, err := f.services.Comment.Add(ctx, "user-1", "a1", "   "); !apperrors.IsValidation(err) {
		t.Errorf("Blank comment should fail validation, got %v", err)
	}

	huge := strings.Repeat("word ", 501)
	if _, err := f.services.Comment.Add(ctx, "user-1", "a1", huge); !apperrors.IsValidation(err) {
		t.Errorf("Oversized comment should fail validation, got %v", err)
	}
}

func TestCommentService_AddToMissingArticle(t *testing.T) {
	f := newFixture()
	_, err := f.services.Comment.Add(context.Background(), "user-1", "missing", "hello")
	if !apperrors.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestCommentService_UpdateAuthorOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)
	comment, _ := f.services.Comment.Add(ctx, "user-1", "a1", "original")

	if _, err := f.services.Comment.Update(ctx, "someone-else", comment.ID, "edited"); !apperrors.IsPermission(err) {
		t.Errorf("Only the commenter may edit, got %v", err)
	}

	updated, err := f.services.Comment.Update(ctx, "user-1", comment.ID, "edited")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("Expected edited content, got %q", updated.Content)
	}
}

func TestCommentService_DeleteByArticleAuthor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)
	comment, _ := f.services.Comment.Add(ctx, "user-1", "a1", "off topic")

	if err := f.services.Comment.Delete(ctx, "random", comment.ID); !apperrors.IsPermission(err) {
		t.Errorf("Unrelated user must not delete, got %v", err)
	}

	// The article's author moderates comments on their article.
	if err := f.services.Comment.Delete(ctx, "author-1", comment.ID); err != nil {
		t.Fatalf("Article author delete failed: %v", err)
	}
	if len(f.comments.Comments) != 0 {
		t.Error("Comment should be removed")
	}

	last := f.feed.Published[len(f.feed.Published)-1]
	if last.Type != realtime.EventDelete {
		t.Errorf("Expected delete event, got %s", last.Type)
	}
}

func TestCommentService_FeedOutageDoesNotFailWrite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)
	f.feed.PublishError = context.DeadlineExceeded

	if _, err := f.services.Comment.Add(ctx, "user-1", "a1", "still works"); err != nil {
		t.Fatalf("Broker outage must not fail the write: %v", err)
	}
	if len(f.comments.Comments) != 1 {
		t.Error("Comment should be persisted despite the publish failure")
	}
}
