package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/blog-platform-api/internal/apperrors"
	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/mocks"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
	"github.com/rs/zerolog"
)

type fixture struct {
	articles  *mocks.MockArticleRepository
	comments  *mocks.MockCommentRepository
	likes     *mocks.MockLikeRepository
	bookmarks *mocks.MockBookmarkRepository
	users     *mocks.MockUserRepository
	feed      *mocks.MockFeed
	cache     *mocks.MockSummaryCache
	services  *service.Services
}

func newFixture() *fixture {
	f := &fixture{
		articles:  mocks.NewMockArticleRepository(),
		comments:  mocks.NewMockCommentRepository(),
		likes:     mocks.NewMockLikeRepository(),
		bookmarks: mocks.NewMockBookmarkRepository(),
		users:     mocks.NewMockUserRepository(),
		feed:      mocks.NewMockFeed(),
		cache:     mocks.NewMockSummaryCache(),
	}
	repos := mocks.NewRepositories(f.articles, f.comments, f.likes, f.bookmarks, f.users)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	f.services = service.NewServices(repos, f.feed, f.cache, tokens, zerolog.Nop())
	return f
}

func seedArticle(f *fixture, id, authorID string, published bool) *models.Article {
	article := &models.Article{
		ID:        id,
		Title:     "Test Article " + id,
		Content:   "Some content about distributed systems",
		Tags:      []string{"go", "testing"},
		AuthorID:  authorID,
		Published: published,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.articles.Create(context.Background(), article)
	return article
}

func TestArticleService_CreateDefaultsToDraft(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	article, err := f.services.Article.Create(ctx, "user-1", &models.ArticleInput{
		Title:   "My Draft",
		Content: "work in progress",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if article.Published {
		t.Error("Article should default to unpublished")
	}
	if article.AuthorID != "user-1" {
		t.Errorf("Expected author user-1, got %s", article.AuthorID)
	}
	if article.ID == "" {
		t.Error("Article ID should be assigned")
	}
}

func TestArticleService_GetHidesDraftsFromOthers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", false)

	if _, err := f.services.Article.Get(ctx, "author-1", "a1"); err != nil {
		t.Fatalf("Author should see own draft: %v", err)
	}

	_, err := f.services.Article.Get(ctx, "someone-else", "a1")
	if !apperrors.IsNotFound(err) {
		t.Errorf("Expected not found for non-author, got %v", err)
	}
}

func TestArticleService_UpdateRejectsNonAuthor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)

	title := "Hijacked"
	_, err := f.services.Article.Update(ctx, "intruder", "a1", &models.ArticlePatch{Title: &title})
	if !apperrors.IsPermission(err) {
		t.Errorf("Expected permission error, got %v", err)
	}
}

func TestArticleService_UpdateStampsUpdatedAt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	article := seedArticle(f, "a1", "author-1", true)
	before := article.UpdatedAt

	published := true
	updated, err := f.services.Article.Update(ctx, "author-1", "a1", &models.ArticlePatch{Published: &published})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.UpdatedAt.After(before) {
		t.Error("UpdatedAt should advance even when no content changes")
	}
}

func TestArticleService_DeleteHard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)

	outcome, err := f.services.Article.Delete(ctx, "author-1", "a1")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if outcome.Mode != models.DeleteModeHard {
		t.Errorf("Expected hard mode, got %s", outcome.Mode)
	}
	if outcome.Warning != "" {
		t.Errorf("Hard delete should carry no warning, got %q", outcome.Warning)
	}
	if _, exists := f.articles.Articles["a1"]; exists {
		t.Error("Article row should be removed")
	}
	if f.comments.DeleteByArticleCalls != 1 || f.likes.DeleteByArticleCalls != 1 {
		t.Error("Dependent cleanup should run before the row delete")
	}
}

func TestArticleService_DeleteFallsBackToSoft(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)
	f.articles.DeleteError = errors.New("permission denied for table articles")

	outcome, err := f.services.Article.Delete(ctx, "author-1", "a1")
	if err != nil {
		t.Fatalf("Delete should not propagate the store rejection: %v", err)
	}
	if outcome.Mode != models.DeleteModeSoft {
		t.Errorf("Expected soft mode, got %s", outcome.Mode)
	}
	if outcome.Warning == "" {
		t.Error("Soft fallback should carry a degradation warning")
	}

	row := f.articles.Articles["a1"]
	if !strings.HasPrefix(row.Title, models.DeletedTitlePrefix) {
		t.Errorf("Title should carry the deletion marker, got %q", row.Title)
	}
	if row.Published {
		t.Error("Soft-deleted article should be unpublished")
	}
	if row.Content != models.DeletedContentPlaceholder {
		t.Errorf("Content should be replaced, got %q", row.Content)
	}
}

func TestArticleService_DeleteFallsBackToMinimalMark(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)
	f.articles.DeleteError = errors.New("delete rejected")
	f.articles.SoftDeleteError = errors.New("update rejected")

	outcome, err := f.services.Article.Delete(ctx, "author-1", "a1")
	if err != nil {
		t.Fatalf("Delete should still succeed: %v", err)
	}
	if outcome.Mode != models.DeleteModeMinimal {
		t.Errorf("Expected minimal mode, got %s", outcome.Mode)
	}
	if outcome.Warning == "" {
		t.Error("Minimal mark should carry a degradation warning")
	}

	row := f.articles.Articles["a1"]
	if !strings.HasPrefix(row.Title, models.DeletedTitlePrefix) {
		t.Errorf("Title should carry the deletion marker, got %q", row.Title)
	}
	// Minimal mark touches only the title.
	if row.Content == models.DeletedContentPlaceholder {
		t.Error("Minimal mark should not rewrite content")
	}
}

func TestArticleService_DeleteSucceedsWhenAllLayersFail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)
	f.articles.DeleteError = errors.New("delete rejected")
	f.articles.SoftDeleteError = errors.New("update rejected")
	f.articles.MarkTitleError = errors.New("update rejected")

	outcome, err := f.services.Article.Delete(ctx, "author-1", "a1")
	if err != nil {
		t.Fatalf("Delete must report success even with all layers failing: %v", err)
	}
	if outcome.Mode != models.DeleteModeMinimal {
		t.Errorf("Expected minimal mode, got %s", outcome.Mode)
	}
	if outcome.Warning == "" {
		t.Error("Total failure should carry a warning")
	}
}

func TestArticleService_DeleteAlreadyDeletedIsNoop(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	article := seedArticle(f, "a1", "author-1", true)
	article.Title = models.DeletedTitlePrefix + "abc12345"
	f.articles.Articles["a1"] = article

	outcome, err := f.services.Article.Delete(ctx, "author-1", "a1")
	if err != nil {
		t.Fatalf("Repeated delete should be idempotent success: %v", err)
	}
	if outcome.Mode != models.DeleteModeNoop {
		t.Errorf("Expected noop mode, got %s", outcome.Mode)
	}
	if f.articles.DeleteCalls != 0 {
		t.Error("Noop delete should not touch the store")
	}
}

func TestArticleService_DeleteAbsentArticle(t *testing.T) {
	f := newFixture()
	_, err := f.services.Article.Delete(context.Background(), "author-1", "missing")
	if !apperrors.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestArticleService_DeleteRejectsNonAuthor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)

	_, err := f.services.Article.Delete(ctx, "intruder", "a1")
	if !apperrors.IsPermission(err) {
		t.Errorf("Expected permission error, got %v", err)
	}
	if _, exists := f.articles.Articles["a1"]; !exists {
		t.Error("Article must survive a rejected delete")
	}
}

func TestArticleService_ListingsExcludeSoftDeleted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)
	marked := seedArticle(f, "a2", "author-1", true)
	marked.Title = models.DeletedTitlePrefix + "dead0000"
	f.articles.Articles["a2"] = marked

	page, err := f.services.Article.ListPublished(ctx, models.ListOptions{})
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if page.Count != 1 {
		t.Fatalf("Expected 1 visible article, got %d", page.Count)
	}
	if page.Articles[0].ID != "a1" {
		t.Errorf("Expected a1, got %s", page.Articles[0].ID)
	}

	byAuthor, err := f.services.Article.ListByAuthor(ctx, "author-1", "author-1", true, models.ListOptions{})
	if err != nil {
		t.Fatalf("ListByAuthor failed: %v", err)
	}
	if byAuthor.Count != 1 {
		t.Errorf("Author listing should also exclude marked rows, got %d", byAuthor.Count)
	}
}

func TestArticleService_ListByAuthorHidesDraftsFromOthers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)
	seedArticle(f, "a2", "author-1", false)

	own, _ := f.services.Article.ListByAuthor(ctx, "author-1", "author-1", true, models.ListOptions{})
	if own.Count != 2 {
		t.Errorf("Author should see drafts, got %d", own.Count)
	}

	other, _ := f.services.Article.ListByAuthor(ctx, "visitor", "author-1", true, models.ListOptions{})
	if other.Count != 1 {
		t.Errorf("Visitors should not see drafts even when requested, got %d", other.Count)
	}
}

func TestArticleService_SearchIsCaseInsensitive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)

	page, err := f.services.Article.Search(ctx, "DISTRIBUTED", models.ListOptions{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if page.Count != 1 {
		t.Errorf("Expected case-insensitive content match, got %d results", page.Count)
	}
}

func TestArticleService_LikeDuplicateIsBenign(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)

	if err := f.services.Article.Like(ctx, "user-1", "a1"); err != nil {
		t.Fatalf("First like failed: %v", err)
	}
	if err := f.services.Article.Like(ctx, "user-1", "a1"); err != nil {
		t.Fatalf("Duplicate like should be a no-op, got %v", err)
	}

	liked, _ := f.services.Article.HasLiked(ctx, "user-1", "a1")
	if !liked {
		t.Error("Like state should be set")
	}
	if len(f.likes.Likes) != 1 {
		t.Errorf("Expected exactly one like row, got %d", len(f.likes.Likes))
	}
}

func TestArticleService_UnlikeAbsentIsNoop(t *testing.T) {
	f := newFixture()
	if err := f.services.Article.Unlike(context.Background(), "user-1", "a1"); err != nil {
		t.Errorf("Removing an absent like should be a no-op, got %v", err)
	}
}
