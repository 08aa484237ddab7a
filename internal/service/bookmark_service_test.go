package service_test

import (
	"context"
	"testing"
)

func TestBookmarkService_Toggle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)

	on, err := f.services.Bookmark.Toggle(ctx, "user-1", "a1")
	if err != nil {
		t.Fatalf("Toggle on failed: %v", err)
	}
	if !on {
		t.Error("First toggle should add the bookmark")
	}
	if len(f.bookmarks.Bookmarks) != 1 {
		t.Fatalf("Expected one bookmark row, got %d", len(f.bookmarks.Bookmarks))
	}

	off, err := f.services.Bookmark.Toggle(ctx, "user-1", "a1")
	if err != nil {
		t.Fatalf("Toggle off failed: %v", err)
	}
	if off {
		t.Error("Second toggle should remove the bookmark")
	}
	if len(f.bookmarks.Bookmarks) != 0 {
		t.Error("Bookmark row should be removed")
	}
}

func TestBookmarkService_ListWithArticleSnapshots(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)
	seedArticle(f, "a2", "author-1", true)

	f.services.Bookmark.Toggle(ctx, "user-1", "a1")
	f.services.Bookmark.Toggle(ctx, "user-1", "a2")

	summaries, err := f.services.Bookmark.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 bookmarks, got %d", len(summaries))
	}
	for _, s := range summaries {
		if s.Article == nil {
			t.Errorf("Bookmark %s should carry an article snapshot", s.ArticleID)
		}
	}
}

func TestBookmarkService_ListSkipsSnapshotForDeletedArticle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)
	f.services.Bookmark.Toggle(ctx, "user-1", "a1")
	f.cache.Invalidate(ctx, "user-1")

	if _, err := f.services.Article.Delete(ctx, "author-1", "a1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	summaries, err := f.services.Bookmark.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("Bookmark row should survive the article delete, got %d", len(summaries))
	}
	if summaries[0].Article != nil {
		t.Error("Deleted article should not appear as a snapshot")
	}
}

func TestBookmarkService_ListServedFromCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)
	f.services.Bookmark.Toggle(ctx, "user-1", "a1")

	// Toggle patched the cache; a following List must not miss.
	if _, err := f.services.Bookmark.List(ctx, "user-1"); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	cached := f.cache.Entries["user-1"]
	if len(cached) != 1 {
		t.Fatalf("Cache should hold the summary list, got %d entries", len(cached))
	}

	// Mutate the store behind the cache; a warm cache serves the old list.
	f.bookmarks.Bookmarks = nil
	summaries, err := f.services.Bookmark.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Errorf("Expected cache hit with 1 entry, got %d", len(summaries))
	}
}

func TestBookmarkService_CacheOutageFallsThrough(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedArticle(f, "a1", "author-1", true)
	f.services.Bookmark.Toggle(ctx, "user-1", "a1")

	f.cache.GetError = context.DeadlineExceeded
	summaries, err := f.services.Bookmark.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("Cache outage must not fail the read: %v", err)
	}
	if len(summaries) != 1 {
		t.Errorf("Expected 1 bookmark from the store, got %d", len(summaries))
	}
}
