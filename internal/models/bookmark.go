package models

import (
	"time"
)

// Bookmark marks that a user saved an article for later. Same uniqueness
// shape as Like: (article_id, user_id), row existence is the state.
type Bookmark struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BookmarkSummary is a bookmark enriched with an article + author snapshot,
// the shape kept in the per-user bookmark list cache so a toggle can update
// the list without a full refetch.
type BookmarkSummary struct {
	Bookmark
	Article *Article `json:"article,omitempty"`
}
