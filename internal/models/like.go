package models

import (
	"time"
)

// Like marks that a user liked an article. Uniqueness on
// (article_id, user_id) is enforced by the database; the row's existence is
// the only state.
type Like struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
