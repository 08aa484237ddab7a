package models

import (
	"strings"
	"time"
)

// DeletedTitlePrefix marks an article row as logically deleted while the row
// still physically exists. Every read path filters rows carrying it.
const DeletedTitlePrefix = "[DELETED] "

// DeletedContentPlaceholder replaces the body of a soft-deleted article.
const DeletedContentPlaceholder = "[This article has been deleted]"

// Article represents an article in the system
type Article struct {
	ID                string    `json:"id" db:"id"`
	Title             string    `json:"title" db:"title"`
	Content           string    `json:"content" db:"content"` // rich text stored as HTML
	Tags              []string  `json:"tags" db:"-"`           // Stored as JSON string in DB
	AuthorID          string    `json:"author_id" db:"author_id"`
	Published         bool      `json:"published" db:"published"`
	FeaturedImageURL  string    `json:"featured_image_url,omitempty" db:"featured_image_url"`
	FeaturedImagePath string    `json:"featured_image_path,omitempty" db:"featured_image_path"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`

	// Derived aggregates, populated by list/detail queries
	CommentsCount int `json:"comments_count" db:"-"`
	LikesCount    int `json:"likes_count" db:"-"`

	// Author snapshot, populated by joins on list/detail queries
	Author *Profile `json:"author,omitempty" db:"-"`
}

// IsDeleted reports whether the article carries the soft-delete marker.
func (a *Article) IsDeleted() bool {
	return strings.HasPrefix(a.Title, DeletedTitlePrefix)
}

// ArticleInput is the payload for creating an article
type ArticleInput struct {
	Title             string   `json:"title"`
	Content           string   `json:"content"`
	Tags              []string `json:"tags"`
	AuthorID          string   `json:"-"`
	Published         bool     `json:"published"`
	FeaturedImageURL  string   `json:"featured_image_url"`
	FeaturedImagePath string   `json:"featured_image_path"`
}

// ArticlePatch is a partial field set for updating an article.
// Nil fields are left untouched; updated_at is always stamped.
type ArticlePatch struct {
	Title             *string   `json:"title"`
	Content           *string   `json:"content"`
	Tags              *[]string `json:"tags"`
	Published         *bool     `json:"published"`
	FeaturedImageURL  *string   `json:"featured_image_url"`
	FeaturedImagePath *string   `json:"featured_image_path"`
}

// ListOptions controls pagination and ordering for article listings
type ListOptions struct {
	Limit     int
	Offset    int
	OrderBy   string // column name, defaults to created_at
	Ascending bool
}

// ArticlePage is one page of articles plus the total matching count
type ArticlePage struct {
	Articles []*Article `json:"articles"`
	Count    int        `json:"count"`
}

// DeleteMode identifies which layer of the deletion fallback chain
// ultimately took effect.
type DeleteMode string

const (
	// DeleteModeNoop means the article was already marked deleted and the
	// call short-circuited without side effects.
	DeleteModeNoop DeleteMode = "noop"
	// DeleteModeHard means the row was physically removed and the removal
	// was confirmed by re-read.
	DeleteModeHard DeleteMode = "hard"
	// DeleteModeSoft means the row survived the hard delete and was hidden
	// by the soft-delete rewrite.
	DeleteModeSoft DeleteMode = "soft"
	// DeleteModeMinimal means only the title marker could be written.
	DeleteModeMinimal DeleteMode = "minimal"
)

// DeleteOutcome reports how a delete resolved. Warning is set when the
// backing store could not be brought fully in line with the user-visible
// effect, so operators can detect the inconsistency.
type DeleteOutcome struct {
	Mode    DeleteMode `json:"mode"`
	Warning string     `json:"warning,omitempty"`
}
