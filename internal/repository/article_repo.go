package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/blog-platform-api/internal/apperrors"
	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// articleColumns is the column list shared by every article select. The
// author snapshot and the derived comment/like counts ride along on each row.
const articleColumns = `
	a.id, a.title, a.content, a.tags, a.author_id, a.published,
	a.featured_image_url, a.featured_image_path, a.created_at, a.updated_at,
	u.username, u.avatar_url,
	(SELECT COUNT(*) FROM comments c WHERE c.article_id = a.id) AS comments_count,
	(SELECT COUNT(*) FROM likes l WHERE l.article_id = a.id) AS likes_count
`

// notDeleted excludes rows carrying the soft-delete title marker. Applied to
// every listing; GetByID deliberately omits it so the deletion state machine
// can observe marked rows.
const notDeleted = `a.title NOT LIKE '[DELETED]%'`

func scanArticle(row interface {
	Scan(dest ...interface{}) error
}) (*models.Article, error) {
	var article models.Article
	var tagsJSON []byte
	var featuredURL, featuredPath, avatarURL sql.NullString
	var username string

	err := row.Scan(
		&article.ID, &article.Title, &article.Content, &tagsJSON,
		&article.AuthorID, &article.Published,
		&featuredURL, &featuredPath, &article.CreatedAt, &article.UpdatedAt,
		&username, &avatarURL,
		&article.CommentsCount, &article.LikesCount,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal(tagsJSON, &article.Tags)
	article.FeaturedImageURL = featuredURL.String
	article.FeaturedImagePath = featuredPath.String
	article.Author = &models.Profile{
		ID:        article.AuthorID,
		Username:  username,
		AvatarURL: avatarURL.String,
	}

	return &article, nil
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	tagsJSON, _ := json.Marshal(article.Tags)
	if article.Tags == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		INSERT INTO articles (id, title, content, tags, author_id, published, featured_image_url, featured_image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Content, tagsJSON, article.AuthorID,
		article.Published, article.FeaturedImageURL, article.FeaturedImagePath,
		article.CreatedAt, article.UpdatedAt,
	)
	return apperrors.FromDB("article create", err)
}

// GetByID retrieves an article by ID, including soft-deleted rows
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles a
		JOIN users u ON u.id = a.author_id
		WHERE a.id = $1
	`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("article %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, apperrors.FromDB("article get", err)
	}
	return article, nil
}

// Update applies a partial patch and stamps updated_at, returning the
// updated record
func (r *articleRepo) Update(ctx context.Context, id string, patch *models.ArticlePatch, updatedAt time.Time) (*models.Article, error) {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if patch.Title != nil {
		addSet("title", *patch.Title)
	}
	if patch.Content != nil {
		addSet("content", *patch.Content)
	}
	if patch.Tags != nil {
		tagsJSON, _ := json.Marshal(*patch.Tags)
		addSet("tags", tagsJSON)
	}
	if patch.Published != nil {
		addSet("published", *patch.Published)
	}
	if patch.FeaturedImageURL != nil {
		addSet("featured_image_url", sql.NullString{String: *patch.FeaturedImageURL, Valid: *patch.FeaturedImageURL != ""})
	}
	if patch.FeaturedImagePath != nil {
		addSet("featured_image_path", sql.NullString{String: *patch.FeaturedImagePath, Valid: *patch.FeaturedImagePath != ""})
	}

	// updated_at is stamped on every update, even an empty patch
	addSet("updated_at", updatedAt)

	query := fmt.Sprintf("UPDATE articles SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.FromDB("article update", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, fmt.Errorf("article %s: %w", id, apperrors.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// Delete removes the article row
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	return apperrors.FromDB("article delete", err)
}

// SoftDelete hides an article by rewriting its lifecycle fields in place
func (r *articleRepo) SoftDelete(ctx context.Context, id, markerTitle string) error {
	query := `
		UPDATE articles
		SET published = FALSE, title = $2, content = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, markerTitle, models.DeletedContentPlaceholder, time.Now())
	if err != nil {
		return apperrors.FromDB("article soft delete", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("article %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// MarkTitle rewrites only the title marker, leaving content and published
// untouched
func (r *articleRepo) MarkTitle(ctx context.Context, id, markerTitle string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE articles SET title = $2 WHERE id = $1", id, markerTitle)
	if err != nil {
		return apperrors.FromDB("article mark title", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("article %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// list runs a filtered listing with its total count
func (r *articleRepo) list(ctx context.Context, where string, args []interface{}, opts models.ListOptions) ([]*models.Article, int, error) {
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM articles a
		JOIN users u ON u.id = a.author_id
		WHERE %s
	`, where)

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.FromDB("article count", err)
	}

	orderBy := opts.OrderBy
	switch orderBy {
	case "created_at", "updated_at", "title":
	default:
		orderBy = "created_at"
	}
	direction := "DESC"
	if opts.Ascending {
		direction = "ASC"
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}

	query := fmt.Sprintf(`
		SELECT %s FROM articles a
		JOIN users u ON u.id = a.author_id
		WHERE %s
		ORDER BY a.%s %s
		LIMIT $%d OFFSET $%d
	`, articleColumns, where, orderBy, direction, len(args)+1, len(args)+2)
	args = append(args, limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.FromDB("article list", err)
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, apperrors.FromDB("article scan", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.FromDB("article list", err)
	}

	return articles, total, nil
}

// ListPublished returns the published feed
func (r *articleRepo) ListPublished(ctx context.Context, opts models.ListOptions) ([]*models.Article, int, error) {
	return r.list(ctx, "a.published = TRUE AND "+notDeleted, nil, opts)
}

// ListByAuthor returns an author's articles, optionally including drafts
func (r *articleRepo) ListByAuthor(ctx context.Context, authorID string, includeDrafts bool, opts models.ListOptions) ([]*models.Article, int, error) {
	where := "a.author_id = $1 AND " + notDeleted
	if !includeDrafts {
		where += " AND a.published = TRUE"
	}
	return r.list(ctx, where, []interface{}{authorID}, opts)
}

// ListByTag returns published articles whose tag set contains tag
func (r *articleRepo) ListByTag(ctx context.Context, tag string, opts models.ListOptions) ([]*models.Article, int, error) {
	tagJSON, _ := json.Marshal([]string{tag})
	where := "a.published = TRUE AND a.tags @> $1 AND " + notDeleted
	return r.list(ctx, where, []interface{}{tagJSON}, opts)
}

// Search matches the query case-insensitively against title or content
func (r *articleRepo) Search(ctx context.Context, query string, opts models.ListOptions) ([]*models.Article, int, error) {
	pattern := "%" + query + "%"
	where := "a.published = TRUE AND (a.title ILIKE $1 OR a.content ILIKE $1) AND " + notDeleted
	return r.list(ctx, where, []interface{}{pattern}, opts)
}
