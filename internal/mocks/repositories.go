package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/blog-platform-api/internal/apperrors"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
)

// MockArticleRepository is a mock implementation of ArticleRepository.
// Error fields let tests force individual operations to fail so the
// deletion fallback layers can be exercised one at a time.
type MockArticleRepository struct {
	Articles map[string]*models.Article

	CreateError     error
	DeleteError     error
	SoftDeleteError error
	MarkTitleError  error
	GetError        error

	DeleteCalls     int
	SoftDeleteCalls int
	MarkTitleCalls  int
}

// Verify interface compliance
var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	copied := *article
	m.Articles[article.ID] = &copied
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	article, ok := m.Articles[id]
	if !ok {
		return nil, fmt.Errorf("article %s: %w", id, apperrors.ErrNotFound)
	}
	copied := *article
	return &copied, nil
}

func (m *MockArticleRepository) Update(ctx context.Context, id string, patch *models.ArticlePatch, updatedAt time.Time) (*models.Article, error) {
	article, ok := m.Articles[id]
	if !ok {
		return nil, fmt.Errorf("article %s: %w", id, apperrors.ErrNotFound)
	}
	if patch.Title != nil {
		article.Title = *patch.Title
	}
	if patch.Content != nil {
		article.Content = *patch.Content
	}
	if patch.Tags != nil {
		article.Tags = *patch.Tags
	}
	if patch.Published != nil {
		article.Published = *patch.Published
	}
	if patch.FeaturedImageURL != nil {
		article.FeaturedImageURL = *patch.FeaturedImageURL
	}
	if patch.FeaturedImagePath != nil {
		article.FeaturedImagePath = *patch.FeaturedImagePath
	}
	article.UpdatedAt = updatedAt
	copied := *article
	return &copied, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) SoftDelete(ctx context.Context, id, markerTitle string) error {
	m.SoftDeleteCalls++
	if m.SoftDeleteError != nil {
		return m.SoftDeleteError
	}
	article, ok := m.Articles[id]
	if !ok {
		return fmt.Errorf("article %s: %w", id, apperrors.ErrNotFound)
	}
	article.Title = markerTitle
	article.Content = models.DeletedContentPlaceholder
	article.Published = false
	return nil
}

func (m *MockArticleRepository) MarkTitle(ctx context.Context, id, markerTitle string) error {
	m.MarkTitleCalls++
	if m.MarkTitleError != nil {
		return m.MarkTitleError
	}
	article, ok := m.Articles[id]
	if !ok {
		return fmt.Errorf("article %s: %w", id, apperrors.ErrNotFound)
	}
	article.Title = markerTitle
	return nil
}

func (m *MockArticleRepository) visible() []*models.Article {
	articles := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		if !a.IsDeleted() {
			copied := *a
			articles = append(articles, &copied)
		}
	}
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
	return articles
}

func (m *MockArticleRepository) ListPublished(ctx context.Context, opts models.ListOptions) ([]*models.Article, int, error) {
	var out []*models.Article
	for _, a := range m.visible() {
		if a.Published {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (m *MockArticleRepository) ListByAuthor(ctx context.Context, authorID string, includeDrafts bool, opts models.ListOptions) ([]*models.Article, int, error) {
	var out []*models.Article
	for _, a := range m.visible() {
		if a.AuthorID != authorID {
			continue
		}
		if !a.Published && !includeDrafts {
			continue
		}
		out = append(out, a)
	}
	return out, len(out), nil
}

func (m *MockArticleRepository) ListByTag(ctx context.Context, tag string, opts models.ListOptions) ([]*models.Article, int, error) {
	var out []*models.Article
	for _, a := range m.visible() {
		if !a.Published {
			continue
		}
		for _, t := range a.Tags {
			if t == tag {
				out = append(out, a)
				break
			}
		}
	}
	return out, len(out), nil
}

func (m *MockArticleRepository) Search(ctx context.Context, query string, opts models.ListOptions) ([]*models.Article, int, error) {
	q := strings.ToLower(query)
	var out []*models.Article
	for _, a := range m.visible() {
		if !a.Published {
			continue
		}
		if strings.Contains(strings.ToLower(a.Title), q) || strings.Contains(strings.ToLower(a.Content), q) {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments map[string]*models.Comment

	CreateError          error
	DeleteByArticleError error

	DeleteByArticleCalls int
}

// Verify interface compliance
var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[string]*models.Comment),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	copied := *comment
	m.Comments[comment.ID] = &copied
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	comment, ok := m.Comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, apperrors.ErrNotFound)
	}
	copied := *comment
	return &copied, nil
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) (*models.Comment, error) {
	comment, ok := m.Comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, apperrors.ErrNotFound)
	}
	comment.Content = content
	comment.UpdatedAt = updatedAt
	copied := *comment
	return &copied, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	delete(m.Comments, id)
	return nil
}

func (m *MockCommentRepository) DeleteByArticle(ctx context.Context, articleID string) error {
	m.DeleteByArticleCalls++
	if m.DeleteByArticleError != nil {
		return m.DeleteByArticleError
	}
	for id, c := range m.Comments {
		if c.ArticleID == articleID {
			delete(m.Comments, id)
		}
	}
	return nil
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// MockLikeRepository is a mock implementation of LikeRepository
type MockLikeRepository struct {
	Likes map[string]*models.Like

	AddError             error
	DeleteByArticleError error

	DeleteByArticleCalls int
}

// Verify interface compliance
var _ repository.LikeRepository = (*MockLikeRepository)(nil)

func NewMockLikeRepository() *MockLikeRepository {
	return &MockLikeRepository{
		Likes: make(map[string]*models.Like),
	}
}

func likeKey(articleID, userID string) string {
	return articleID + ":" + userID
}

func (m *MockLikeRepository) Add(ctx context.Context, like *models.Like) error {
	if m.AddError != nil {
		return m.AddError
	}
	key := likeKey(like.ArticleID, like.UserID)
	if _, exists := m.Likes[key]; exists {
		return fmt.Errorf("like: %w", apperrors.ErrAlreadyExists)
	}
	copied := *like
	m.Likes[key] = &copied
	return nil
}

func (m *MockLikeRepository) Remove(ctx context.Context, articleID, userID string) error {
	delete(m.Likes, likeKey(articleID, userID))
	return nil
}

func (m *MockLikeRepository) Exists(ctx context.Context, articleID, userID string) (bool, error) {
	_, exists := m.Likes[likeKey(articleID, userID)]
	return exists, nil
}

func (m *MockLikeRepository) DeleteByArticle(ctx context.Context, articleID string) error {
	m.DeleteByArticleCalls++
	if m.DeleteByArticleError != nil {
		return m.DeleteByArticleError
	}
	for key, l := range m.Likes {
		if l.ArticleID == articleID {
			delete(m.Likes, key)
		}
	}
	return nil
}

// MockBookmarkRepository is a mock implementation of BookmarkRepository
type MockBookmarkRepository struct {
	Bookmarks map[string]*models.Bookmark

	AddError    error
	RemoveError error
}

// Verify interface compliance
var _ repository.BookmarkRepository = (*MockBookmarkRepository)(nil)

func NewMockBookmarkRepository() *MockBookmarkRepository {
	return &MockBookmarkRepository{
		Bookmarks: make(map[string]*models.Bookmark),
	}
}

func (m *MockBookmarkRepository) Add(ctx context.Context, bookmark *models.Bookmark) error {
	if m.AddError != nil {
		return m.AddError
	}
	key := likeKey(bookmark.ArticleID, bookmark.UserID)
	if _, exists := m.Bookmarks[key]; exists {
		return fmt.Errorf("bookmark: %w", apperrors.ErrAlreadyExists)
	}
	copied := *bookmark
	m.Bookmarks[key] = &copied
	return nil
}

func (m *MockBookmarkRepository) Remove(ctx context.Context, articleID, userID string) error {
	if m.RemoveError != nil {
		return m.RemoveError
	}
	delete(m.Bookmarks, likeKey(articleID, userID))
	return nil
}

func (m *MockBookmarkRepository) Exists(ctx context.Context, articleID, userID string) (bool, error) {
	_, exists := m.Bookmarks[likeKey(articleID, userID)]
	return exists, nil
}

func (m *MockBookmarkRepository) ListByUser(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	var out []*models.Bookmark
	for _, b := range m.Bookmarks {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users       map[string]*models.User
	EmailToUser map[string]*models.User

	CreateError        error
	UpdateProfileError error
}

// Verify interface compliance
var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[string]*models.User),
		EmailToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, exists := m.EmailToUser[user.Email]; exists {
		return fmt.Errorf("user: %w", apperrors.ErrAlreadyExists)
	}
	copied := *user
	m.Users[user.ID] = &copied
	m.EmailToUser[user.Email] = &copied
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := m.EmailToUser[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, apperrors.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, patch *models.ProfilePatch, updatedAt time.Time) (*models.User, error) {
	if m.UpdateProfileError != nil {
		return nil, m.UpdateProfileError
	}
	user, ok := m.Users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = *patch.AvatarURL
	}
	user.UpdatedAt = updatedAt
	copied := *user
	return &copied, nil
}

// NewRepositories bundles fresh mocks into a repository set for service
// tests
func NewRepositories(articles *MockArticleRepository, comments *MockCommentRepository, likes *MockLikeRepository, bookmarks *MockBookmarkRepository, users *MockUserRepository) *repository.Repositories {
	return &repository.Repositories{
		Article:  articles,
		Comment:  comments,
		Like:     likes,
		Bookmark: bookmarks,
		User:     users,
	}
}
