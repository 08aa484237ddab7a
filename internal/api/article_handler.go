package api

import (
	"net/http"
	"strconv"

	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// listOptions parses pagination and ordering from query parameters
func listOptions(c *gin.Context) models.ListOptions {
	opts := models.ListOptions{
		OrderBy:   c.Query("order_by"),
		Ascending: c.Query("order") == "asc",
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		opts.Offset = offset
	}
	return opts
}

// Create handles POST /v1/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var input models.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor := currentActor(c)
	article, err := h.services.Article.Create(c.Request.Context(), actor.UserID, &input)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, article)
}

// Get handles GET /v1/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	actor := currentActor(c)
	article, err := h.services.Article.Get(c.Request.Context(), actor.UserID, c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// List handles GET /v1/articles. With ?tag= it filters by tag, with ?q= it
// searches title and content; otherwise it returns the published feed.
func (h *ArticleHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	opts := listOptions(c)

	var (
		page *models.ArticlePage
		err  error
	)
	switch {
	case c.Query("q") != "":
		page, err = h.services.Article.Search(ctx, c.Query("q"), opts)
	case c.Query("tag") != "":
		page, err = h.services.Article.ListByTag(ctx, c.Query("tag"), opts)
	default:
		page, err = h.services.Article.ListPublished(ctx, opts)
	}
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListByAuthor handles GET /v1/authors/:id/articles
func (h *ArticleHandler) ListByAuthor(c *gin.Context) {
	actor := currentActor(c)
	includeDrafts := c.Query("include_drafts") == "true"

	page, err := h.services.Article.ListByAuthor(c.Request.Context(), actor.UserID, c.Param("id"), includeDrafts, listOptions(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Update handles PATCH /v1/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	var patch models.ArticlePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor := currentActor(c)
	article, err := h.services.Article.Update(c.Request.Context(), actor.UserID, c.Param("id"), &patch)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /v1/articles/:id. The response reports which
// deletion layer took effect and carries a warning when the store could not
// be fully cleaned up.
func (h *ArticleHandler) Delete(c *gin.Context) {
	actor := currentActor(c)
	outcome, err := h.services.Article.Delete(c.Request.Context(), actor.UserID, c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// Like handles POST /v1/articles/:id/like
func (h *ArticleHandler) Like(c *gin.Context) {
	actor := currentActor(c)
	if err := h.services.Article.Like(c.Request.Context(), actor.UserID, c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": true})
}

// Unlike handles DELETE /v1/articles/:id/like
func (h *ArticleHandler) Unlike(c *gin.Context) {
	actor := currentActor(c)
	if err := h.services.Article.Unlike(c.Request.Context(), actor.UserID, c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": false})
}

// LikedState handles GET /v1/articles/:id/like
func (h *ArticleHandler) LikedState(c *gin.Context) {
	actor := currentActor(c)
	liked, err := h.services.Article.HasLiked(c.Request.Context(), actor.UserID, c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
