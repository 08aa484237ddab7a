package api

import (
	"net/http"

	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BookmarkHandler handles bookmark endpoints
type BookmarkHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(services *service.Services, log zerolog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		services: services,
		log:      log.With().Str("handler", "bookmark").Logger(),
	}
}

// Toggle handles POST /v1/articles/:id/bookmark
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	actor := currentActor(c)
	bookmarked, err := h.services.Bookmark.Toggle(c.Request.Context(), actor.UserID, c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

// List handles GET /v1/bookmarks
func (h *BookmarkHandler) List(c *gin.Context) {
	actor := currentActor(c)
	summaries, err := h.services.Bookmark.List(c.Request.Context(), actor.UserID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": summaries, "count": len(summaries)})
}
