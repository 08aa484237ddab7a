package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/blog-platform-api/internal/realtime"
	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints, including the SSE stream of
// comment changes per article
type CommentHandler struct {
	services *service.Services
	feed     realtime.Feed
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, feed realtime.Feed, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		feed:     feed,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

type commentRequest struct {
	Content string `json:"content"`
}

// Add handles POST /v1/articles/:id/comments
func (h *CommentHandler) Add(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor := currentActor(c)
	comment, err := h.services.Comment.Add(c.Request.Context(), actor.UserID, c.Param("id"), req.Content)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Update handles PATCH /v1/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor := currentActor(c)
	comment, err := h.services.Comment.Update(c.Request.Context(), actor.UserID, c.Param("id"), req.Content)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	actor := currentActor(c)
	if err := h.services.Comment.Delete(c.Request.Context(), actor.UserID, c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListByArticle handles GET /v1/articles/:id/comments
func (h *CommentHandler) ListByArticle(c *gin.Context) {
	comments, err := h.services.Comment.ListByArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments, "count": len(comments)})
}

// Stream handles GET /v1/articles/:id/comments/stream. It relays the
// article's comment events as SSE until the client disconnects.
func (h *CommentHandler) Stream(c *gin.Context) {
	articleID := c.Param("id")
	ctx := c.Request.Context()

	events, dispose, err := h.feed.Subscribe(ctx, "comments", articleID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	defer dispose()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			data, err := json.Marshal(event)
			if err != nil {
				h.log.Error().Err(err).Msg("Failed to encode feed event")
				return true
			}
			c.SSEvent(string(event.Type), string(data))
			return true
		case <-ctx.Done():
			return false
		}
	})
}
