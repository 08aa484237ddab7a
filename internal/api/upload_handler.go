package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var allowedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// UploadHandler handles article image uploads to object storage
type UploadHandler struct {
	store storage.ObjectStore
	cfg   *config.Config
	log   zerolog.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(store storage.ObjectStore, cfg *config.Config, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		store: store,
		cfg:   cfg,
		log:   log.With().Str("handler", "upload").Logger(),
	}
}

// UploadImage handles POST /v1/uploads. The object key is scoped to the
// uploading user so one user cannot overwrite another's images.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload is required"})
		return
	}
	defer file.Close()

	if header.Size > h.cfg.Upload.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file too large, max size is %d MB", h.cfg.Upload.MaxUploadSize/(1024*1024)),
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedImageExtensions[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type, expected jpg, png, gif or webp"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.cfg.Upload.MaxUploadSize))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}

	actor := currentActor(c)
	key := fmt.Sprintf("%s/%s%s", actor.UserID, uuid.New().String(), ext)

	url, err := h.store.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("Failed to store upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url, "path": key})
}

// ListImages handles GET /v1/uploads, returning the keys under the actor's
// prefix
func (h *UploadHandler) ListImages(c *gin.Context) {
	actor := currentActor(c)
	keys, err := h.store.List(c.Request.Context(), actor.UserID+"/")
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list uploads")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list uploads"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"paths": keys, "count": len(keys)})
}

// DeleteImage handles DELETE /v1/uploads/*path. Only keys under the actor's
// own prefix may be removed.
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("path"), "/")
	actor := currentActor(c)
	if !strings.HasPrefix(key, actor.UserID+"/") {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot delete another user's upload"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), key); err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("Failed to delete upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete upload"})
		return
	}
	c.Status(http.StatusNoContent)
}
