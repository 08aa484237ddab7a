package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/realtime"
	"github.com/blog-platform-api/internal/service"
	"github.com/blog-platform-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const actorContextKey = "actor"

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, feed realtime.Feed, store storage.ObjectStore, tokens *auth.TokenManager, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	articleHandler := NewArticleHandler(services, log)
	commentHandler := NewCommentHandler(services, feed, log)
	bookmarkHandler := NewBookmarkHandler(services, log)
	authHandler := NewAuthHandler(services, log)
	uploadHandler := NewUploadHandler(store, cfg, log)

	requireAuth := authMiddleware(tokens, true)
	optionalAuth := authMiddleware(tokens, false)

	// Health check
	router.GET("/health", healthCheck)

	// API v1
	v1 := router.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.SignUp)
			authGroup.POST("/signin", authHandler.SignIn)
			authGroup.GET("/me", requireAuth, authHandler.Me)
			authGroup.PATCH("/me/profile", requireAuth, authHandler.UpdateProfile)
		}

		articles := v1.Group("/articles")
		{
			articles.GET("", optionalAuth, articleHandler.List)
			articles.POST("", requireAuth, articleHandler.Create)
			articles.GET("/:id", optionalAuth, articleHandler.Get)
			articles.PATCH("/:id", requireAuth, articleHandler.Update)
			articles.DELETE("/:id", requireAuth, articleHandler.Delete)

			articles.POST("/:id/like", requireAuth, articleHandler.Like)
			articles.DELETE("/:id/like", requireAuth, articleHandler.Unlike)
			articles.GET("/:id/like", requireAuth, articleHandler.LikedState)

			articles.POST("/:id/bookmark", requireAuth, bookmarkHandler.Toggle)

			articles.GET("/:id/comments", commentHandler.ListByArticle)
			articles.POST("/:id/comments", requireAuth, commentHandler.Add)
			articles.GET("/:id/comments/stream", commentHandler.Stream)
		}

		comments := v1.Group("/comments")
		{
			comments.PATCH("/:id", requireAuth, commentHandler.Update)
			comments.DELETE("/:id", requireAuth, commentHandler.Delete)
		}

		authors := v1.Group("/authors")
		{
			authors.GET("/:id/articles", optionalAuth, articleHandler.ListByAuthor)
		}

		bookmarks := v1.Group("/bookmarks")
		{
			bookmarks.GET("", requireAuth, bookmarkHandler.List)
		}

		uploads := v1.Group("/uploads")
		{
			uploads.POST("", requireAuth, uploadHandler.UploadImage)
			uploads.GET("", requireAuth, uploadHandler.ListImages)
			uploads.DELETE("/*path", requireAuth, uploadHandler.DeleteImage)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "blog-platform-api",
	})
}

// authMiddleware resolves the bearer token to an actor. With required set,
// a missing or bad token aborts the request; otherwise the request proceeds
// anonymously and handlers see an empty actor.
func authMiddleware(tokens *auth.TokenManager, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			token = ""
		}

		actor, err := tokens.Parse(token)
		if err != nil {
			if required {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
				c.Abort()
				return
			}
			c.Next()
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// currentActor returns the authenticated actor, or an empty Actor for
// anonymous requests
func currentActor(c *gin.Context) *auth.Actor {
	if v, ok := c.Get(actorContextKey); ok {
		if actor, ok := v.(*auth.Actor); ok {
			return actor
		}
	}
	return &auth.Actor{}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
