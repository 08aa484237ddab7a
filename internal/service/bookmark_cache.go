package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/blog-platform-api/internal/models"
	"github.com/redis/go-redis/v9"
)

// SummaryCache holds the per-user bookmark summary list so a toggle can
// patch the cached list instead of refetching every bookmarked article.
// A cache miss is (nil, nil).
type SummaryCache interface {
	Get(ctx context.Context, userID string) ([]*models.BookmarkSummary, error)
	Set(ctx context.Context, userID string, summaries []*models.BookmarkSummary) error
	Invalidate(ctx context.Context, userID string) error
}

const (
	bookmarkCacheKeyPrefix = "bookmarks:user:"
	bookmarkCacheTTL       = 15 * time.Minute
)

type redisSummaryCache struct {
	client *redis.Client
}

// NewRedisSummaryCache creates a SummaryCache backed by Redis
func NewRedisSummaryCache(client *redis.Client) SummaryCache {
	return &redisSummaryCache{client: client}
}

func (c *redisSummaryCache) Get(ctx context.Context, userID string) ([]*models.BookmarkSummary, error) {
	data, err := c.client.Get(ctx, bookmarkCacheKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var summaries []*models.BookmarkSummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it.
		return nil, nil
	}
	return summaries, nil
}

func (c *redisSummaryCache) Set(ctx context.Context, userID string, summaries []*models.BookmarkSummary) error {
	data, err := json.Marshal(summaries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bookmarkCacheKeyPrefix+userID, data, bookmarkCacheTTL).Err()
}

func (c *redisSummaryCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, bookmarkCacheKeyPrefix+userID).Err()
}
