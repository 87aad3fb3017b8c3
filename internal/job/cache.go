// Taseroncum | 2026
// cache.go

package job

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const listingVersionKey = "jobs:listing:version"

// ListingCache fronts the public listing query with redis. Invalidation
// bumps a version counter instead of scanning for keys, so stale entries
// simply age out at their TTL. Cache failures never fail a request.
type ListingCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ListingCache{redis: client, ttl: ttl}
}

type cachedListing struct {
	Items []JobPost `json:"items"`
	Total int       `json:"total"`
}

func (c *ListingCache) Get(
	ctx context.Context,
	params ListJobsParams,
) ([]JobPost, int, bool) {
	if c == nil || c.redis == nil {
		return nil, 0, false
	}

	key, err := c.key(ctx, params)
	if err != nil {
		return nil, 0, false
	}

	raw, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, 0, false
	}

	var entry cachedListing
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, 0, false
	}

	return entry.Items, entry.Total, true
}

func (c *ListingCache) Set(
	ctx context.Context,
	params ListJobsParams,
	items []JobPost,
	total int,
) {
	if c == nil || c.redis == nil {
		return
	}

	key, err := c.key(ctx, params)
	if err != nil {
		return
	}

	raw, err := json.Marshal(cachedListing{Items: items, Total: total})
	if err != nil {
		return
	}

	if err := c.redis.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		slog.Debug("listing cache set failed", "error", err)
	}
}

// Invalidate bumps the listing version. Called after every mutation
// that can change what the public listing shows.
func (c *ListingCache) Invalidate(ctx context.Context) {
	if c == nil || c.redis == nil {
		return
	}

	if err := c.redis.Incr(ctx, listingVersionKey).Err(); err != nil {
		slog.Debug("listing cache invalidation failed", "error", err)
	}
}

func (c *ListingCache) key(
	ctx context.Context,
	params ListJobsParams,
) (string, error) {
	version, err := c.redis.Get(ctx, listingVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(raw)
	return fmt.Sprintf(
		"jobs:listing:%d:%s",
		version,
		hex.EncodeToString(sum[:8]),
	), nil
}
