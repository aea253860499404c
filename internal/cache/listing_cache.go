package cache

import (
	"context"
	"crypto/sha1"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
)

// ListingCache caches product listing pages as a Redis list of product IDs
// per filter, then bulk-loads rows by ID. Writes bump a generation counter
// so every index key built under the old generation simply expires.
type ListingCache struct {
	products repository.ProductRepository
	cache    *redis.Client
	ttl      time.Duration
}

func NewListingCache(products repository.ProductRepository, cache *redis.Client, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ListingCache{products: products, cache: cache, ttl: ttl}
}

const genKey = "products:index:gen"

func (c *ListingCache) indexKey(ctx context.Context, filter repository.ProductFilter) string {
	gen, err := c.cache.Get(ctx, genKey).Result()
	if err != nil {
		gen = "0"
	}
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%s|%s|%s|%v|%v",
		filter.Query, filter.CategoryID, filter.StateID, filter.SellerID,
		filter.Status, filter.MinPrice, filter.MaxPrice)))
	return fmt.Sprintf("products:index:%s:%x", gen, sum[:8])
}

// List returns one page of products for the filter, serving IDs from the
// cached index when present.
func (c *ListingCache) List(ctx context.Context, filter repository.ProductFilter, page, size int) ([]*model.Product, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	start := (page - 1) * size
	end := start + size - 1

	key := c.indexKey(ctx, filter)
	var ids []string
	if exists, _ := c.cache.Exists(ctx, key).Result(); exists > 0 {
		ids, _ = c.cache.LRange(ctx, key, int64(start), int64(end)).Result()
	}

	if len(ids) == 0 {
		allIDs, err := c.loadIDsAndCache(ctx, filter, key)
		if err != nil {
			return nil, err
		}
		if start >= len(allIDs) {
			return []*model.Product{}, nil
		}
		endIdx := start + size
		if endIdx > len(allIDs) {
			endIdx = len(allIDs)
		}
		ids = allIDs[start:endIdx]
	}

	rows, err := c.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	// restore index order lost by the IN query
	byID := make(map[string]*model.Product, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}
	ordered := make([]*model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (c *ListingCache) loadIDsAndCache(ctx context.Context, filter repository.ProductFilter, key string) ([]string, error) {
	ids, err := c.products.ListIDs(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	vals := make([]interface{}, len(ids))
	for i, id := range ids {
		vals[i] = id
	}
	pipe := c.cache.TxPipeline()
	pipe.Del(ctx, key)
	pipe.RPush(ctx, key, vals...)
	pipe.Expire(ctx, key, c.ttl)
	_, _ = pipe.Exec(ctx)
	return ids, nil
}

// Invalidate drops all cached indexes by advancing the generation.
func (c *ListingCache) Invalidate(ctx context.Context) {
	if _, err := c.cache.Incr(ctx, genKey).Result(); err != nil {
		return
	}
	// keep the counter alive at least as long as any index built from it
	_ = c.cache.Expire(ctx, genKey, c.ttl*10).Err()
}

// Generation reports the current index generation (tests).
func (c *ListingCache) Generation(ctx context.Context) int64 {
	gen, err := c.cache.Get(ctx, genKey).Int64()
	if err != nil {
		return 0
	}
	return gen
}
