package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
)

func setupListingCache(t *testing.T) (*gorm.DB, *ListingCache) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Product{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return db, NewListingCache(repository.NewProductRepository(db), rdb, time.Minute)
}

func seedProducts(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	base := time.Now()
	for i := 0; i < n; i++ {
		require.NoError(t, db.Create(&model.Product{
			ID:       fmt.Sprintf("p%03d", i),
			SellerID: "s1",
			Title:    fmt.Sprintf("Book %03d", i),
			Price:    float64(10 + i),
			Status:   model.ProductStatusSelling,
			Version:  1,
			// created_at 递增，列表按新→旧排序
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}).Error)
	}
}

func TestListingCacheServesFromIndex(t *testing.T) {
	db, lc := setupListingCache(t)
	seedProducts(t, db, 30)
	ctx := context.Background()
	filter := repository.ProductFilter{Status: model.ProductStatusSelling}

	page1, err := lc.List(ctx, filter, 1, 10)
	require.NoError(t, err)
	require.Len(t, page1, 10)
	// 最新的排最前
	assert.Equal(t, "p029", page1[0].ID)

	// 第二次命中缓存索引，顺序一致
	again, err := lc.List(ctx, filter, 1, 10)
	require.NoError(t, err)
	require.Len(t, again, 10)
	for i := range page1 {
		assert.Equal(t, page1[i].ID, again[i].ID)
	}

	page2, err := lc.List(ctx, filter, 2, 10)
	require.NoError(t, err)
	require.Len(t, page2, 10)
	assert.Equal(t, "p019", page2[0].ID)
}

func TestListingCacheInvalidateAdvancesGeneration(t *testing.T) {
	db, lc := setupListingCache(t)
	seedProducts(t, db, 5)
	ctx := context.Background()
	filter := repository.ProductFilter{Status: model.ProductStatusSelling}

	_, err := lc.List(ctx, filter, 1, 10)
	require.NoError(t, err)
	gen := lc.Generation(ctx)

	// 新上架后索引失效，下一次 List 能看到新商品
	require.NoError(t, db.Create(&model.Product{
		ID: "p-new", SellerID: "s1", Title: "Fresh", Price: 1,
		Status: model.ProductStatusSelling, Version: 1,
		CreatedAt: time.Now().Add(time.Hour),
	}).Error)
	lc.Invalidate(ctx)
	assert.Greater(t, lc.Generation(ctx), gen)

	rows, err := lc.List(ctx, filter, 1, 10)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "p-new", rows[0].ID)
}

func TestListingCachePastLastPage(t *testing.T) {
	db, lc := setupListingCache(t)
	seedProducts(t, db, 3)

	rows, err := lc.List(context.Background(), repository.ProductFilter{Status: model.ProductStatusSelling}, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListingCacheFilterIsolation(t *testing.T) {
	db, lc := setupListingCache(t)
	seedProducts(t, db, 4)
	ctx := context.Background()

	require.NoError(t, db.Model(&model.Product{}).
		Where("id IN ?", []string{"p000", "p001"}).
		Update("category_id", "c-math").Error)

	mathOnly, err := lc.List(ctx, repository.ProductFilter{Status: model.ProductStatusSelling, CategoryID: "c-math"}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, mathOnly, 2)

	all, err := lc.List(ctx, repository.ProductFilter{Status: model.ProductStatusSelling}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
