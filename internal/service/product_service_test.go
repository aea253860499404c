package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductService, *model.User) {
	t.Helper()
	db := setupServiceDB(t)

	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewOrderRepository(db),
		repository.NewUserRepository(db),
		repository.NewTaxonomyRepository(db),
		nil,
	)

	require.NoError(t, db.Create(&model.Tier{ID: "t-basic", Name: "Basic", ListingLimit: 2}).Error)
	seller := &model.User{ID: uuid.New().String(), Name: "seller", Email: "s@example.com", Password: "x", TierID: "t-basic"}
	require.NoError(t, db.Create(seller).Error)
	return db, svc, seller
}

func TestProductCreateEnforcesTierLimit(t *testing.T) {
	_, svc, seller := setupProductTest(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, seller.ID, ProductCreateInput{Title: fmt.Sprintf("Book %d", i), Price: 10})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, seller.ID, ProductCreateInput{Title: "One too many", Price: 10})
	assert.ErrorIs(t, err, ErrListingLimit)
}

func TestProductUpdateOwnership(t *testing.T) {
	_, svc, seller := setupProductTest(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, seller.ID, ProductCreateInput{Title: "Physics", Price: 30})
	require.NoError(t, err)

	newPrice := 25.0
	_, err = svc.Update(ctx, uuid.New().String(), p.ID, ProductUpdateInput{Price: &newPrice})
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.Update(ctx, seller.ID, p.ID, ProductUpdateInput{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, newPrice, updated.Price)
	assert.Equal(t, "Physics", updated.Title) // 未传字段不动
}

func TestProductDeleteBlockedByActiveOrder(t *testing.T) {
	db, svc, seller := setupProductTest(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, seller.ID, ProductCreateInput{Title: "Chemistry", Price: 15})
	require.NoError(t, err)

	buyer := &model.User{ID: uuid.New().String(), Name: "buyer", Email: "b@example.com", Password: "x"}
	require.NoError(t, db.Create(buyer).Error)
	require.NoError(t, db.Create(&model.Order{
		ID: uuid.New().String(), BuyerID: buyer.ID, SellerID: seller.ID,
		ProductID: p.ID, OrderStatus: model.OrderStatusPending,
		TrackingStatus: model.TrackingOrderPlaced, Amount: p.Price,
	}).Error)

	assert.ErrorIs(t, svc.Delete(ctx, seller.ID, p.ID), ErrProductInOrder)

	// 订单终结后可以删
	require.NoError(t, db.Model(&model.Order{}).
		Where("product_id = ?", p.ID).
		Update("order_status", model.OrderStatusRejected).Error)
	require.NoError(t, svc.Delete(ctx, seller.ID, p.ID))
}

func TestProductListFilters(t *testing.T) {
	_, svc, seller := setupProductTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, seller.ID, ProductCreateInput{Title: "Linear Algebra", Price: 40, CategoryID: "c-math"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, seller.ID, ProductCreateInput{Title: "Organic Chemistry", Price: 55, CategoryID: "c-chem"})
	require.NoError(t, err)

	got, err := svc.List(ctx, repository.ProductFilter{CategoryID: "c-math", Status: model.ProductStatusSelling}, 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Linear Algebra", got[0].Title)

	got, err = svc.List(ctx, repository.ProductFilter{Query: "chem", Status: model.ProductStatusSelling}, 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = svc.List(ctx, repository.ProductFilter{MinPrice: 50, Status: model.ProductStatusSelling}, 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Organic Chemistry", got[0].Title)
}

// 编辑只写被改的列：商品在读-改窗口里成交了也不会被写回 selling
func TestProductUpdateKeepsSaleColumns(t *testing.T) {
	db, svc, seller := setupProductTest(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, seller.ID, ProductCreateInput{Title: "Biology", Price: 20})
	require.NoError(t, err)

	buyerID := uuid.New().String()
	require.NoError(t, db.Model(&model.Product{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"status":   model.ProductStatusSold,
			"buyer_id": buyerID,
		}).Error)

	title := "Biology 2nd ed."
	updated, err := svc.Update(ctx, seller.ID, p.ID, ProductUpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	var got model.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, model.ProductStatusSold, got.Status)
	require.NotNil(t, got.BuyerID)
	assert.Equal(t, buyerID, *got.BuyerID)
}

func TestProductUpdateStaleVersionFails(t *testing.T) {
	db, svc, seller := setupProductTest(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, seller.ID, ProductCreateInput{Title: "Algebra", Price: 18})
	require.NoError(t, err)

	repo := repository.NewProductRepository(db)
	rows, err := repo.UpdateVersioned(ctx, p.ID, p.Version+5,
		map[string]interface{}{"title": "stale write", "version": p.Version + 6})
	require.NoError(t, err)
	assert.Zero(t, rows)

	var got model.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, "Algebra", got.Title)
	assert.Equal(t, p.Version, got.Version)
}
