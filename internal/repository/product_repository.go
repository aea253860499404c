package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/model"
)

// ProductFilter 商品列表过滤条件
type ProductFilter struct {
	Query      string
	CategoryID string
	StateID    string
	SellerID   string
	Status     model.ProductStatus
	MinPrice   float64
	MaxPrice   float64
}

// ProductRepository 商品仓储接口
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Product, error)
	UpdateVersioned(ctx context.Context, id string, version int64, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter, offset, limit int) ([]*model.Product, error)
	ListIDs(ctx context.Context, filter ProductFilter) ([]string, error)
	CountSellingBySeller(ctx context.Context, sellerID string) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepository{db: db} }

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var res []*model.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&res).Error
	return res, err
}

// UpdateVersioned 乐观锁更新：只写给定列，version 不匹配时返回 0 行。
// 不整行 Save，避免把读到的旧 status/buyer_id 写回去。
func (r *productRepository) UpdateVersioned(ctx context.Context, id string, version int64, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND version = ?", id, version).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{}).Error
}

func applyProductFilter(q *gorm.DB, filter ProductFilter) *gorm.DB {
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("title LIKE ? OR author LIKE ? OR isbn LIKE ?", like, like, like)
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.StateID != "" {
		q = q.Where("state_id = ?", filter.StateID)
	}
	if filter.SellerID != "" {
		q = q.Where("seller_id = ?", filter.SellerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.MinPrice > 0 {
		q = q.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price <= ?", filter.MaxPrice)
	}
	return q
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter, offset, limit int) ([]*model.Product, error) {
	var res []*model.Product
	q := applyProductFilter(r.db.WithContext(ctx).Model(&model.Product{}), filter)
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

// ListIDs 仅取 ID 列表，供缓存层建索引
func (r *productRepository) ListIDs(ctx context.Context, filter ProductFilter) ([]string, error) {
	var ids []string
	q := applyProductFilter(r.db.WithContext(ctx).Model(&model.Product{}), filter)
	err := q.Order("created_at DESC").Pluck("id", &ids).Error
	return ids, err
}

func (r *productRepository) CountSellingBySeller(ctx context.Context, sellerID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("seller_id = ? AND status = ?", sellerID, model.ProductStatusSelling).
		Count(&cnt).Error
	return cnt, err
}
