package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/model"
)

// TaxonomyRepository 基础字典数据（城市/书况/分类/档位），只读
type TaxonomyRepository interface {
	ListCities(ctx context.Context) ([]*model.City, error)
	ListStates(ctx context.Context) ([]*model.State, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	ListTiers(ctx context.Context) ([]*model.Tier, error)
	GetTier(ctx context.Context, id string) (*model.Tier, error)
	// DefaultTier 注册用户的默认档位（listing_limit 最小的那档）
	DefaultTier(ctx context.Context) (*model.Tier, error)
}

type taxonomyRepository struct{ db *gorm.DB }

func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository { return &taxonomyRepository{db: db} }

func (r *taxonomyRepository) ListCities(ctx context.Context) ([]*model.City, error) {
	var res []*model.City
	err := r.db.WithContext(ctx).Order("name").Find(&res).Error
	return res, err
}

func (r *taxonomyRepository) ListStates(ctx context.Context) ([]*model.State, error) {
	var res []*model.State
	err := r.db.WithContext(ctx).Order("rank").Find(&res).Error
	return res, err
}

func (r *taxonomyRepository) ListCategories(ctx context.Context) ([]*model.Category, error) {
	var res []*model.Category
	err := r.db.WithContext(ctx).Order("name").Find(&res).Error
	return res, err
}

func (r *taxonomyRepository) ListTiers(ctx context.Context) ([]*model.Tier, error) {
	var res []*model.Tier
	err := r.db.WithContext(ctx).Order("listing_limit").Find(&res).Error
	return res, err
}

func (r *taxonomyRepository) GetTier(ctx context.Context, id string) (*model.Tier, error) {
	var t model.Tier
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taxonomyRepository) DefaultTier(ctx context.Context) (*model.Tier, error) {
	var t model.Tier
	if err := r.db.WithContext(ctx).Order("listing_limit").First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
