package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/schoolbooks/internal/model"
)

type WishlistRepository interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.WishlistItem, error)
}

type wishlistRepository struct{ db *gorm.DB }

func NewWishlistRepository(db *gorm.DB) WishlistRepository { return &wishlistRepository{db: db} }

func (r *wishlistRepository) Add(ctx context.Context, userID, productID string) error {
	item := &model.WishlistItem{ID: uuid.New().String(), UserID: userID, ProductID: productID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(item).Error
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WishlistItem{}).Error
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.WishlistItem, error) {
	var res []*model.WishlistItem
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}
