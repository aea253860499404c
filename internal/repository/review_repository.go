package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ExistsByOrder(ctx context.Context, orderID string) (bool, error)
	ListBySeller(ctx context.Context, sellerID string, offset, limit int) ([]*model.Review, error)
	AverageRating(ctx context.Context, sellerID string) (float64, error)
}

type reviewRepository struct{ db *gorm.DB }

func NewReviewRepository(db *gorm.DB) ReviewRepository { return &reviewRepository{db: db} }

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) ExistsByOrder(ctx context.Context, orderID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("order_id = ?", orderID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *reviewRepository) ListBySeller(ctx context.Context, sellerID string, offset, limit int) ([]*model.Review, error) {
	var res []*model.Review
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *reviewRepository) AverageRating(ctx context.Context, sellerID string) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("seller_id = ?", sellerID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
