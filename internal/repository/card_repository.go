package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/model"
)

type CardRepository interface {
	Create(ctx context.Context, card *model.Card) error
	GetByID(ctx context.Context, id string) (*model.Card, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Card, error)
	Delete(ctx context.Context, userID, id string) error
}

type cardRepository struct{ db *gorm.DB }

func NewCardRepository(db *gorm.DB) CardRepository { return &cardRepository{db: db} }

func (r *cardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *cardRepository) GetByID(ctx context.Context, id string) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) ListByUser(ctx context.Context, userID string) ([]*model.Card, error) {
	var res []*model.Card
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&res).Error
	return res, err
}

func (r *cardRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Card{}).Error
}
