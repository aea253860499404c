package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/model"
)

type SavedSearchRepository interface {
	Create(ctx context.Context, s *model.SavedSearch) error
	GetByID(ctx context.Context, id string) (*model.SavedSearch, error)
	ListByUser(ctx context.Context, userID string) ([]*model.SavedSearch, error)
	Update(ctx context.Context, s *model.SavedSearch) error
	Delete(ctx context.Context, userID, id string) error
}

type savedSearchRepository struct{ db *gorm.DB }

func NewSavedSearchRepository(db *gorm.DB) SavedSearchRepository {
	return &savedSearchRepository{db: db}
}

func (r *savedSearchRepository) Create(ctx context.Context, s *model.SavedSearch) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *savedSearchRepository) GetByID(ctx context.Context, id string) (*model.SavedSearch, error) {
	var s model.SavedSearch
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *savedSearchRepository) ListByUser(ctx context.Context, userID string) ([]*model.SavedSearch, error) {
	var res []*model.SavedSearch
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&res).Error
	return res, err
}

func (r *savedSearchRepository) Update(ctx context.Context, s *model.SavedSearch) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *savedSearchRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.SavedSearch{}).Error
}
