package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
)

var ErrSearchNotFound = errors.New("saved search not found")

type SavedSearchInput struct {
	Query      string
	CategoryID string
	StateID    string
	MinPrice   float64
	MaxPrice   float64
}

type SavedSearchService interface {
	Create(ctx context.Context, userID string, in SavedSearchInput) (*model.SavedSearch, error)
	List(ctx context.Context, userID string) ([]*model.SavedSearch, error)
	Update(ctx context.Context, userID, id string, in SavedSearchInput) (*model.SavedSearch, error)
	Delete(ctx context.Context, userID, id string) error
}

type savedSearchService struct {
	searches repository.SavedSearchRepository
}

func NewSavedSearchService(searches repository.SavedSearchRepository) SavedSearchService {
	return &savedSearchService{searches: searches}
}

func (s *savedSearchService) Create(ctx context.Context, userID string, in SavedSearchInput) (*model.SavedSearch, error) {
	search := &model.SavedSearch{
		ID:         uuid.New().String(),
		UserID:     userID,
		Query:      in.Query,
		CategoryID: in.CategoryID,
		StateID:    in.StateID,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
	}
	if err := s.searches.Create(ctx, search); err != nil {
		return nil, err
	}
	return search, nil
}

func (s *savedSearchService) List(ctx context.Context, userID string) ([]*model.SavedSearch, error) {
	return s.searches.ListByUser(ctx, userID)
}

func (s *savedSearchService) Update(ctx context.Context, userID, id string, in SavedSearchInput) (*model.SavedSearch, error) {
	search, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	search.Query = in.Query
	search.CategoryID = in.CategoryID
	search.StateID = in.StateID
	search.MinPrice = in.MinPrice
	search.MaxPrice = in.MaxPrice
	if err := s.searches.Update(ctx, search); err != nil {
		return nil, err
	}
	return search, nil
}

func (s *savedSearchService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.searches.Delete(ctx, userID, id)
}

func (s *savedSearchService) getOwned(ctx context.Context, userID, id string) (*model.SavedSearch, error) {
	search, err := s.searches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSearchNotFound
		}
		return nil, err
	}
	if search.UserID != userID {
		return nil, ErrSearchNotFound
	}
	return search, nil
}
