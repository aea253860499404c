package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
)

var ErrCardNotFound = errors.New("card not found")

// CardCreateInput 保存银行卡摘要（不含完整卡号）
type CardCreateInput struct {
	Brand       string
	Last4       string
	ExpiryMonth int
	ExpiryYear  int
	HolderName  string
}

type CardService interface {
	Create(ctx context.Context, userID string, in CardCreateInput) (*model.Card, error)
	List(ctx context.Context, userID string) ([]*model.Card, error)
	Delete(ctx context.Context, userID, id string) error
}

type cardService struct {
	cards repository.CardRepository
}

func NewCardService(cards repository.CardRepository) CardService {
	return &cardService{cards: cards}
}

func (s *cardService) Create(ctx context.Context, userID string, in CardCreateInput) (*model.Card, error) {
	card := &model.Card{
		ID:          uuid.New().String(),
		UserID:      userID,
		Brand:       in.Brand,
		Last4:       in.Last4,
		ExpiryMonth: in.ExpiryMonth,
		ExpiryYear:  in.ExpiryYear,
		HolderName:  in.HolderName,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *cardService) List(ctx context.Context, userID string) ([]*model.Card, error) {
	return s.cards.ListByUser(ctx, userID)
}

func (s *cardService) Delete(ctx context.Context, userID, id string) error {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCardNotFound
		}
		return err
	}
	if card.UserID != userID {
		return ErrCardNotFound
	}
	return s.cards.Delete(ctx, userID, id)
}
