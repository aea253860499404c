package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
)

var (
	ErrOrderNotCompleted = errors.New("order is not completed yet")
	ErrAlreadyReviewed   = errors.New("order already has a review")
	ErrBadRating         = errors.New("rating must be between 1 and 5")
)

// SellerReviews 卖家评价列表 + 均分
type SellerReviews struct {
	Average float64         `json:"average"`
	Reviews []*model.Review `json:"reviews"`
}

// ReviewService 评价：只有完成订单的买家能评，一单一评
type ReviewService interface {
	Create(ctx context.Context, reviewerID, orderID string, rating int, comment string) (*model.Review, error)
	ListBySeller(ctx context.Context, sellerID string, page, pageSize int) (*SellerReviews, error)
}

type reviewService struct {
	reviews repository.ReviewRepository
	orders  repository.OrderRepository
}

func NewReviewService(reviews repository.ReviewRepository, orders repository.OrderRepository) ReviewService {
	return &reviewService{reviews: reviews, orders: orders}
}

func (s *reviewService) Create(ctx context.Context, reviewerID, orderID string, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrBadRating
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.BuyerID != reviewerID {
		return nil, ErrNotOrderBuyer
	}
	if order.OrderStatus != model.OrderStatusCompleted {
		return nil, ErrOrderNotCompleted
	}
	if exists, err := s.reviews.ExistsByOrder(ctx, orderID); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &model.Review{
		ID:         uuid.New().String(),
		ReviewerID: reviewerID,
		SellerID:   order.SellerID,
		OrderID:    orderID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListBySeller(ctx context.Context, sellerID string, page, pageSize int) (*SellerReviews, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	list, err := s.reviews.ListBySeller(ctx, sellerID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	avg, err := s.reviews.AverageRating(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return &SellerReviews{Average: avg, Reviews: list}, nil
}
