package service

import (
	"context"

	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
)

// CartService 购物车：加购幂等，自家商品与非在售商品不可加
type CartService interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string, page, pageSize int) ([]*model.Product, error)
}

type cartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) CartService {
	return &cartService{carts: carts, products: products}
}

func (s *cartService) Add(ctx context.Context, userID, productID string) error {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.SellerID == userID {
		return ErrOwnProduct
	}
	if p.Status != model.ProductStatusSelling {
		return ErrProductNotOnSale
	}
	return s.carts.Add(ctx, userID, productID)
}

func (s *cartService) Remove(ctx context.Context, userID, productID string) error {
	return s.carts.Remove(ctx, userID, productID)
}

func (s *cartService) List(ctx context.Context, userID string, page, pageSize int) ([]*model.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	items, err := s.carts.ListByUser(ctx, userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}
	return s.products.GetByIDs(ctx, ids)
}
