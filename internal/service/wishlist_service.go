package service

import (
	"context"

	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
)

// WishlistService 心愿单。与购物车不同，已售商品也允许留在心愿单里。
type WishlistService interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string, page, pageSize int) ([]*model.Product, error)
}

type wishlistService struct {
	wishlist repository.WishlistRepository
	products repository.ProductRepository
}

func NewWishlistService(wishlist repository.WishlistRepository, products repository.ProductRepository) WishlistService {
	return &wishlistService{wishlist: wishlist, products: products}
}

func (s *wishlistService) Add(ctx context.Context, userID, productID string) error {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.SellerID == userID {
		return ErrOwnProduct
	}
	return s.wishlist.Add(ctx, userID, productID)
}

func (s *wishlistService) Remove(ctx context.Context, userID, productID string) error {
	return s.wishlist.Remove(ctx, userID, productID)
}

func (s *wishlistService) List(ctx context.Context, userID string, page, pageSize int) ([]*model.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	items, err := s.wishlist.ListByUser(ctx, userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}
	return s.products.GetByIDs(ctx, ids)
}
