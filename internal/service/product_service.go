package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/d60-Lab/schoolbooks/internal/cache"
	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
)

var (
	ErrNotOwner         = errors.New("product does not belong to this user")
	ErrListingLimit     = errors.New("tier listing limit reached")
	ErrProductInOrder   = errors.New("product has an active order")
	ErrProductNotOnSale = errors.New("product is not for sale")
)

// ProductCreateInput 发布商品参数
type ProductCreateInput struct {
	Title       string
	Author      string
	ISBN        string
	Description string
	Price       float64
	Images      string
	CategoryID  string
	StateID     string
}

type ProductUpdateInput struct {
	Title       *string
	Author      *string
	Description *string
	Price       *float64
	Images      *string
	CategoryID  *string
	StateID     *string
}

type ProductService interface {
	Create(ctx context.Context, sellerID string, in ProductCreateInput) (*model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Update(ctx context.Context, sellerID, id string, in ProductUpdateInput) (*model.Product, error)
	Delete(ctx context.Context, sellerID, id string) error
	List(ctx context.Context, filter repository.ProductFilter, page, pageSize int) ([]*model.Product, error)
}

type productService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
	taxonomy repository.TaxonomyRepository
	listings *cache.ListingCache
}

func NewProductService(products repository.ProductRepository, orders repository.OrderRepository,
	users repository.UserRepository, taxonomy repository.TaxonomyRepository, listings *cache.ListingCache) ProductService {
	return &productService{products: products, orders: orders, users: users, taxonomy: taxonomy, listings: listings}
}

func (s *productService) Create(ctx context.Context, sellerID string, in ProductCreateInput) (*model.Product, error) {
	// 档位限制：在售数量达到上限则拒绝
	seller, err := s.users.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if seller.TierID != "" {
		tier, err := s.taxonomy.GetTier(ctx, seller.TierID)
		if err == nil {
			cnt, err := s.products.CountSellingBySeller(ctx, sellerID)
			if err != nil {
				return nil, err
			}
			if cnt >= int64(tier.ListingLimit) {
				return nil, ErrListingLimit
			}
		}
	}

	p := &model.Product{
		ID:          uuid.New().String(),
		SellerID:    sellerID,
		Title:       in.Title,
		Author:      in.Author,
		ISBN:        in.ISBN,
		Description: in.Description,
		Price:       in.Price,
		Images:      in.Images,
		Status:      model.ProductStatusSelling,
		CategoryID:  in.CategoryID,
		StateID:     in.StateID,
		Version:     1,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	if s.listings != nil {
		s.listings.Invalidate(ctx)
	}
	return p, nil
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *productService) Update(ctx context.Context, sellerID, id string, in ProductUpdateInput) (*model.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.SellerID != sellerID {
		return nil, ErrNotOwner
	}
	// 只写被编辑的列，带 version 乐观锁：编辑撞上并发的成交/放回
	// 时整个更新失败，而不是把旧的 status/buyer_id 写回去。
	fields := map[string]interface{}{}
	if in.Title != nil {
		p.Title = *in.Title
		fields["title"] = *in.Title
	}
	if in.Author != nil {
		p.Author = *in.Author
		fields["author"] = *in.Author
	}
	if in.Description != nil {
		p.Description = *in.Description
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
		fields["price"] = *in.Price
	}
	if in.Images != nil {
		p.Images = *in.Images
		fields["images"] = *in.Images
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
		fields["category_id"] = *in.CategoryID
	}
	if in.StateID != nil {
		p.StateID = *in.StateID
		fields["state_id"] = *in.StateID
	}
	if len(fields) == 0 {
		return p, nil
	}
	fields["version"] = p.Version + 1
	rows, err := s.products.UpdateVersioned(ctx, p.ID, p.Version, fields)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrConcurrentUpdate
	}
	p.Version++
	if s.listings != nil {
		s.listings.Invalidate(ctx)
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, sellerID, id string) error {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.SellerID != sellerID {
		return ErrNotOwner
	}
	active, err := s.orders.ExistsActiveByProduct(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return ErrProductInOrder
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	if s.listings != nil {
		s.listings.Invalidate(ctx)
	}
	return nil
}

func (s *productService) List(ctx context.Context, filter repository.ProductFilter, page, pageSize int) ([]*model.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if s.listings != nil {
		return s.listings.List(ctx, filter, page, pageSize)
	}
	return s.products.List(ctx, filter, (page-1)*pageSize, pageSize)
}
