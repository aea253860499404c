package service

import (
	"context"

	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
)

// UserUpdateInput 可更新的个人资料字段，nil 表示不改
type UserUpdateInput struct {
	Name      *string
	Phone     *string
	AvatarURL *string
	CityID    *string
}

type UserService interface {
	Get(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, in UserUpdateInput) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) Update(ctx context.Context, id string, in UserUpdateInput) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}
	if in.CityID != nil {
		user.CityID = *in.CityID
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
