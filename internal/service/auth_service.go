package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/schoolbooks/internal/auth"
	"github.com/d60-Lab/schoolbooks/internal/hibp"
	"github.com/d60-Lab/schoolbooks/internal/mailer"
	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
	"github.com/d60-Lab/schoolbooks/internal/validate"
	"github.com/d60-Lab/schoolbooks/pkg/logger"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBreachedPassword   = errors.New("password appears in known breaches")
	ErrBadEmailDomain     = errors.New("email domain has an unknown top-level domain")
)

// RegisterInput 注册参数（binding 校验在 handler 层完成）
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	CityID   string
}

// AuthService 注册/登录
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	users    repository.UserRepository
	taxonomy repository.TaxonomyRepository
	tokens   *auth.TokenManager
	breach   *hibp.Service
	mail     *mailer.Mailer
	cache    *redis.Client
}

func NewAuthService(users repository.UserRepository, taxonomy repository.TaxonomyRepository,
	tokens *auth.TokenManager, breach *hibp.Service, mail *mailer.Mailer, cache *redis.Client) AuthService {
	return &authService{users: users, taxonomy: taxonomy, tokens: tokens, breach: breach, mail: mail, cache: cache}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	if !validate.EmailTLD(ctx, s.cache, in.Email) {
		return nil, "", ErrBadEmailDomain
	}

	if s.breach != nil {
		safe, err := s.breach.CheckPassword(ctx, in.Password)
		if err != nil {
			// 泄露库不可用不阻塞注册
			logger.L().Warn("breach check unavailable", zap.Error(err))
		} else if !safe {
			return nil, "", ErrBreachedPassword
		}
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		ID:       uuid.New().String(),
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: string(hash),
		CityID:   in.CityID,
	}
	if tier, err := s.taxonomy.DefaultTier(ctx); err == nil {
		user.TierID = tier.ID
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	if s.mail != nil {
		// 欢迎邮件 best-effort，不影响注册结果
		go func(email, name string) {
			if err := s.mail.SendWelcome(email, name); err != nil {
				logger.L().Warn("welcome mail failed", zap.String("email", email), zap.Error(err))
			}
		}(user.Email, user.Name)
	}

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
