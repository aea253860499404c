package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/broadcast"
	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
	"github.com/d60-Lab/schoolbooks/internal/service"
	"github.com/d60-Lab/schoolbooks/pkg/response"
)

// Handler 聚合所有资源的 HTTP 处理器
type Handler struct {
	authService     service.AuthService
	userService     service.UserService
	productService  service.ProductService
	orderService    service.OrderService
	paymentService  service.PaymentService
	cartService     service.CartService
	wishlistService service.WishlistService
	notifService    service.NotificationService
	reviewService   service.ReviewService
	cardService     service.CardService
	searchService   service.SavedSearchService
	taxonomy        repository.TaxonomyRepository
	hub             *broadcast.Hub
}

func New(
	authService service.AuthService,
	userService service.UserService,
	productService service.ProductService,
	orderService service.OrderService,
	paymentService service.PaymentService,
	cartService service.CartService,
	wishlistService service.WishlistService,
	notifService service.NotificationService,
	reviewService service.ReviewService,
	cardService service.CardService,
	searchService service.SavedSearchService,
	taxonomy repository.TaxonomyRepository,
	hub *broadcast.Hub,
) *Handler {
	return &Handler{
		authService:     authService,
		userService:     userService,
		productService:  productService,
		orderService:    orderService,
		paymentService:  paymentService,
		cartService:     cartService,
		wishlistService: wishlistService,
		notifService:    notifService,
		reviewService:   reviewService,
		cardService:     cardService,
		searchService:   searchService,
		taxonomy:        taxonomy,
		hub:             hub,
	}
}

// currentUserID 取 auth 中间件写入的用户ID
func currentUserID(c *gin.Context) string {
	return c.GetString("userID")
}

// writeServiceError 业务错误到 HTTP 状态码的统一映射
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrCardNotFound),
		errors.Is(err, service.ErrSearchNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, service.ErrConcurrentUpdate),
		errors.Is(err, service.ErrPaymentExists),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrProductInOrder):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrNotOrderSeller),
		errors.Is(err, service.ErrNotOrderBuyer),
		errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrOwnProduct),
		errors.Is(err, service.ErrProductNotOnSale),
		errors.Is(err, service.ErrListingLimit),
		errors.Is(err, service.ErrOrderNotCompleted),
		errors.Is(err, service.ErrBadRating),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrBreachedPassword),
		errors.Is(err, service.ErrBadEmailDomain):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
