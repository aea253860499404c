package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
	"github.com/d60-Lab/schoolbooks/pkg/logger"
)

var (
	ErrPaymentExists   = errors.New("order already has a payment")
	ErrPaymentNotFound = errors.New("payment not found")
)

// PaymentService 支付记录。与订单状态机相互独立：标记完成/失败
// 不校验订单状态，只在两边明显不一致时记一条警告日志。
type PaymentService interface {
	Create(ctx context.Context, userID, orderID, method string) (*model.Payment, error)
	GetByOrder(ctx context.Context, userID, orderID string) (*model.Payment, error)
	MarkCompleted(ctx context.Context, userID, paymentID, transactionID string) (*model.Payment, error)
	MarkFailed(ctx context.Context, userID, paymentID, gatewayResponse string) (*model.Payment, error)
}

type paymentService struct {
	payments repository.PaymentRepository
	orders   repository.OrderRepository
}

func NewPaymentService(payments repository.PaymentRepository, orders repository.OrderRepository) PaymentService {
	return &paymentService{payments: payments, orders: orders}
}

func (s *paymentService) Create(ctx context.Context, userID, orderID, method string) (*model.Payment, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.BuyerID != userID {
		return nil, ErrNotOrderBuyer
	}
	if _, err := s.payments.GetByOrderID(ctx, orderID); err == nil {
		return nil, ErrPaymentExists
	}

	p := &model.Payment{
		ID:            uuid.New().String(),
		OrderID:       orderID,
		PaymentMethod: method,
		PaymentStatus: model.PaymentStatusPending,
		PaymentAmount: order.Amount,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *paymentService) GetByOrder(ctx context.Context, userID, orderID string) (*model.Payment, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.BuyerID != userID && order.SellerID != userID {
		return nil, ErrOrderNotFound
	}
	p, err := s.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

// MarkCompleted 无条件置为完成（源系统行为：不校验先前状态）
func (s *paymentService) MarkCompleted(ctx context.Context, userID, paymentID, transactionID string) (*model.Payment, error) {
	p, order, err := s.getOwned(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}
	p.MarkCompleted(transactionID, time.Now())
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}
	if order.OrderStatus == model.OrderStatusRejected || order.OrderStatus == model.OrderStatusCancelled {
		logger.L().Warn("payment completed on a dead order",
			zap.String("payment_id", p.ID),
			zap.String("order_id", order.ID),
			zap.String("order_status", string(order.OrderStatus)))
	}
	return p, nil
}

// MarkFailed 无条件置为失败并保存网关响应
func (s *paymentService) MarkFailed(ctx context.Context, userID, paymentID, gatewayResponse string) (*model.Payment, error) {
	p, order, err := s.getOwned(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}
	p.MarkFailed(gatewayResponse)
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}
	if order.OrderStatus == model.OrderStatusCompleted {
		logger.L().Warn("payment failed on a completed order",
			zap.String("payment_id", p.ID),
			zap.String("order_id", order.ID))
	}
	return p, nil
}

func (s *paymentService) getOwned(ctx context.Context, userID, paymentID string) (*model.Payment, *model.Order, error) {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrPaymentNotFound
		}
		return nil, nil, err
	}
	order, err := s.orders.GetByID(ctx, p.OrderID)
	if err != nil {
		return nil, nil, err
	}
	if order.BuyerID != userID && order.SellerID != userID {
		return nil, nil, ErrPaymentNotFound
	}
	return p, order, nil
}
