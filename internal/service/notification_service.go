package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/schoolbooks/internal/broadcast"
	"github.com/d60-Lab/schoolbooks/internal/mailer"
	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
	"github.com/d60-Lab/schoolbooks/internal/sms"
	"github.com/d60-Lab/schoolbooks/pkg/logger"
)

// NotificationService 站内通知：落库 + 实时广播。
// fire-and-forget：重复调用产生重复通知，不去重、不确认送达。
type NotificationService interface {
	CreateOrderNotification(ctx context.Context, order *model.Order, typ model.NotificationType, userID, message string) error

	NotifyOrderCreated(ctx context.Context, order *model.Order)
	NotifyOrderAccepted(ctx context.Context, order *model.Order)
	NotifyOrderRejected(ctx context.Context, order *model.Order)
	NotifyOrderShipped(ctx context.Context, order *model.Order)
	NotifyOrderDelivered(ctx context.Context, order *model.Order)
	NotifyOrderCompleted(ctx context.Context, order *model.Order)

	ListForUser(ctx context.Context, userID string, page, pageSize int) ([]*model.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	rdb           *redis.Client
	// 短信/邮件通道可为 nil（网关未配置时只留站内通知）
	sms  *sms.Client
	mail *mailer.Mailer
}

func NewNotificationService(notifications repository.NotificationRepository,
	users repository.UserRepository, rdb *redis.Client, smsClient *sms.Client, mail *mailer.Mailer) NotificationService {
	return &notificationService{notifications: notifications, users: users, rdb: rdb, sms: smsClient, mail: mail}
}

// CreateOrderNotification 先落库，再向 user.{userID} 私有频道广播
func (s *notificationService) CreateOrderNotification(ctx context.Context, order *model.Order, typ model.NotificationType, userID, message string) error {
	n := &model.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Message: message,
		Type:    typ,
		OrderID: &order.ID,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return err
	}
	ev := broadcast.Event{Message: message, Type: string(typ), Timestamp: time.Now()}
	if err := broadcast.Publish(ctx, s.rdb, userID, ev); err != nil {
		// 广播失败不回滚通知，实时性是尽力而为
		logger.L().Warn("notification broadcast failed",
			zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}

// 以下封装固定话术与接收方：created/completed 通知卖家，其余通知买家。

func (s *notificationService) NotifyOrderCreated(ctx context.Context, order *model.Order) {
	msg := fmt.Sprintf("You have a new order for your book (order %s).", order.ID)
	s.fire(ctx, order, model.NotificationOrderCreated, order.SellerID, msg)
}

func (s *notificationService) NotifyOrderAccepted(ctx context.Context, order *model.Order) {
	msg := fmt.Sprintf("Your order %s was accepted by the seller and is being prepared.", order.ID)
	s.fire(ctx, order, model.NotificationOrderAccepted, order.BuyerID, msg)
}

func (s *notificationService) NotifyOrderRejected(ctx context.Context, order *model.Order) {
	msg := fmt.Sprintf("Your order %s was rejected by the seller.", order.ID)
	s.fire(ctx, order, model.NotificationOrderRejected, order.BuyerID, msg)
}

func (s *notificationService) NotifyOrderShipped(ctx context.Context, order *model.Order) {
	msg := fmt.Sprintf("Your order %s has been shipped.", order.ID)
	s.fire(ctx, order, model.NotificationOrderShipped, order.BuyerID, msg)
}

func (s *notificationService) NotifyOrderDelivered(ctx context.Context, order *model.Order) {
	msg := fmt.Sprintf("Your order %s was delivered. Confirm it to complete the purchase.", order.ID)
	s.fire(ctx, order, model.NotificationOrderDelivered, order.BuyerID, msg)
}

func (s *notificationService) NotifyOrderCompleted(ctx context.Context, order *model.Order) {
	msg := fmt.Sprintf("Order %s is complete. The book is now marked as sold.", order.ID)
	s.fire(ctx, order, model.NotificationOrderCompleted, order.SellerID, msg)
}

func (s *notificationService) fire(ctx context.Context, order *model.Order, typ model.NotificationType, userID, msg string) {
	if err := s.CreateOrderNotification(ctx, order, typ, userID, msg); err != nil {
		logger.L().Warn("order notification failed",
			zap.String("order_id", order.ID),
			zap.String("type", string(typ)),
			zap.Error(err))
		return
	}
	s.deliverExternal(ctx, order.ID, userID, msg)
}

// deliverExternal 短信/邮件兜底通道，失败只记日志
func (s *notificationService) deliverExternal(ctx context.Context, orderID, userID, msg string) {
	if s.sms == nil && s.mail == nil {
		return
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return
	}
	if s.sms != nil && user.Phone != "" {
		if err := s.sms.Send(ctx, user.Phone, msg); err != nil {
			logger.L().Warn("sms delivery failed",
				zap.String("user_id", userID), zap.Error(err))
		}
	}
	if s.mail != nil && user.Email != "" {
		if err := s.mail.SendOrderMail(user.Email, orderID, msg); err != nil {
			logger.L().Warn("order mail delivery failed",
				zap.String("user_id", userID), zap.Error(err))
		}
	}
}

func (s *notificationService) ListForUser(ctx context.Context, userID string, page, pageSize int) ([]*model.Notification, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return s.notifications.ListByUser(ctx, userID, (page-1)*pageSize, pageSize)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.notifications.MarkRead(ctx, userID, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notifications.MarkAllRead(ctx, userID)
}
