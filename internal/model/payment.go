package model

import "time"

// PaymentStatus 支付状态
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// Payment 支付记录，与订单 1:1。与订单状态机相互独立，
// 仅共享 order_id 外键（已知缺口：订单 completed 时支付可能是 failed）。
type Payment struct {
	ID            string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID       string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"order_id"`
	PaymentMethod string        `gorm:"type:varchar(32);not null" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(16);index;not null;default:'pending'" json:"payment_status"`
	PaymentAmount float64       `gorm:"type:decimal(10,2);not null" json:"payment_amount"`
	TransactionID string        `gorm:"type:varchar(100)" json:"transaction_id"`
	// 网关原始响应，失败时落库便于排查
	GatewayResponse string     `gorm:"type:text" json:"-"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

// MarkCompleted 无条件置为 completed 并记录交易号。
// 源系统不校验先前状态（refunded 也能改回 completed），行为保留。
func (p *Payment) MarkCompleted(transactionID string, now time.Time) {
	p.PaymentStatus = PaymentStatusCompleted
	p.TransactionID = transactionID
	p.PaidAt = &now
}

// MarkFailed 无条件置为 failed 并保存网关响应
func (p *Payment) MarkFailed(gatewayResponse string) {
	p.PaymentStatus = PaymentStatusFailed
	p.GatewayResponse = gatewayResponse
}
