package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/schoolbooks/internal/validate"
	"github.com/d60-Lab/schoolbooks/pkg/response"
)

type createPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=card cash transfer"`
}

type completePaymentRequest struct {
	TransactionID string `json:"transaction_id"`
}

type failPaymentRequest struct {
	GatewayResponse string `json:"gateway_response"`
}

// CreatePayment 为订单创建支付记录（买家）
// @Summary 创建支付
// @Tags 支付
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "订单ID"
// @Param request body createPaymentRequest true "支付方式"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/orders/{id}/payments [post]
func (h *Handler) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	p, err := h.paymentService.Create(c.Request.Context(), currentUserID(c), c.Param("id"), req.PaymentMethod)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, p)
}

// GetOrderPayment 查询订单的支付记录
// @Summary 查询支付
// @Tags 支付
// @Security BearerAuth
// @Param id path string true "订单ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/orders/{id}/payments [get]
func (h *Handler) GetOrderPayment(c *gin.Context) {
	p, err := h.paymentService.GetByOrder(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, p)
}

// CompletePayment 标记支付完成（无条件，见支付模型说明）
// @Summary 标记支付完成
// @Tags 支付
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "支付ID"
// @Param request body completePaymentRequest true "交易号"
// @Success 200 {object} response.Response
// @Router /api/v1/payments/{id}/complete [post]
func (h *Handler) CompletePayment(c *gin.Context) {
	var req completePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	p, err := h.paymentService.MarkCompleted(c.Request.Context(), currentUserID(c), c.Param("id"), req.TransactionID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, p)
}

// FailPayment 标记支付失败
// @Summary 标记支付失败
// @Tags 支付
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "支付ID"
// @Param request body failPaymentRequest true "网关响应"
// @Success 200 {object} response.Response
// @Router /api/v1/payments/{id}/fail [post]
func (h *Handler) FailPayment(c *gin.Context) {
	var req failPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	p, err := h.paymentService.MarkFailed(c.Request.Context(), currentUserID(c), c.Param("id"), req.GatewayResponse)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, p)
}
