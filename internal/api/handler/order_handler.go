package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/validate"
	"github.com/d60-Lab/schoolbooks/pkg/response"
)

type createOrderRequest struct {
	ProductID       string `json:"product_id" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

// CreateOrder 下单
// @Summary 创建订单
// @Tags 订单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createOrderRequest true "订单信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	order, err := h.orderService.Create(c.Request.Context(), currentUserID(c), req.ProductID, req.ShippingAddress)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, order)
}

// GetOrder 订单详情（仅买卖双方）
// @Summary 订单详情
// @Tags 订单
// @Security BearerAuth
// @Param id path string true "订单ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders 我的订单列表
// @Summary 订单列表
// @Tags 订单
// @Security BearerAuth
// @Param role query string false "buyer 或 seller" default(buyer)
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	role := c.DefaultQuery("role", "buyer")
	list, err := h.orderService.ListForUser(c.Request.Context(), currentUserID(c), role, page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// transitionHandler 五个状态流转端点共用的壳
func (h *Handler) transitionHandler(c *gin.Context, fn func(ctx *gin.Context, userID, orderID string) (*model.Order, error)) {
	order, err := fn(c, currentUserID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// AcceptOrder 卖家接单
// @Summary 接单
// @Tags 订单
// @Security BearerAuth
// @Param id path string true "订单ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/orders/{id}/accept [post]
func (h *Handler) AcceptOrder(c *gin.Context) {
	h.transitionHandler(c, func(ctx *gin.Context, userID, orderID string) (*model.Order, error) {
		return h.orderService.Accept(ctx.Request.Context(), userID, orderID)
	})
}

// RejectOrder 卖家拒单，商品放回市场
// @Summary 拒单
// @Tags 订单
// @Security BearerAuth
// @Param id path string true "订单ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/orders/{id}/reject [post]
func (h *Handler) RejectOrder(c *gin.Context) {
	h.transitionHandler(c, func(ctx *gin.Context, userID, orderID string) (*model.Order, error) {
		return h.orderService.Reject(ctx.Request.Context(), userID, orderID)
	})
}

// ShipOrder 卖家发货
// @Summary 发货
// @Tags 订单
// @Security BearerAuth
// @Param id path string true "订单ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/orders/{id}/ship [post]
func (h *Handler) ShipOrder(c *gin.Context) {
	h.transitionHandler(c, func(ctx *gin.Context, userID, orderID string) (*model.Order, error) {
		return h.orderService.Ship(ctx.Request.Context(), userID, orderID)
	})
}

// DeliverOrder 标记送达（无前置状态要求）
// @Summary 标记送达
// @Tags 订单
// @Security BearerAuth
// @Param id path string true "订单ID"
// @Success 200 {object} response.Response
// @Router /api/v1/orders/{id}/delivered [post]
func (h *Handler) DeliverOrder(c *gin.Context) {
	h.transitionHandler(c, func(ctx *gin.Context, userID, orderID string) (*model.Order, error) {
		return h.orderService.MarkDelivered(ctx.Request.Context(), userID, orderID)
	})
}

// CompleteOrder 买家确认完成，商品标记已售
// @Summary 确认完成
// @Tags 订单
// @Security BearerAuth
// @Param id path string true "订单ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/orders/{id}/complete [post]
func (h *Handler) CompleteOrder(c *gin.Context) {
	h.transitionHandler(c, func(ctx *gin.Context, userID, orderID string) (*model.Order, error) {
		return h.orderService.Complete(ctx.Request.Context(), userID, orderID)
	})
}

// CancelOrder 买家撤单
// @Summary 撤单
// @Tags 订单
// @Security BearerAuth
// @Param id path string true "订单ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/orders/{id}/cancel [post]
func (h *Handler) CancelOrder(c *gin.Context) {
	h.transitionHandler(c, func(ctx *gin.Context, userID, orderID string) (*model.Order, error) {
		return h.orderService.Cancel(ctx.Request.Context(), userID, orderID)
	})
}
