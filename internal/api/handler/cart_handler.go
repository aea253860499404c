package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/schoolbooks/internal/validate"
	"github.com/d60-Lab/schoolbooks/pkg/response"
)

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// AddToCart 加入购物车（幂等）
// @Summary 加入购物车
// @Tags 购物车
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body addItemRequest true "商品"
// @Success 200 {object} response.Response
// @Router /api/v1/carts [post]
func (h *Handler) AddToCart(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	if err := h.cartService.Add(c.Request.Context(), currentUserID(c), req.ProductID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// RemoveFromCart 移出购物车
// @Summary 移出购物车
// @Tags 购物车
// @Security BearerAuth
// @Param productID path string true "商品ID"
// @Success 200 {object} response.Response
// @Router /api/v1/carts/{productID} [delete]
func (h *Handler) RemoveFromCart(c *gin.Context) {
	if err := h.cartService.Remove(c.Request.Context(), currentUserID(c), c.Param("productID")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListCart 购物车内容
// @Summary 购物车列表
// @Tags 购物车
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/carts [get]
func (h *Handler) ListCart(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	list, err := h.cartService.List(c.Request.Context(), currentUserID(c), page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}
