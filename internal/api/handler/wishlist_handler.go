package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/schoolbooks/internal/validate"
	"github.com/d60-Lab/schoolbooks/pkg/response"
)

// AddToWishlist 加入心愿单（幂等）
// @Summary 加入心愿单
// @Tags 心愿单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body addItemRequest true "商品"
// @Success 200 {object} response.Response
// @Router /api/v1/wishlist [post]
func (h *Handler) AddToWishlist(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	if err := h.wishlistService.Add(c.Request.Context(), currentUserID(c), req.ProductID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// RemoveFromWishlist 移出心愿单
// @Summary 移出心愿单
// @Tags 心愿单
// @Security BearerAuth
// @Param productID path string true "商品ID"
// @Success 200 {object} response.Response
// @Router /api/v1/wishlist/{productID} [delete]
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	if err := h.wishlistService.Remove(c.Request.Context(), currentUserID(c), c.Param("productID")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListWishlist 心愿单内容
// @Summary 心愿单列表
// @Tags 心愿单
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/wishlist [get]
func (h *Handler) ListWishlist(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	list, err := h.wishlistService.List(c.Request.Context(), currentUserID(c), page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}
