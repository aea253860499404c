package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/schoolbooks/internal/validate"
	"github.com/d60-Lab/schoolbooks/pkg/response"
)

type createReviewRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// CreateReview 评价卖家（仅完成订单的买家，一单一评）
// @Summary 创建评价
// @Tags 评价
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createReviewRequest true "评价"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/reviews [post]
func (h *Handler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	review, err := h.reviewService.Create(c.Request.Context(), currentUserID(c), req.OrderID, req.Rating, req.Comment)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, review)
}

// ListSellerReviews 卖家的评价与均分
// @Summary 卖家评价列表
// @Tags 评价
// @Param id path string true "卖家ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/sellers/{id}/reviews [get]
func (h *Handler) ListSellerReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	res, err := h.reviewService.ListBySeller(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, res)
}
