package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/schoolbooks/internal/service"
	"github.com/d60-Lab/schoolbooks/internal/validate"
	"github.com/d60-Lab/schoolbooks/pkg/response"
)

type createCardRequest struct {
	Brand       string `json:"brand" binding:"required,oneof=visa mastercard amex"`
	Last4       string `json:"last4" binding:"required,len=4,numeric"`
	ExpiryMonth int    `json:"expiry_month" binding:"required,min=1,max=12"`
	ExpiryYear  int    `json:"expiry_year" binding:"required,min=2024"`
	HolderName  string `json:"holder_name" binding:"max=100"`
}

// CreateCard 保存银行卡摘要
// @Summary 添加银行卡
// @Tags 银行卡
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createCardRequest true "卡信息（不含卡号）"
// @Success 201 {object} response.Response
// @Router /api/v1/cards [post]
func (h *Handler) CreateCard(c *gin.Context) {
	var req createCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	card, err := h.cardService.Create(c.Request.Context(), currentUserID(c), service.CardCreateInput{
		Brand:       req.Brand,
		Last4:       req.Last4,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		HolderName:  req.HolderName,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, card)
}

// ListCards 我的银行卡
// @Summary 银行卡列表
// @Tags 银行卡
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/cards [get]
func (h *Handler) ListCards(c *gin.Context) {
	cards, err := h.cardService.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, cards)
}

// DeleteCard 删除银行卡
// @Summary 删除银行卡
// @Tags 银行卡
// @Security BearerAuth
// @Param id path string true "卡ID"
// @Success 200 {object} response.Response
// @Router /api/v1/cards/{id} [delete]
func (h *Handler) DeleteCard(c *gin.Context) {
	if err := h.cardService.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
