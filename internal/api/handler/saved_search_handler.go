package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/schoolbooks/internal/service"
	"github.com/d60-Lab/schoolbooks/internal/validate"
	"github.com/d60-Lab/schoolbooks/pkg/response"
)

type savedSearchRequest struct {
	Query      string  `json:"query" binding:"max=255"`
	CategoryID string  `json:"category_id"`
	StateID    string  `json:"state_id"`
	MinPrice   float64 `json:"min_price" binding:"gte=0"`
	MaxPrice   float64 `json:"max_price" binding:"gte=0"`
}

func (r savedSearchRequest) toInput() service.SavedSearchInput {
	return service.SavedSearchInput{
		Query:      r.Query,
		CategoryID: r.CategoryID,
		StateID:    r.StateID,
		MinPrice:   r.MinPrice,
		MaxPrice:   r.MaxPrice,
	}
}

// CreateSavedSearch 保存搜索条件
// @Summary 保存搜索
// @Tags 搜索
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body savedSearchRequest true "搜索条件"
// @Success 201 {object} response.Response
// @Router /api/v1/saved-searches [post]
func (h *Handler) CreateSavedSearch(c *gin.Context) {
	var req savedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	s, err := h.searchService.Create(c.Request.Context(), currentUserID(c), req.toInput())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, s)
}

// ListSavedSearches 我的已存搜索
// @Summary 已存搜索列表
// @Tags 搜索
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/saved-searches [get]
func (h *Handler) ListSavedSearches(c *gin.Context) {
	list, err := h.searchService.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, list)
}

// UpdateSavedSearch 更新搜索条件
// @Summary 更新已存搜索
// @Tags 搜索
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "搜索ID"
// @Param request body savedSearchRequest true "搜索条件"
// @Success 200 {object} response.Response
// @Router /api/v1/saved-searches/{id} [put]
func (h *Handler) UpdateSavedSearch(c *gin.Context) {
	var req savedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	s, err := h.searchService.Update(c.Request.Context(), currentUserID(c), c.Param("id"), req.toInput())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, s)
}

// DeleteSavedSearch 删除已存搜索
// @Summary 删除已存搜索
// @Tags 搜索
// @Security BearerAuth
// @Param id path string true "搜索ID"
// @Success 200 {object} response.Response
// @Router /api/v1/saved-searches/{id} [delete]
func (h *Handler) DeleteSavedSearch(c *gin.Context) {
	if err := h.searchService.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
