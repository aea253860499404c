package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/schoolbooks/pkg/response"
)

// ListCategories 分类字典
// @Summary 分类列表
// @Tags 字典
// @Success 200 {object} response.Response
// @Router /api/v1/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	list, err := h.taxonomy.ListCategories(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, list)
}

// ListCities 城市字典
// @Summary 城市列表
// @Tags 字典
// @Success 200 {object} response.Response
// @Router /api/v1/cities [get]
func (h *Handler) ListCities(c *gin.Context) {
	list, err := h.taxonomy.ListCities(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, list)
}

// ListStates 书况字典
// @Summary 书况列表
// @Tags 字典
// @Success 200 {object} response.Response
// @Router /api/v1/states [get]
func (h *Handler) ListStates(c *gin.Context) {
	list, err := h.taxonomy.ListStates(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, list)
}

// ListTiers 档位字典
// @Summary 档位列表
// @Tags 字典
// @Success 200 {object} response.Response
// @Router /api/v1/tiers [get]
func (h *Handler) ListTiers(c *gin.Context) {
	list, err := h.taxonomy.ListTiers(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, list)
}
