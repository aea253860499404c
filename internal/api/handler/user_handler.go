package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/schoolbooks/internal/service"
	"github.com/d60-Lab/schoolbooks/internal/validate"
	"github.com/d60-Lab/schoolbooks/pkg/response"
)

type updateProfileRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,phone"`
	AvatarURL *string `json:"avatar_url"`
	CityID    *string `json:"city_id"`
}

// Me 当前用户资料
// @Summary 查询当前用户
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/users/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateMe 更新当前用户资料
// @Summary 更新当前用户
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body updateProfileRequest true "资料"
// @Success 200 {object} response.Response
// @Router /api/v1/users/me [put]
func (h *Handler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	user, err := h.userService.Update(c.Request.Context(), currentUserID(c), service.UserUpdateInput{
		Name:      req.Name,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
		CityID:    req.CityID,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, user)
}
