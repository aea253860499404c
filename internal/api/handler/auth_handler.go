package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/schoolbooks/internal/service"
	"github.com/d60-Lab/schoolbooks/internal/validate"
	"github.com/d60-Lab/schoolbooks/pkg/response"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,phone"`
	Password string `json:"password" binding:"required,password"`
	CityID   string `json:"city_id"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 注册
// @Summary 用户注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	user, token, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		CityID:   req.CityID,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, gin.H{"user": user, "token": token})
}

// Login 登录
// @Summary 用户登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Unauthorized(c, err.Error())
		return
	}
	response.Success(c, gin.H{"user": user, "token": token})
}
