package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
	"github.com/d60-Lab/schoolbooks/internal/service"
	"github.com/d60-Lab/schoolbooks/internal/validate"
	"github.com/d60-Lab/schoolbooks/pkg/response"
)

type createProductRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Author      string  `json:"author" binding:"max=255"`
	ISBN        string  `json:"isbn" binding:"max=20"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Images      string  `json:"images"`
	CategoryID  string  `json:"category_id" binding:"required"`
	StateID     string  `json:"state_id" binding:"required"`
}

type updateProductRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=255"`
	Author      *string  `json:"author" binding:"omitempty,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Images      *string  `json:"images"`
	CategoryID  *string  `json:"category_id"`
	StateID     *string  `json:"state_id"`
}

// CreateProduct 发布商品
// @Summary 发布教材
// @Tags 商品
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createProductRequest true "商品信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	p, err := h.productService.Create(c.Request.Context(), currentUserID(c), service.ProductCreateInput{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		CategoryID:  req.CategoryID,
		StateID:     req.StateID,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, p)
}

// GetProduct 商品详情
// @Summary 商品详情
// @Tags 商品
// @Param id path string true "商品ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.productService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, p)
}

// ListProducts 商品列表（默认只看在售）
// @Summary 商品列表
// @Tags 商品
// @Param q query string false "关键词（书名/作者/ISBN）"
// @Param category_id query string false "分类"
// @Param state_id query string false "书况"
// @Param min_price query number false "最低价"
// @Param max_price query number false "最高价"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	minPrice, _ := strconv.ParseFloat(c.DefaultQuery("min_price", "0"), 64)
	maxPrice, _ := strconv.ParseFloat(c.DefaultQuery("max_price", "0"), 64)

	filter := repository.ProductFilter{
		Query:      c.Query("q"),
		CategoryID: c.Query("category_id"),
		StateID:    c.Query("state_id"),
		SellerID:   c.Query("seller_id"),
		Status:     model.ProductStatusSelling,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
	}
	list, err := h.productService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// UpdateProduct 修改商品（仅卖家本人）
// @Summary 修改商品
// @Tags 商品
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "商品ID"
// @Param request body updateProductRequest true "商品信息"
// @Success 200 {object} response.Response
// @Router /api/v1/products/{id} [put]
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Fields(err))
		return
	}
	p, err := h.productService.Update(c.Request.Context(), currentUserID(c), c.Param("id"), service.ProductUpdateInput{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		CategoryID:  req.CategoryID,
		StateID:     req.StateID,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, p)
}

// DeleteProduct 下架商品（有进行中订单时拒绝）
// @Summary 删除商品
// @Tags 商品
// @Security BearerAuth
// @Param id path string true "商品ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/products/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
