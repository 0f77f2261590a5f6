package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumeo/admin-backend/internal/common"
	"github.com/lumeo/admin-backend/internal/domain"
	"github.com/lumeo/admin-backend/internal/service"
)

// ProductHandler handles product CRUD API endpoints
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var input service.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	product, err := h.products.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.CreatedResponse(c, product)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.SuccessResponse(c, product, nil)
}

// List handles GET /products?page=&limit=&status=
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := domain.ContentStatus(c.Query("status"))

	products, meta, err := h.products.List(page, limit, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.SuccessResponse(c, products, meta)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var input service.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	product, err := h.products.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.SuccessResponse(c, product, nil)
}

// PublishBlockers handles GET /products/:id/publish-blockers
func (h *ProductHandler) PublishBlockers(c *gin.Context) {
	blockers, err := h.products.PublishBlockers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{
		"can_publish": len(blockers) == 0,
		"blockers":    blockers,
	}, nil)
}
