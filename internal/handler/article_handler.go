package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumeo/admin-backend/internal/common"
	"github.com/lumeo/admin-backend/internal/domain"
	"github.com/lumeo/admin-backend/internal/service"
)

// ArticleHandler handles article CRUD API endpoints
type ArticleHandler struct {
	articles *service.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articles *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// Create handles POST /articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var input service.CreateArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	article, err := h.articles.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.CreatedResponse(c, article)
}

// Get handles GET /articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.articles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.SuccessResponse(c, article, nil)
}

// List handles GET /articles?page=&limit=&status=
func (h *ArticleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := domain.ContentStatus(c.Query("status"))

	articles, meta, err := h.articles.List(page, limit, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.SuccessResponse(c, articles, meta)
}

// Update handles PUT /articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	var input service.UpdateArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	article, err := h.articles.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.SuccessResponse(c, article, nil)
}

// PublishBlockers handles GET /articles/:id/publish-blockers
func (h *ArticleHandler) PublishBlockers(c *gin.Context) {
	blockers, err := h.articles.PublishBlockers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{
		"can_publish": len(blockers) == 0,
		"blockers":    blockers,
	}, nil)
}
