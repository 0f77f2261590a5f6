package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumeo/admin-backend/internal/common"
	"github.com/lumeo/admin-backend/internal/domain"
	"github.com/lumeo/admin-backend/internal/repository"
	"github.com/lumeo/admin-backend/pkg/cache"
)

// ArticleService handles article CRUD glue around the lifecycle engine.
type ArticleService struct {
	articles repository.ArticleRepository
	catalog  repository.CatalogRepository
	cache    cache.Service
}

// NewArticleService creates a new ArticleService
func NewArticleService(articles repository.ArticleRepository, catalog repository.CatalogRepository, cacheService cache.Service) *ArticleService {
	return &ArticleService{articles: articles, catalog: catalog, cache: cacheService}
}

// CreateArticleInput fields accepted when creating an article
type CreateArticleInput struct {
	Slug             string  `json:"slug" binding:"required"`
	Title            string  `json:"title" binding:"required"`
	Content          string  `json:"content"`
	Excerpt          *string `json:"excerpt"`
	FeaturedImageURL *string `json:"featured_image_url"`
}

// UpdateArticleInput fields accepted when updating an article
type UpdateArticleInput struct {
	Title            *string `json:"title"`
	Content          *string `json:"content"`
	Excerpt          *string `json:"excerpt"`
	FeaturedImageURL *string `json:"featured_image_url"`
}

// Create stores a new article in draft status.
func (s *ArticleService) Create(input CreateArticleInput) (*domain.Article, error) {
	slug := strings.TrimSpace(input.Slug)
	title := strings.TrimSpace(input.Title)
	if slug == "" || title == "" {
		return nil, fmt.Errorf("%w: slug and title are required", common.ErrInvalidInput)
	}

	now := time.Now()
	article := &domain.Article{
		ID:               uuid.New().String(),
		Slug:             slug,
		Title:            title,
		Content:          input.Content,
		Excerpt:          input.Excerpt,
		FeaturedImageURL: input.FeaturedImageURL,
		Status:           domain.StatusDraft,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.articles.Create(article); err != nil {
		return nil, err
	}
	return article, nil
}

// Get returns an article by id. Published articles are served from the
// cache when available.
func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	if s.cache != nil && s.cache.IsAvailable() {
		if data, err := s.cache.GetContent(ctx, string(domain.KindArticle), id); err == nil {
			var cached domain.Article
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	article, err := s.articles.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: article %s", common.ErrContentNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if article.Status == domain.StatusPublished && s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.SetContent(ctx, string(domain.KindArticle), id, article)
	}
	return article, nil
}

// List returns a page of articles, optionally filtered by status.
func (s *ArticleService) List(page, limit int, status domain.ContentStatus) ([]*domain.Article, *common.Meta, error) {
	page, limit = normalizePage(page, limit)
	if status != "" && !status.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown status %q", common.ErrInvalidInput, status)
	}

	articles, total, err := s.articles.List(page, limit, status)
	if err != nil {
		return nil, nil, err
	}
	return articles, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

// Update rewrites the editable content fields. Reads the database directly
// so a cached copy is never written back.
func (s *ArticleService) Update(ctx context.Context, id string, input UpdateArticleInput) (*domain.Article, error) {
	article, err := s.articles.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: article %s", common.ErrContentNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", common.ErrInvalidInput)
		}
		article.Title = *input.Title
	}
	if input.Content != nil {
		article.Content = *input.Content
	}
	if input.Excerpt != nil {
		article.Excerpt = input.Excerpt
	}
	if input.FeaturedImageURL != nil {
		article.FeaturedImageURL = input.FeaturedImageURL
	}
	article.UpdatedAt = time.Now()

	if err := s.articles.Update(article); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateContent(ctx, string(domain.KindArticle), id)
	}
	return article, nil
}

// PublishBlockers lists advisory pre-publish warnings for an article.
// Articles publish ungated; these are surfaced in the admin UI only.
func (s *ArticleService) PublishBlockers(ctx context.Context, id string) ([]string, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	blockers := []string{}
	if strings.TrimSpace(article.Content) == "" {
		blockers = append(blockers, "content is empty")
	}
	hasSeo, err := s.catalog.HasArticleSeo(id)
	if err != nil {
		return nil, err
	}
	if !hasSeo {
		blockers = append(blockers, "an SEO record is recommended")
	}
	return blockers, nil
}
