package repository

import (
	"gorm.io/gorm"

	"github.com/lumeo/admin-backend/internal/domain"
)

// ArticleRepository article data access.
type ArticleRepository interface {
	WithTx(tx *gorm.DB) ArticleRepository
	Create(article *domain.Article) error
	FindByID(id string) (*domain.Article, error)
	FindBySlug(slug string) (*domain.Article, error)
	List(page, limit int, status domain.ContentStatus) ([]*domain.Article, int64, error)
	Update(article *domain.Article) error
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) WithTx(tx *gorm.DB) ArticleRepository {
	return &articleRepository{db: tx}
}

func (r *articleRepository) Create(article *domain.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) FindByID(id string) (*domain.Article, error) {
	var article domain.Article
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindBySlug(slug string) (*domain.Article, error) {
	var article domain.Article
	err := r.db.Where("slug = ? AND deleted_at IS NULL", slug).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) List(page, limit int, status domain.ContentStatus) ([]*domain.Article, int64, error) {
	query := r.db.Model(&domain.Article{}).Where("deleted_at IS NULL")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	articles := []*domain.Article{}
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&articles).Error
	return articles, total, err
}

func (r *articleRepository) Update(article *domain.Article) error {
	return r.db.Save(article).Error
}
