package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lumeo/admin-backend/internal/domain"
)

// CatalogRepository aggregates the publish-gate collaborators (variants,
// images, SEO records). The workflow engine consumes only the PublishGate
// aggregate, never the rows themselves.
type CatalogRepository interface {
	WithTx(tx *gorm.DB) CatalogRepository
	ProductGate(productID string) (domain.PublishGate, error)
	ProductBlockers(productID string) ([]string, error)
	HasArticleSeo(articleID string) (bool, error)
	CreateVariant(variant *domain.ProductVariant) error
	CreateImage(image *domain.ProductImage) error
	SaveProductSeo(seo *domain.ProductSeo) error
	SaveArticleSeo(seo *domain.ArticleSeo) error
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) WithTx(tx *gorm.DB) CatalogRepository {
	return &catalogRepository{db: tx}
}

func (r *catalogRepository) ProductGate(productID string) (domain.PublishGate, error) {
	var gate domain.PublishGate

	err := r.db.Model(&domain.ProductVariant{}).
		Where("product_id = ? AND is_active = ?", productID, true).
		Count(&gate.ActiveVariants).Error
	if err != nil {
		return gate, err
	}

	err = r.db.Model(&domain.ProductImage{}).
		Where("product_id = ?", productID).
		Count(&gate.Images).Error
	if err != nil {
		return gate, err
	}

	var seo domain.ProductSeo
	err = r.db.Where("product_id = ?", productID).First(&seo).Error
	switch {
	case err == nil:
		gate.HasSeo = true
	case errors.Is(err, gorm.ErrRecordNotFound):
		gate.HasSeo = false
	default:
		return gate, err
	}

	return gate, nil
}

// ProductBlockers returns every unmet publication condition at once, for the
// advisory pre-publish check. The hard gate reports only the first failure.
func (r *catalogRepository) ProductBlockers(productID string) ([]string, error) {
	gate, err := r.ProductGate(productID)
	if err != nil {
		return nil, err
	}

	blockers := []string{}
	if gate.ActiveVariants == 0 {
		blockers = append(blockers, "at least one active variant is required")
	}
	if gate.Images == 0 {
		blockers = append(blockers, "at least one image is required")
	}
	if !gate.HasSeo {
		blockers = append(blockers, "an SEO record is required")
	}
	return blockers, nil
}

func (r *catalogRepository) HasArticleSeo(articleID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.ArticleSeo{}).
		Where("article_id = ?", articleID).
		Count(&count).Error
	return count > 0, err
}

func (r *catalogRepository) CreateVariant(variant *domain.ProductVariant) error {
	return r.db.Create(variant).Error
}

func (r *catalogRepository) CreateImage(image *domain.ProductImage) error {
	return r.db.Create(image).Error
}

func (r *catalogRepository) SaveProductSeo(seo *domain.ProductSeo) error {
	return r.db.Save(seo).Error
}

func (r *catalogRepository) SaveArticleSeo(seo *domain.ArticleSeo) error {
	return r.db.Save(seo).Error
}
