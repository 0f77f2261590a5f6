package repository

import (
	"gorm.io/gorm"

	"github.com/lumeo/admin-backend/internal/domain"
)

// ProductRepository product data access. Content items are never deleted
// through this layer; soft-deletion belongs to an external collaborator.
type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(product *domain.Product) error
	FindByID(id string) (*domain.Product, error)
	FindBySlug(slug string) (*domain.Product, error)
	List(page, limit int, status domain.ContentStatus) ([]*domain.Product, int64, error)
	Update(product *domain.Product) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) FindByID(id string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(slug string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Where("slug = ? AND deleted_at IS NULL", slug).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(page, limit int, status domain.ContentStatus) ([]*domain.Product, int64, error) {
	query := r.db.Model(&domain.Product{}).Where("deleted_at IS NULL")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	products := []*domain.Product{}
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	return products, total, err
}

func (r *productRepository) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}
