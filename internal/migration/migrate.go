package migration

import (
	"gorm.io/gorm"

	"github.com/lumeo/admin-backend/internal/domain"
)

// Run executes AutoMigrate for every table this service owns. AutoMigrate
// creates missing tables and indexes (including the unique version index)
// and leaves existing data alone.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Product{},
		&domain.Article{},
		&domain.ContentVersion{},
		&domain.ProductVariant{},
		&domain.ProductImage{},
		&domain.ProductSeo{},
		&domain.ArticleSeo{},
	)
}
