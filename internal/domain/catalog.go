package domain

import "time"

// Publish-gate collaborators. The workflow engine never reads these tables
// directly; it receives aggregated counts via PublishGate.

// ProductVariant is a sellable variation of a product.
type ProductVariant struct {
	ID        string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	ProductID string    `gorm:"column:product_id;type:char(36);index" json:"product_id"`
	SKU       string    `gorm:"column:sku;type:varchar(255)" json:"sku"`
	Name      *string   `gorm:"column:name;type:varchar(255)" json:"name,omitempty"`
	Price     *string   `gorm:"column:price;type:decimal(10,2)" json:"price,omitempty"`
	Stock     int       `gorm:"column:stock;default:0" json:"stock"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProductVariant) TableName() string { return "product_variants" }

// ProductImage is a display image attached to a product.
type ProductImage struct {
	ID        string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	ProductID string    `gorm:"column:product_id;type:char(36);index" json:"product_id"`
	URL       string    `gorm:"column:url;type:varchar(500)" json:"url"`
	Alt       *string   `gorm:"column:alt;type:varchar(255)" json:"alt,omitempty"`
	Position  int       `gorm:"column:position;default:0" json:"position"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ProductImage) TableName() string { return "product_images" }

// ProductSeo holds the SEO record whose presence gates product publication.
type ProductSeo struct {
	ID              string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	ProductID       string    `gorm:"column:product_id;type:char(36);uniqueIndex" json:"product_id"`
	MetaTitle       string    `gorm:"column:meta_title;type:varchar(255)" json:"meta_title"`
	MetaDescription *string   `gorm:"column:meta_description;type:text" json:"meta_description,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProductSeo) TableName() string { return "product_seo" }

// ArticleSeo is the article counterpart of ProductSeo. Articles publish
// without a gate; the record feeds the advisory publish-blockers check only.
type ArticleSeo struct {
	ID              string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	ArticleID       string    `gorm:"column:article_id;type:char(36);uniqueIndex" json:"article_id"`
	MetaTitle       string    `gorm:"column:meta_title;type:varchar(255)" json:"meta_title"`
	MetaDescription *string   `gorm:"column:meta_description;type:text" json:"meta_description,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ArticleSeo) TableName() string { return "article_seo" }
