package domain

import "time"

// Product is a commerce content item subject to the publication workflow.
type Product struct {
	ID          string        `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Slug        string        `gorm:"column:slug;type:varchar(255);uniqueIndex" json:"slug"`
	Name        string        `gorm:"column:name;type:varchar(255)" json:"name"`
	Description *string       `gorm:"column:description;type:text" json:"description,omitempty"`
	SKU         *string       `gorm:"column:sku;type:varchar(255)" json:"sku,omitempty"`
	Price       *string       `gorm:"column:price;type:decimal(10,2)" json:"price,omitempty"`
	Status      ContentStatus `gorm:"column:status;type:varchar(20);index:idx_product_status_created,priority:1" json:"status"`
	Metadata    *string       `gorm:"column:metadata;type:json" json:"metadata,omitempty"`
	PublishedAt *time.Time    `gorm:"column:published_at" json:"published_at,omitempty"`
	ArchivedAt  *time.Time    `gorm:"column:archived_at" json:"archived_at,omitempty"`
	DeletedAt   *time.Time    `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	CreatedAt   time.Time     `gorm:"column:created_at;autoCreateTime;index:idx_product_status_created,priority:2" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

func (p *Product) GetID() string            { return p.ID }
func (p *Product) ContentKind() ContentKind { return KindProduct }

func (p *Product) GetStatus() ContentStatus       { return p.Status }
func (p *Product) SetStatus(status ContentStatus) { p.Status = status }

func (p *Product) GetPublishedAt() *time.Time  { return p.PublishedAt }
func (p *Product) SetPublishedAt(t *time.Time) { p.PublishedAt = t }
func (p *Product) GetArchivedAt() *time.Time   { return p.ArchivedAt }
func (p *Product) SetArchivedAt(t *time.Time)  { p.ArchivedAt = t }

func (p *Product) Touch(at time.Time) { p.UpdatedAt = at }

func (p *Product) TrackedFields() map[string]any {
	return map[string]any{
		"name":        p.Name,
		"description": derefString(p.Description),
		"price":       derefString(p.Price),
		"status":      string(p.Status),
		"sku":         derefString(p.SKU),
	}
}

func (p *Product) ApplyTrackedFields(fields map[string]any) {
	if v, ok := stringField(fields, "name"); ok {
		p.Name = v
	}
	if v, ok := stringField(fields, "description"); ok {
		p.Description = &v
	}
	if v, ok := stringField(fields, "price"); ok {
		p.Price = &v
	}
	if v, ok := stringField(fields, "status"); ok {
		if s := ContentStatus(v); s.Valid() {
			p.Status = s
		}
	}
	if v, ok := stringField(fields, "sku"); ok {
		p.SKU = &v
	}
}

func (p *Product) MergeMetadata(entries map[string]any) error {
	merged, err := mergeJSONMap(p.Metadata, entries)
	if err != nil {
		return err
	}
	p.Metadata = merged
	return nil
}
