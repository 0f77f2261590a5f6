package domain

import "time"

// Article is an editorial content item subject to the publication workflow.
type Article struct {
	ID               string        `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Slug             string        `gorm:"column:slug;type:varchar(255);uniqueIndex" json:"slug"`
	Title            string        `gorm:"column:title;type:varchar(255)" json:"title"`
	Content          string        `gorm:"column:content;type:text" json:"content"`
	Excerpt          *string       `gorm:"column:excerpt;type:text" json:"excerpt,omitempty"`
	FeaturedImageURL *string       `gorm:"column:featured_image_url;type:varchar(500)" json:"featured_image_url,omitempty"`
	Status           ContentStatus `gorm:"column:status;type:varchar(20);index:idx_article_status_created,priority:1" json:"status"`
	Metadata         *string       `gorm:"column:metadata;type:json" json:"metadata,omitempty"`
	PublishedAt      *time.Time    `gorm:"column:published_at" json:"published_at,omitempty"`
	ArchivedAt       *time.Time    `gorm:"column:archived_at" json:"archived_at,omitempty"`
	DeletedAt        *time.Time    `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	CreatedAt        time.Time     `gorm:"column:created_at;autoCreateTime;index:idx_article_status_created,priority:2" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (Article) TableName() string { return "articles" }

func (a *Article) GetID() string            { return a.ID }
func (a *Article) ContentKind() ContentKind { return KindArticle }

func (a *Article) GetStatus() ContentStatus       { return a.Status }
func (a *Article) SetStatus(status ContentStatus) { a.Status = status }

func (a *Article) GetPublishedAt() *time.Time  { return a.PublishedAt }
func (a *Article) SetPublishedAt(t *time.Time) { a.PublishedAt = t }
func (a *Article) GetArchivedAt() *time.Time   { return a.ArchivedAt }
func (a *Article) SetArchivedAt(t *time.Time)  { a.ArchivedAt = t }

func (a *Article) Touch(at time.Time) { a.UpdatedAt = at }

func (a *Article) TrackedFields() map[string]any {
	return map[string]any{
		"title":   a.Title,
		"content": a.Content,
		"excerpt": derefString(a.Excerpt),
		"status":  string(a.Status),
	}
}

func (a *Article) ApplyTrackedFields(fields map[string]any) {
	if v, ok := stringField(fields, "title"); ok {
		a.Title = v
	}
	if v, ok := stringField(fields, "content"); ok {
		a.Content = v
	}
	if v, ok := stringField(fields, "excerpt"); ok {
		a.Excerpt = &v
	}
	if v, ok := stringField(fields, "status"); ok {
		if s := ContentStatus(v); s.Valid() {
			a.Status = s
		}
	}
}

func (a *Article) MergeMetadata(entries map[string]any) error {
	merged, err := mergeJSONMap(a.Metadata, entries)
	if err != nil {
		return err
	}
	a.Metadata = merged
	return nil
}
