package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProductTrackedFields(t *testing.T) {
	product := &Product{
		Name:   "Lamp",
		Price:  strPtr("49.90"),
		SKU:    strPtr("LMP-01"),
		Status: StatusDraft,
	}

	fields := product.TrackedFields()

	assert.Equal(t, "Lamp", fields["name"])
	assert.Equal(t, "49.90", fields["price"])
	assert.Equal(t, "LMP-01", fields["sku"])
	assert.Equal(t, "draft", fields["status"])
	assert.Nil(t, fields["description"])
}

func TestProductApplyTrackedFieldsPartial(t *testing.T) {
	product := &Product{
		Name:        "New name",
		Description: strPtr("kept"),
		Price:       strPtr("10.00"),
		Status:      StatusPublished,
	}

	// Snapshot carries only name and status; other fields stay as they are.
	product.ApplyTrackedFields(map[string]any{
		"name":   "Old name",
		"status": "draft",
	})

	assert.Equal(t, "Old name", product.Name)
	assert.Equal(t, StatusDraft, product.Status)
	assert.Equal(t, "kept", *product.Description)
	assert.Equal(t, "10.00", *product.Price)
}

func TestProductApplyTrackedFieldsSkipsNullAndUnknown(t *testing.T) {
	product := &Product{Name: "Lamp", SKU: strPtr("LMP-01"), Status: StatusDraft}

	product.ApplyTrackedFields(map[string]any{
		"sku":    nil,
		"status": "not_a_status",
		"bogus":  "ignored",
	})

	assert.Equal(t, "LMP-01", *product.SKU)
	assert.Equal(t, StatusDraft, product.Status)
}

func TestArticleSnapshotRoundTrip(t *testing.T) {
	article := &Article{
		Title:   "Hello",
		Content: "Body",
		Excerpt: strPtr("Short"),
		Status:  StatusValidated,
	}

	fields := article.TrackedFields()

	// Simulate the ledger's JSON persistence round trip.
	data, err := json.Marshal(fields)
	require.NoError(t, err)
	decoded := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	restored := &Article{Status: StatusDraft}
	restored.ApplyTrackedFields(decoded)

	assert.Equal(t, "Hello", restored.Title)
	assert.Equal(t, "Body", restored.Content)
	assert.Equal(t, "Short", *restored.Excerpt)
	assert.Equal(t, StatusValidated, restored.Status)
}

func TestMergeMetadata(t *testing.T) {
	article := &Article{}

	require.NoError(t, article.MergeMetadata(map[string]any{"rejection_reason": "typos"}))
	require.NoError(t, article.MergeMetadata(map[string]any{"rejected_at": "2026-08-30T10:00:00Z"}))

	require.NotNil(t, article.Metadata)
	merged := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(*article.Metadata), &merged))
	assert.Equal(t, "typos", merged["rejection_reason"])
	assert.Equal(t, "2026-08-30T10:00:00Z", merged["rejected_at"])
}

func TestMergeMetadataRejectsCorruptBag(t *testing.T) {
	article := &Article{Metadata: strPtr("{not json")}

	err := article.MergeMetadata(map[string]any{"k": "v"})
	assert.Error(t, err)
}
