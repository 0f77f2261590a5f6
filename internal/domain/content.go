package domain

import (
	"encoding/json"
	"time"
)

// ContentKind discriminates the two content types sharing the publication
// workflow and version ledger.
type ContentKind string

const (
	KindProduct ContentKind = "product"
	KindArticle ContentKind = "article"
)

// Valid reports whether k is a known content kind.
func (k ContentKind) Valid() bool {
	return k == KindProduct || k == KindArticle
}

func (k ContentKind) String() string { return string(k) }

// Content is the capability surface the workflow engine and versioning
// service operate on. Product and Article implement it; the engine never
// depends on either concrete type.
type Content interface {
	GetID() string
	ContentKind() ContentKind

	GetStatus() ContentStatus
	SetStatus(status ContentStatus)

	GetPublishedAt() *time.Time
	SetPublishedAt(t *time.Time)
	GetArchivedAt() *time.Time
	SetArchivedAt(t *time.Time)

	// Touch refreshes the updated-at timestamp.
	Touch(at time.Time)

	// TrackedFields returns the kind-specific field set the version ledger
	// snapshots and restores.
	TrackedFields() map[string]any

	// ApplyTrackedFields overwrites tracked fields present in the given map.
	// Absent or null fields are left untouched, so a partial snapshot is a
	// partial overwrite.
	ApplyTrackedFields(fields map[string]any)

	// MergeMetadata merges entries into the free-form metadata bag.
	MergeMetadata(entries map[string]any) error
}

// PublishGate carries the read-only completeness inputs consulted when a
// product is published. The underlying variants, images and SEO records live
// in external collaborators; the workflow engine only sees these aggregates.
type PublishGate struct {
	ActiveVariants int64
	Images         int64
	HasSeo         bool
}

// stringField extracts a non-null string value from a snapshot map.
// Null snapshot values mean "field was empty at capture time" and are
// skipped on rollback, matching partial-overwrite semantics.
func stringField(fields map[string]any, key string) (string, bool) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// mergeJSONMap merges entries into a JSON object stored as a string column.
func mergeJSONMap(raw *string, entries map[string]any) (*string, error) {
	merged := map[string]any{}
	if raw != nil && *raw != "" {
		if err := json.Unmarshal([]byte(*raw), &merged); err != nil {
			return nil, err
		}
	}
	for k, v := range entries {
		merged[k] = v
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}

func derefString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
