package domain

import (
	"encoding/json"
	"time"
)

// ContentVersion is one immutable, numbered snapshot of a content item's
// tracked fields. Rows are append-only: never updated, never deleted.
// The composite unique index makes concurrent version-number assignment a
// storage-level conflict instead of a silent duplicate.
type ContentVersion struct {
	ID            string     `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	EntityType    string     `gorm:"column:entity_type;type:varchar(50);uniqueIndex:idx_version_entity,priority:1" json:"entity_type"`
	EntityID      string     `gorm:"column:entity_id;type:char(36);uniqueIndex:idx_version_entity,priority:2" json:"entity_id"`
	VersionNumber int        `gorm:"column:version_number;uniqueIndex:idx_version_entity,priority:3" json:"version_number"`
	Snapshot      string     `gorm:"column:snapshot;type:json" json:"snapshot"`
	ChangedBy     *string    `gorm:"column:changed_by;type:char(36)" json:"changed_by,omitempty"`
	ChangeReason  *string    `gorm:"column:change_reason;type:text" json:"change_reason,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ContentVersion) TableName() string { return "content_versions" }

// SnapshotMap decodes the stored snapshot into a field map.
func (v *ContentVersion) SnapshotMap() (map[string]any, error) {
	fields := map[string]any{}
	if v.Snapshot == "" {
		return fields, nil
	}
	if err := json.Unmarshal([]byte(v.Snapshot), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// SetSnapshotMap encodes a field map into the stored snapshot.
func (v *ContentVersion) SetSnapshotMap(fields map[string]any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	v.Snapshot = string(data)
	return nil
}
