package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumeo/admin-backend/internal/common"
	"github.com/lumeo/admin-backend/internal/domain"
	"github.com/lumeo/admin-backend/internal/repository"
)

// recordAttempts bounds the optimistic-append retry loop. Two concurrent
// writers for the same entity collide on the unique version index; the loser
// re-reads the max and re-inserts.
const recordAttempts = 3

// VersioningService maintains the append-only version history per content
// item and performs rollbacks. Rollback never rewinds the counter: the
// restored state is recorded as a new, higher-numbered entry.
type VersioningService struct {
	versions repository.VersionRepository
	now      func() time.Time
	newID    func() string
}

// NewVersioningService creates a new VersioningService
func NewVersioningService(versions repository.VersionRepository) *VersioningService {
	return &VersioningService{
		versions: versions,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// WithTx returns a copy of the service bound to the given transaction.
func (s *VersioningService) WithTx(tx *gorm.DB) *VersioningService {
	return &VersioningService{
		versions: s.versions.WithTx(tx),
		now:      s.now,
		newID:    s.newID,
	}
}

// RecordVersion appends a snapshot as the next version for the entity.
// Version numbers are 1-based, strictly increasing and gapless per
// (kind, entityID); the unique index plus bounded retry makes concurrent
// assignment race-free. Exhausting the retry budget returns
// ErrVersionConflict and the caller should retry the whole operation.
func (s *VersioningService) RecordVersion(
	kind domain.ContentKind,
	entityID string,
	snapshot map[string]any,
	changedBy *string,
	reason *string,
) (*domain.ContentVersion, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown content kind %q", common.ErrInvalidInput, kind)
	}

	var lastErr error
	for attempt := 0; attempt < recordAttempts; attempt++ {
		max, err := s.versions.MaxVersionNumber(kind, entityID)
		if err != nil {
			return nil, err
		}

		version := &domain.ContentVersion{
			ID:            s.newID(),
			EntityType:    string(kind),
			EntityID:      entityID,
			VersionNumber: max + 1,
			ChangedBy:     changedBy,
			ChangeReason:  reason,
			CreatedAt:     s.now(),
		}
		if err := version.SetSnapshotMap(snapshot); err != nil {
			return nil, err
		}

		err = s.versions.Create(version)
		if err == nil {
			return version, nil
		}
		if !repository.IsDuplicateKey(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w for %s %s: %v", common.ErrVersionConflict, kind, entityID, lastErr)
}

// History returns all versions for the entity, newest first. No history is
// an empty slice, not an error.
func (s *VersioningService) History(kind domain.ContentKind, entityID string) ([]*domain.ContentVersion, error) {
	return s.versions.FindByEntity(kind, entityID)
}

// LatestVersionNumber returns the highest version number for the entity,
// or 0 when no versions exist.
func (s *VersioningService) LatestVersionNumber(kind domain.ContentKind, entityID string) (int, error) {
	return s.versions.MaxVersionNumber(kind, entityID)
}

// Rollback restores the tracked fields captured in the target version onto
// the item (fields absent from the snapshot are left as they are), then
// records the post-rollback state as a new version. Rolling back to the
// current latest is legal and still consumes a new version number.
func (s *VersioningService) Rollback(content domain.Content, targetVersion int) (*domain.ContentVersion, error) {
	kind := content.ContentKind()

	if targetVersion < 1 {
		return nil, fmt.Errorf("%w: version %d for %s %s",
			common.ErrVersionNotFound, targetVersion, kind, content.GetID())
	}

	target, err := s.versions.FindByEntityAndVersion(kind, content.GetID(), targetVersion)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: version %d for %s %s",
			common.ErrVersionNotFound, targetVersion, kind, content.GetID())
	}
	if err != nil {
		return nil, err
	}

	snapshot, err := target.SnapshotMap()
	if err != nil {
		return nil, err
	}

	content.ApplyTrackedFields(snapshot)
	content.Touch(s.now())

	reason := fmt.Sprintf("Rollback to version %d", targetVersion)
	return s.RecordVersion(kind, content.GetID(), content.TrackedFields(), nil, &reason)
}
