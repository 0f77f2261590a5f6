package repository

import (
	"errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/lumeo/admin-backend/internal/domain"
)

// VersionRepository content version ledger data access. Entries are
// insert-only; no update or delete methods exist on purpose.
type VersionRepository interface {
	WithTx(tx *gorm.DB) VersionRepository
	Create(version *domain.ContentVersion) error
	FindByEntity(kind domain.ContentKind, entityID string) ([]*domain.ContentVersion, error)
	FindByEntityAndVersion(kind domain.ContentKind, entityID string, versionNumber int) (*domain.ContentVersion, error)
	MaxVersionNumber(kind domain.ContentKind, entityID string) (int, error)
}

type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) WithTx(tx *gorm.DB) VersionRepository {
	return &versionRepository{db: tx}
}

func (r *versionRepository) Create(version *domain.ContentVersion) error {
	return r.db.Create(version).Error
}

func (r *versionRepository) FindByEntity(kind domain.ContentKind, entityID string) ([]*domain.ContentVersion, error) {
	versions := []*domain.ContentVersion{}
	err := r.db.Where("entity_type = ? AND entity_id = ?", string(kind), entityID).
		Order("version_number DESC").
		Find(&versions).Error
	return versions, err
}

func (r *versionRepository) FindByEntityAndVersion(kind domain.ContentKind, entityID string, versionNumber int) (*domain.ContentVersion, error) {
	var version domain.ContentVersion
	err := r.db.Where("entity_type = ? AND entity_id = ? AND version_number = ?", string(kind), entityID, versionNumber).
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *versionRepository) MaxVersionNumber(kind domain.ContentKind, entityID string) (int, error) {
	var max *int
	err := r.db.Model(&domain.ContentVersion{}).
		Where("entity_type = ? AND entity_id = ?", string(kind), entityID).
		Select("MAX(version_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// IsDuplicateKey reports whether err is a unique-constraint violation.
// MySQL surfaces error 1062; the sqlite driver used in tests reports the
// violation as a plain error message.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed")
}
