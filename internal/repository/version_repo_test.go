package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lumeo/admin-backend/internal/domain"
	"github.com/lumeo/admin-backend/internal/migration"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migration.Run(db))
	return db
}

func newVersion(entityID string, number int) *domain.ContentVersion {
	return &domain.ContentVersion{
		ID:            uuid.New().String(),
		EntityType:    "product",
		EntityID:      entityID,
		VersionNumber: number,
		Snapshot:      `{"name":"x"}`,
		CreatedAt:     time.Now(),
	}
}

func TestVersionRepositoryCreateAndMax(t *testing.T) {
	repo := NewVersionRepository(newTestDB(t))
	entityID := uuid.New().String()

	max, err := repo.MaxVersionNumber(domain.KindProduct, entityID)
	require.NoError(t, err)
	assert.Equal(t, 0, max)

	require.NoError(t, repo.Create(newVersion(entityID, 1)))
	require.NoError(t, repo.Create(newVersion(entityID, 2)))

	max, err = repo.MaxVersionNumber(domain.KindProduct, entityID)
	require.NoError(t, err)
	assert.Equal(t, 2, max)

	// Other entities do not bleed into the max.
	max, err = repo.MaxVersionNumber(domain.KindProduct, uuid.New().String())
	require.NoError(t, err)
	assert.Equal(t, 0, max)
}

func TestVersionRepositoryFindByEntityNewestFirst(t *testing.T) {
	repo := NewVersionRepository(newTestDB(t))
	entityID := uuid.New().String()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Create(newVersion(entityID, i)))
	}

	versions, err := repo.FindByEntity(domain.KindProduct, entityID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, 3, versions[0].VersionNumber)
	assert.Equal(t, 1, versions[2].VersionNumber)

	// Same id under a different kind is a different history.
	versions, err = repo.FindByEntity(domain.KindArticle, entityID)
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestVersionRepositoryFindByEntityAndVersion(t *testing.T) {
	repo := NewVersionRepository(newTestDB(t))
	entityID := uuid.New().String()

	require.NoError(t, repo.Create(newVersion(entityID, 1)))

	found, err := repo.FindByEntityAndVersion(domain.KindProduct, entityID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, found.VersionNumber)
	assert.Equal(t, entityID, found.EntityID)

	_, err = repo.FindByEntityAndVersion(domain.KindProduct, entityID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestVersionRepositoryUniqueIndexRejectsDuplicates(t *testing.T) {
	repo := NewVersionRepository(newTestDB(t))
	entityID := uuid.New().String()

	require.NoError(t, repo.Create(newVersion(entityID, 1)))

	err := repo.Create(newVersion(entityID, 1))
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm sentinel", gorm.ErrDuplicatedKey, true},
		{"mysql 1062", &mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"}, true},
		{"mysql other", &mysqldriver.MySQLError{Number: 1213, Message: "Deadlock found"}, false},
		{"sqlite message", errors.New("UNIQUE constraint failed: content_versions.entity_type"), true},
		{"unrelated", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateKey(tt.err))
		})
	}
}
