package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lumeo/admin-backend/internal/common"
	"github.com/lumeo/admin-backend/internal/domain"
	"github.com/lumeo/admin-backend/internal/migration"
	"github.com/lumeo/admin-backend/internal/repository"
)

type lifecycleFixture struct {
	db       *gorm.DB
	svc      *LifecycleService
	products repository.ProductRepository
	articles repository.ArticleRepository
	catalog  repository.CatalogRepository
	versions repository.VersionRepository
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migration.Run(db))

	products := repository.NewProductRepository(db)
	articles := repository.NewArticleRepository(db)
	catalog := repository.NewCatalogRepository(db)
	versions := repository.NewVersionRepository(db)

	svc := NewLifecycleService(
		db,
		NewWorkflowService(),
		NewVersioningService(versions),
		products,
		articles,
		catalog,
		nil,
	)

	return &lifecycleFixture{
		db:       db,
		svc:      svc,
		products: products,
		articles: articles,
		catalog:  catalog,
		versions: versions,
	}
}

func (f *lifecycleFixture) createProduct(t *testing.T, status domain.ContentStatus) *domain.Product {
	t.Helper()
	product := &domain.Product{
		ID:     uuid.New().String(),
		Slug:   "product-" + uuid.New().String(),
		Name:   "Desk Lamp",
		Price:  strPtr("49.90"),
		Status: status,
	}
	require.NoError(t, f.products.Create(product))
	return product
}

func (f *lifecycleFixture) createArticle(t *testing.T, status domain.ContentStatus) *domain.Article {
	t.Helper()
	article := &domain.Article{
		ID:      uuid.New().String(),
		Slug:    "article-" + uuid.New().String(),
		Title:   "Launch Notes",
		Content: "Body text",
		Status:  status,
	}
	require.NoError(t, f.articles.Create(article))
	return article
}

// satisfyGate adds the variant, image and SEO record a product needs to
// pass the publication gate.
func (f *lifecycleFixture) satisfyGate(t *testing.T, productID string) {
	t.Helper()
	require.NoError(t, f.catalog.CreateVariant(&domain.ProductVariant{
		ID:        uuid.New().String(),
		ProductID: productID,
		SKU:       "VAR-1",
		IsActive:  true,
	}))
	require.NoError(t, f.catalog.CreateImage(&domain.ProductImage{
		ID:        uuid.New().String(),
		ProductID: productID,
		URL:       "https://cdn.example.com/lamp.jpg",
	}))
	require.NoError(t, f.catalog.SaveProductSeo(&domain.ProductSeo{
		ID:        uuid.New().String(),
		ProductID: productID,
		MetaTitle: "Desk Lamp",
	}))
}

func TestLifecycleProductFullChain(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, domain.StatusDraft)
	f.satisfyGate(t, product.ID)
	actor := strPtr("editor-1")

	result, err := f.svc.SubmitForReview(ctx, domain.KindProduct, product.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReadyForReview, result.Content.GetStatus())
	require.NotNil(t, result.Version)
	assert.Equal(t, 1, result.Version.VersionNumber)
	assert.Equal(t, "Submitted for review", *result.Version.ChangeReason)
	assert.Equal(t, "editor-1", *result.Version.ChangedBy)

	result, err = f.svc.Approve(ctx, domain.KindProduct, product.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusValidated, result.Content.GetStatus())
	assert.Equal(t, 2, result.Version.VersionNumber)
	assert.Equal(t, "Approved", *result.Version.ChangeReason)

	result, err = f.svc.Publish(ctx, domain.KindProduct, product.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, result.Content.GetStatus())
	assert.NotNil(t, result.Content.GetPublishedAt())
	assert.Equal(t, 3, result.Version.VersionNumber)
	assert.Equal(t, "Published", *result.Version.ChangeReason)

	// Persisted state matches the returned one.
	stored, err := f.products.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, stored.Status)
	require.NotNil(t, stored.PublishedAt)

	// History is gapless, newest first.
	history, err := f.svc.History(ctx, domain.KindProduct, product.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, v := range history {
		assert.Equal(t, 3-i, v.VersionNumber)
	}
}

func TestLifecyclePublishGateFailureRollsBack(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, domain.StatusValidated)
	// No variants, images or SEO: the gate rejects and the whole
	// transaction must roll back.

	_, err := f.svc.Publish(ctx, domain.KindProduct, product.ID, nil)

	var gateErr *common.PublicationGateError
	require.ErrorAs(t, err, &gateErr)
	assert.Equal(t, common.GateConditionVariants, gateErr.Condition)

	stored, err := f.products.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusValidated, stored.Status)
	assert.Nil(t, stored.PublishedAt)

	history, err := f.versions.FindByEntity(domain.KindProduct, product.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestLifecycleArticlePublishesWithoutGate(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	article := f.createArticle(t, domain.StatusDraft)

	result, err := f.svc.Publish(ctx, domain.KindArticle, article.ID, strPtr("editor-2"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, result.Content.GetStatus())
	assert.Equal(t, 1, result.Version.VersionNumber)
}

func TestLifecycleUnpublishIsNotVersioned(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	article := f.createArticle(t, domain.StatusDraft)

	_, err := f.svc.Publish(ctx, domain.KindArticle, article.ID, nil)
	require.NoError(t, err)

	result, err := f.svc.Unpublish(ctx, domain.KindArticle, article.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, result.Content.GetStatus())
	assert.Nil(t, result.Version)

	history, err := f.versions.FindByEntity(domain.KindArticle, article.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestLifecycleRejectReviewIsNotVersioned(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	article := f.createArticle(t, domain.StatusReadyForReview)

	result, err := f.svc.RejectReview(ctx, domain.KindArticle, article.ID, "needs sources")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, result.Content.GetStatus())
	assert.Nil(t, result.Version)

	stored, err := f.articles.FindByID(article.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Metadata)
	assert.Contains(t, *stored.Metadata, "needs sources")

	history, err := f.versions.FindByEntity(domain.KindArticle, article.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestLifecycleRollbackRestoresEarlierState(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, domain.StatusDraft)
	product.Name = "Name A"
	require.NoError(t, f.products.Update(product))

	_, err := f.svc.Snapshot(ctx, domain.KindProduct, product.ID, strPtr("editor-1"), strPtr("initial"))
	require.NoError(t, err)

	product.Name = "Name B"
	require.NoError(t, f.products.Update(product))
	_, err = f.svc.Snapshot(ctx, domain.KindProduct, product.ID, strPtr("editor-1"), strPtr("renamed"))
	require.NoError(t, err)

	result, err := f.svc.Rollback(ctx, domain.KindProduct, product.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Version.VersionNumber)
	assert.Equal(t, "Rollback to version 1", *result.Version.ChangeReason)
	assert.Nil(t, result.Version.ChangedBy)

	stored, err := f.products.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Name A", stored.Name)

	// The post-rollback snapshot captures the restored state.
	snapshot, err := result.Version.SnapshotMap()
	require.NoError(t, err)
	assert.Equal(t, "Name A", snapshot["name"])
}

func TestLifecycleRollbackToLatestIsLegal(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, domain.StatusDraft)

	_, err := f.svc.Snapshot(ctx, domain.KindProduct, product.ID, nil, nil)
	require.NoError(t, err)

	result, err := f.svc.Rollback(ctx, domain.KindProduct, product.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Version.VersionNumber)
}

func TestLifecycleRollbackBoundaries(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, domain.StatusDraft)

	_, err := f.svc.Snapshot(ctx, domain.KindProduct, product.ID, nil, nil)
	require.NoError(t, err)

	_, err = f.svc.Rollback(ctx, domain.KindProduct, product.ID, 0)
	assert.ErrorIs(t, err, common.ErrVersionNotFound)

	_, err = f.svc.Rollback(ctx, domain.KindProduct, product.ID, 2)
	assert.ErrorIs(t, err, common.ErrVersionNotFound)

	// Failed rollbacks leave the ledger untouched.
	history, err := f.versions.FindByEntity(domain.KindProduct, product.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestLifecycleHistoriesAreIsolatedPerEntity(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	first := f.createArticle(t, domain.StatusDraft)
	second := f.createArticle(t, domain.StatusDraft)

	for i := 0; i < 2; i++ {
		_, err := f.svc.Snapshot(ctx, domain.KindArticle, first.ID, nil, strPtr(fmt.Sprintf("edit %d", i+1)))
		require.NoError(t, err)
	}
	_, err := f.svc.Snapshot(ctx, domain.KindArticle, second.ID, nil, nil)
	require.NoError(t, err)

	firstHistory, err := f.svc.History(ctx, domain.KindArticle, first.ID)
	require.NoError(t, err)
	assert.Len(t, firstHistory, 2)

	secondHistory, err := f.svc.History(ctx, domain.KindArticle, second.ID)
	require.NoError(t, err)
	require.Len(t, secondHistory, 1)
	assert.Equal(t, 1, secondHistory[0].VersionNumber)
}

func TestLifecycleContentNotFound(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	_, err := f.svc.SubmitForReview(ctx, domain.KindProduct, uuid.New().String(), nil)
	assert.ErrorIs(t, err, common.ErrContentNotFound)

	_, err = f.svc.History(ctx, domain.KindArticle, uuid.New().String())
	assert.ErrorIs(t, err, common.ErrContentNotFound)
}

func TestLifecycleAvailableTransitions(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	article := f.createArticle(t, domain.StatusReadyForReview)

	status, transitions, err := f.svc.AvailableTransitions(ctx, domain.KindArticle, article.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReadyForReview, status)
	assert.ElementsMatch(t, []domain.ContentStatus{domain.StatusValidated, domain.StatusDraft, domain.StatusArchived}, transitions)
}
