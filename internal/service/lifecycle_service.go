package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lumeo/admin-backend/internal/common"
	"github.com/lumeo/admin-backend/internal/domain"
	"github.com/lumeo/admin-backend/internal/repository"
	"github.com/lumeo/admin-backend/pkg/cache"
	"github.com/lumeo/admin-backend/pkg/logger"
)

// Version reasons recorded alongside workflow transitions.
const (
	reasonSubmitted = "Submitted for review"
	reasonApproved  = "Approved"
	reasonPublished = "Published"
	reasonArchived  = "Archived"
)

// LifecycleService sequences the workflow engine and the version ledger.
// Each operation loads the item, applies the transition, saves it and
// records the version snapshot inside one database transaction, so a status
// change and its version record commit together or not at all.
type LifecycleService struct {
	db         *gorm.DB
	workflow   *WorkflowService
	versioning *VersioningService
	products   repository.ProductRepository
	articles   repository.ArticleRepository
	catalog    repository.CatalogRepository
	cache      cache.Service
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(
	db *gorm.DB,
	workflow *WorkflowService,
	versioning *VersioningService,
	products repository.ProductRepository,
	articles repository.ArticleRepository,
	catalog repository.CatalogRepository,
	cacheService cache.Service,
) *LifecycleService {
	return &LifecycleService{
		db:         db,
		workflow:   workflow,
		versioning: versioning,
		products:   products,
		articles:   articles,
		catalog:    catalog,
		cache:      cacheService,
	}
}

// TransitionResult carries the mutated item and, when the transition is
// versioned, the recorded snapshot.
type TransitionResult struct {
	Content domain.Content         `json:"content"`
	Version *domain.ContentVersion `json:"version,omitempty"`
}

// SubmitForReview moves a draft into review and records a version.
func (s *LifecycleService) SubmitForReview(ctx context.Context, kind domain.ContentKind, id string, actor *string) (*TransitionResult, error) {
	return s.transition(ctx, kind, id, actor, reasonSubmitted,
		func(tx *gorm.DB, content domain.Content) error {
			return s.workflow.SubmitForReview(content)
		})
}

// Approve validates content under review and records a version.
func (s *LifecycleService) Approve(ctx context.Context, kind domain.ContentKind, id string, actor *string) (*TransitionResult, error) {
	return s.transition(ctx, kind, id, actor, reasonApproved,
		func(tx *gorm.DB, content domain.Content) error {
			return s.workflow.Approve(content)
		})
}

// Publish makes content live and records a version. For products the
// completeness gate is read inside the same transaction.
func (s *LifecycleService) Publish(ctx context.Context, kind domain.ContentKind, id string, actor *string) (*TransitionResult, error) {
	return s.transition(ctx, kind, id, actor, reasonPublished,
		func(tx *gorm.DB, content domain.Content) error {
			var gate *domain.PublishGate
			if kind == domain.KindProduct {
				g, err := s.catalog.WithTx(tx).ProductGate(id)
				if err != nil {
					return err
				}
				gate = &g
			}
			return s.workflow.Publish(content, gate)
		})
}

// Unpublish takes content offline. Not versioned: tracked fields are
// unchanged apart from status, and the original flow never snapshotted it.
func (s *LifecycleService) Unpublish(ctx context.Context, kind domain.ContentKind, id string) (*TransitionResult, error) {
	return s.transition(ctx, kind, id, nil, "",
		func(tx *gorm.DB, content domain.Content) error {
			return s.workflow.Unpublish(content)
		})
}

// Archive retires content and records a version.
func (s *LifecycleService) Archive(ctx context.Context, kind domain.ContentKind, id string, actor *string) (*TransitionResult, error) {
	return s.transition(ctx, kind, id, actor, reasonArchived,
		func(tx *gorm.DB, content domain.Content) error {
			return s.workflow.Archive(content)
		})
}

// Unarchive returns archived content to draft. Not versioned.
func (s *LifecycleService) Unarchive(ctx context.Context, kind domain.ContentKind, id string) (*TransitionResult, error) {
	return s.transition(ctx, kind, id, nil, "",
		func(tx *gorm.DB, content domain.Content) error {
			return s.workflow.Unarchive(content)
		})
}

// RejectReview sends content under review back to draft. Rejection history
// lives in the metadata bag only and is intentionally not versioned.
func (s *LifecycleService) RejectReview(ctx context.Context, kind domain.ContentKind, id, reason string) (*TransitionResult, error) {
	return s.transition(ctx, kind, id, nil, "",
		func(tx *gorm.DB, content domain.Content) error {
			return s.workflow.RejectReview(content, reason)
		})
}

// Rollback restores a prior version's tracked fields and records the
// restoration as a new version, all in one transaction with the item save.
func (s *LifecycleService) Rollback(ctx context.Context, kind domain.ContentKind, id string, targetVersion int) (*TransitionResult, error) {
	var result *TransitionResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		content, err := s.loadContent(tx, kind, id)
		if err != nil {
			return err
		}

		version, err := s.versioning.WithTx(tx).Rollback(content, targetVersion)
		if err != nil {
			return err
		}

		if err := s.saveContent(tx, content); err != nil {
			return err
		}

		result = &TransitionResult{Content: content, Version: version}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, kind, id)
	return result, nil
}

// Snapshot records a manual version of the item's current tracked fields,
// outside any workflow transition.
func (s *LifecycleService) Snapshot(ctx context.Context, kind domain.ContentKind, id string, actor *string, reason *string) (*domain.ContentVersion, error) {
	content, err := s.loadContent(s.db, kind, id)
	if err != nil {
		return nil, err
	}
	return s.versioning.RecordVersion(kind, id, content.TrackedFields(), actor, reason)
}

// History returns the item's version history, newest first.
func (s *LifecycleService) History(ctx context.Context, kind domain.ContentKind, id string) ([]*domain.ContentVersion, error) {
	if _, err := s.loadContent(s.db, kind, id); err != nil {
		return nil, err
	}
	return s.versioning.History(kind, id)
}

// AvailableTransitions returns the advisory transition set for the item.
func (s *LifecycleService) AvailableTransitions(ctx context.Context, kind domain.ContentKind, id string) (domain.ContentStatus, []domain.ContentStatus, error) {
	content, err := s.loadContent(s.db, kind, id)
	if err != nil {
		return "", nil, err
	}
	return content.GetStatus(), s.workflow.AvailableTransitions(content), nil
}

func (s *LifecycleService) transition(
	ctx context.Context,
	kind domain.ContentKind,
	id string,
	actor *string,
	versionReason string,
	op func(tx *gorm.DB, content domain.Content) error,
) (*TransitionResult, error) {
	var result *TransitionResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		content, err := s.loadContent(tx, kind, id)
		if err != nil {
			return err
		}

		if err := op(tx, content); err != nil {
			return err
		}

		if err := s.saveContent(tx, content); err != nil {
			return err
		}

		var version *domain.ContentVersion
		if versionReason != "" {
			reason := versionReason
			version, err = s.versioning.WithTx(tx).RecordVersion(kind, id, content.TrackedFields(), actor, &reason)
			if err != nil {
				return err
			}
		}

		result = &TransitionResult{Content: content, Version: version}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, kind, id)
	return result, nil
}

func (s *LifecycleService) loadContent(tx *gorm.DB, kind domain.ContentKind, id string) (domain.Content, error) {
	var (
		content domain.Content
		err     error
	)
	switch kind {
	case domain.KindProduct:
		content, err = s.products.WithTx(tx).FindByID(id)
	case domain.KindArticle:
		content, err = s.articles.WithTx(tx).FindByID(id)
	default:
		return nil, fmt.Errorf("%w: unknown content kind %q", common.ErrInvalidInput, kind)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s %s", common.ErrContentNotFound, kind, id)
	}
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (s *LifecycleService) saveContent(tx *gorm.DB, content domain.Content) error {
	switch c := content.(type) {
	case *domain.Product:
		return s.products.WithTx(tx).Update(c)
	case *domain.Article:
		return s.articles.WithTx(tx).Update(c)
	}
	return fmt.Errorf("%w: unsupported content type", common.ErrInvalidInput)
}

// invalidate drops cached payloads after a committed change. Cache failures
// are logged and swallowed; the database state is already correct.
func (s *LifecycleService) invalidate(ctx context.Context, kind domain.ContentKind, id string) {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	if err := s.cache.InvalidateContent(ctx, string(kind), id); err != nil {
		logger.GetLogger().Warn().
			Err(err).
			Str("kind", string(kind)).
			Str("id", id).
			Msg("cache invalidation failed")
	}
}
