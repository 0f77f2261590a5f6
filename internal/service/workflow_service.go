package service

import (
	"fmt"
	"time"

	"github.com/lumeo/admin-backend/internal/common"
	"github.com/lumeo/admin-backend/internal/domain"
)

// WorkflowService enforces the content publication state machine. It mutates
// the item in memory only; persisting the result and pairing it with a
// version record is the LifecycleService's job, so a failed guard leaves the
// item untouched.
type WorkflowService struct {
	now func() time.Time
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService() *WorkflowService {
	return &WorkflowService{now: time.Now}
}

// SubmitForReview moves a draft into review.
func (s *WorkflowService) SubmitForReview(content domain.Content) error {
	if content.GetStatus() != domain.StatusDraft {
		return fmt.Errorf("%w: only a draft can be submitted for review (current: %s)",
			common.ErrIllegalTransition, content.GetStatus())
	}

	content.SetStatus(domain.StatusReadyForReview)
	content.Touch(s.now())
	return nil
}

// Approve validates content that is under review.
func (s *WorkflowService) Approve(content domain.Content) error {
	if content.GetStatus() != domain.StatusReadyForReview {
		return fmt.Errorf("%w: only content under review can be approved (current: %s)",
			common.ErrIllegalTransition, content.GetStatus())
	}

	content.SetStatus(domain.StatusValidated)
	content.Touch(s.now())
	return nil
}

// Publish makes content live. It accepts any non-published, non-archived
// starting status: drafts and content under review fast-track past the
// review chain. This is intentionally looser than the transition table and
// preserved as product behavior (see AvailableTransitions, which keeps
// advertising the table only).
//
// Products must additionally pass the completeness gate: at least one active
// variant, at least one image, and an SEO record, checked in that order.
func (s *WorkflowService) Publish(content domain.Content, gate *domain.PublishGate) error {
	switch content.GetStatus() {
	case domain.StatusPublished:
		return fmt.Errorf("%w: content is already published", common.ErrIllegalTransition)
	case domain.StatusArchived:
		return fmt.Errorf("%w: archived content cannot be republished directly", common.ErrIllegalTransition)
	}

	if content.ContentKind() == domain.KindProduct {
		if err := checkPublishGate(gate); err != nil {
			return err
		}
	}

	content.SetStatus(domain.StatusPublished)
	if content.GetPublishedAt() == nil {
		at := s.now()
		content.SetPublishedAt(&at)
	}
	content.Touch(s.now())
	return nil
}

// Unpublish takes published content back to draft and clears publishedAt.
func (s *WorkflowService) Unpublish(content domain.Content) error {
	if content.GetStatus() != domain.StatusPublished {
		return fmt.Errorf("%w: only published content can be unpublished (current: %s)",
			common.ErrIllegalTransition, content.GetStatus())
	}

	content.SetStatus(domain.StatusDraft)
	content.SetPublishedAt(nil)
	content.Touch(s.now())
	return nil
}

// Archive retires content from any non-archived status. publishedAt is left
// untouched so unarchiving a once-published item keeps its history.
func (s *WorkflowService) Archive(content domain.Content) error {
	if content.GetStatus() == domain.StatusArchived {
		return common.ErrAlreadyArchived
	}

	content.SetStatus(domain.StatusArchived)
	at := s.now()
	content.SetArchivedAt(&at)
	content.Touch(s.now())
	return nil
}

// Unarchive returns archived content to draft and clears archivedAt.
func (s *WorkflowService) Unarchive(content domain.Content) error {
	if content.GetStatus() != domain.StatusArchived {
		return fmt.Errorf("%w: only archived content can be unarchived (current: %s)",
			common.ErrIllegalTransition, content.GetStatus())
	}

	content.SetStatus(domain.StatusDraft)
	content.SetArchivedAt(nil)
	content.Touch(s.now())
	return nil
}

// RejectReview sends content under review back to draft, recording the
// rejection in the metadata bag. Rejections are not versioned.
func (s *WorkflowService) RejectReview(content domain.Content, reason string) error {
	if content.GetStatus() != domain.StatusReadyForReview {
		return fmt.Errorf("%w: only content under review can be rejected (current: %s)",
			common.ErrIllegalTransition, content.GetStatus())
	}

	if err := content.MergeMetadata(map[string]any{
		"rejection_reason": reason,
		"rejected_at":      s.now().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("%w: metadata: %v", common.ErrInvalidInput, err)
	}

	content.SetStatus(domain.StatusDraft)
	content.Touch(s.now())
	return nil
}

// AvailableTransitions returns the statuses reachable from the item's
// current status per the transition table. Advisory only: Publish applies
// its own broader precondition and does not consult this.
func (s *WorkflowService) AvailableTransitions(content domain.Content) []domain.ContentStatus {
	return domain.TransitionsFrom(content.GetStatus())
}

// CanTransition reports whether the transition table permits the move.
func (s *WorkflowService) CanTransition(content domain.Content, target domain.ContentStatus) bool {
	return domain.CanTransition(content.GetStatus(), target)
}

func checkPublishGate(gate *domain.PublishGate) error {
	if gate == nil || gate.ActiveVariants == 0 {
		return &common.PublicationGateError{Condition: common.GateConditionVariants}
	}
	if gate.Images == 0 {
		return &common.PublicationGateError{Condition: common.GateConditionImages}
	}
	if !gate.HasSeo {
		return &common.PublicationGateError{Condition: common.GateConditionSeo}
	}
	return nil
}
