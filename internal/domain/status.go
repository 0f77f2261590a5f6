package domain

// ContentStatus is the publication state of a product or article.
type ContentStatus string

const (
	StatusDraft          ContentStatus = "draft"
	StatusReadyForReview ContentStatus = "ready_for_review"
	StatusValidated      ContentStatus = "validated"
	StatusPublished      ContentStatus = "published"
	StatusArchived       ContentStatus = "archived"
)

// AllStatuses returns every content status in workflow order.
func AllStatuses() []ContentStatus {
	return []ContentStatus{
		StatusDraft,
		StatusReadyForReview,
		StatusValidated,
		StatusPublished,
		StatusArchived,
	}
}

// Valid reports whether s is a known content status.
func (s ContentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusReadyForReview, StatusValidated, StatusPublished, StatusArchived:
		return true
	}
	return false
}

func (s ContentStatus) String() string { return string(s) }

// allowedTransitions is the single source of truth for legal status moves.
// Publish has a deliberately broader precondition than this table (see
// WorkflowService.Publish); the table governs CanTransition and
// TransitionsFrom only.
var allowedTransitions = map[ContentStatus][]ContentStatus{
	StatusDraft:          {StatusReadyForReview, StatusArchived},
	StatusReadyForReview: {StatusValidated, StatusDraft, StatusArchived},
	StatusValidated:      {StatusPublished, StatusDraft, StatusArchived},
	StatusPublished:      {StatusDraft, StatusArchived},
	StatusArchived:       {StatusDraft},
}

// CanTransition reports whether moving from one status to another is allowed
// by the transition table.
func CanTransition(from, to ContentStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionsFrom returns the statuses reachable from the given status.
// The returned slice is a copy; callers may mutate it freely.
func TransitionsFrom(from ContentStatus) []ContentStatus {
	targets := allowedTransitions[from]
	out := make([]ContentStatus, len(targets))
	copy(out, targets)
	return out
}
