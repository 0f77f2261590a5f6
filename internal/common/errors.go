package common

import (
	"errors"
	"fmt"
)

// Business logic errors
var (
	// General errors
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")

	// Content errors
	ErrContentNotFound = errors.New("content not found")

	// Workflow errors
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrAlreadyArchived   = errors.New("content is already archived")

	// Version ledger errors
	ErrVersionConflict = errors.New("version number conflict")
	ErrVersionNotFound = errors.New("version not found")
)

// Publish-gate conditions, in check order.
const (
	GateConditionVariants = "variants"
	GateConditionImages   = "images"
	GateConditionSeo      = "seo"
)

// PublicationGateError reports the first unmet completeness condition
// blocking a product publication.
type PublicationGateError struct {
	Condition string
}

func (e *PublicationGateError) Error() string {
	switch e.Condition {
	case GateConditionVariants:
		return "publication requires at least one active variant"
	case GateConditionImages:
		return "publication requires at least one image"
	case GateConditionSeo:
		return "publication requires an SEO record"
	}
	return fmt.Sprintf("publication gate failed: %s", e.Condition)
}
