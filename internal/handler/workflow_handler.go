package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumeo/admin-backend/internal/common"
	"github.com/lumeo/admin-backend/internal/domain"
	"github.com/lumeo/admin-backend/internal/service"
)

// WorkflowHandler exposes the lifecycle transitions over HTTP. Handlers are
// kind-bound factories so products and articles register explicit routes
// against the same logic.
type WorkflowHandler struct {
	lifecycle *service.LifecycleService
}

// NewWorkflowHandler creates a new WorkflowHandler
func NewWorkflowHandler(lifecycle *service.LifecycleService) *WorkflowHandler {
	return &WorkflowHandler{lifecycle: lifecycle}
}

// SubmitForReview handles POST /:id/workflow/submit-review
func (h *WorkflowHandler) SubmitForReview(kind domain.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.lifecycle.SubmitForReview(c.Request.Context(), kind, c.Param("id"), actorFrom(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		common.SuccessResponse(c, result, nil)
	}
}

// Approve handles POST /:id/workflow/approve
func (h *WorkflowHandler) Approve(kind domain.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.lifecycle.Approve(c.Request.Context(), kind, c.Param("id"), actorFrom(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		common.SuccessResponse(c, result, nil)
	}
}

// Publish handles POST /:id/workflow/publish
func (h *WorkflowHandler) Publish(kind domain.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.lifecycle.Publish(c.Request.Context(), kind, c.Param("id"), actorFrom(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		common.SuccessResponse(c, result, nil)
	}
}

// Unpublish handles POST /:id/workflow/unpublish
func (h *WorkflowHandler) Unpublish(kind domain.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.lifecycle.Unpublish(c.Request.Context(), kind, c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		common.SuccessResponse(c, result, nil)
	}
}

// Archive handles POST /:id/workflow/archive
func (h *WorkflowHandler) Archive(kind domain.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.lifecycle.Archive(c.Request.Context(), kind, c.Param("id"), actorFrom(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		common.SuccessResponse(c, result, nil)
	}
}

// Unarchive handles POST /:id/workflow/unarchive
func (h *WorkflowHandler) Unarchive(kind domain.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.lifecycle.Unarchive(c.Request.Context(), kind, c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		common.SuccessResponse(c, result, nil)
	}
}

type rejectReviewRequest struct {
	Reason string `json:"reason"`
}

// RejectReview handles POST /:id/workflow/reject-review
func (h *WorkflowHandler) RejectReview(kind domain.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req rejectReviewRequest
		_ = c.ShouldBindJSON(&req)
		if req.Reason == "" {
			req.Reason = "Rejected without reason"
		}

		result, err := h.lifecycle.RejectReview(c.Request.Context(), kind, c.Param("id"), req.Reason)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		common.SuccessResponse(c, result, nil)
	}
}

// Transitions handles GET /:id/workflow/transitions
func (h *WorkflowHandler) Transitions(kind domain.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, transitions, err := h.lifecycle.AvailableTransitions(c.Request.Context(), kind, c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		common.SuccessResponse(c, gin.H{
			"current_status":        current,
			"available_transitions": transitions,
		}, nil)
	}
}

// actorFrom extracts the acting operator's id propagated by the auth layer.
func actorFrom(c *gin.Context) *string {
	actor := c.GetHeader("X-Actor-ID")
	if actor == "" {
		return nil
	}
	return &actor
}

// respondServiceError maps service errors to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var gateErr *common.PublicationGateError
	switch {
	case errors.As(err, &gateErr):
		common.ErrorResponse(c, http.StatusUnprocessableEntity, gateErr.Error(), err)
	case errors.Is(err, common.ErrIllegalTransition),
		errors.Is(err, common.ErrAlreadyArchived),
		errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, common.ErrContentNotFound),
		errors.Is(err, common.ErrVersionNotFound),
		errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, common.ErrVersionConflict):
		common.ErrorResponse(c, http.StatusConflict, err.Error(), nil)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "internal error", err)
	}
}
