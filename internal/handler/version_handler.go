package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumeo/admin-backend/internal/common"
	"github.com/lumeo/admin-backend/internal/domain"
	"github.com/lumeo/admin-backend/internal/service"
)

// VersionHandler exposes the version ledger: history, manual snapshots and
// rollback.
type VersionHandler struct {
	lifecycle *service.LifecycleService
}

// NewVersionHandler creates a new VersionHandler
func NewVersionHandler(lifecycle *service.LifecycleService) *VersionHandler {
	return &VersionHandler{lifecycle: lifecycle}
}

// History handles GET /:id/versions
func (h *VersionHandler) History(kind domain.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		versions, err := h.lifecycle.History(c.Request.Context(), kind, id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		common.SuccessResponse(c, gin.H{
			"entity_id":      id,
			"total_versions": len(versions),
			"versions":       versions,
		}, nil)
	}
}

type snapshotRequest struct {
	Reason *string `json:"reason"`
}

// Snapshot handles POST /:id/versions (manual snapshot)
func (h *VersionHandler) Snapshot(kind domain.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req snapshotRequest
		_ = c.ShouldBindJSON(&req)

		version, err := h.lifecycle.Snapshot(c.Request.Context(), kind, c.Param("id"), actorFrom(c), req.Reason)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		common.CreatedResponse(c, version)
	}
}

// Rollback handles POST /:id/versions/:versionNumber/rollback
func (h *VersionHandler) Rollback(kind domain.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		versionNumber, err := strconv.Atoi(c.Param("versionNumber"))
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "version number must be an integer", err)
			return
		}

		result, err := h.lifecycle.Rollback(c.Request.Context(), kind, c.Param("id"), versionNumber)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		common.SuccessResponse(c, result, nil)
	}
}
