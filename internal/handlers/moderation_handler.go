package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/services"
)

// ModerationHandler serves the admin review queue for opportunities
type ModerationHandler struct {
	service services.ModerationServiceInterface
}

func NewModerationHandler(service services.ModerationServiceInterface) *ModerationHandler {
	return &ModerationHandler{service: service}
}

// List handles GET /api/admin/opportunities
// status accepts a comma-separated list; omitted means every status.
func (h *ModerationHandler) List(c *gin.Context) {
	filter, ok := bindOpportunityFilter(c)
	if !ok {
		return
	}

	includeDeleted, err := optionalBoolQuery(c, "includeDeleted")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid includeDeleted filter", err)
		return
	}
	filter.IncludeDeleted = includeDeleted != nil && *includeDeleted

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Approve handles POST /api/admin/opportunities/:id/approve
func (h *ModerationHandler) Approve(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// The body is optional; an empty one approves without conversion.
	var req models.ApproveOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	result, err := h.service.Approve(c.Request.Context(), actor, id, req.Convert)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Reject handles POST /api/admin/opportunities/:id/reject
func (h *ModerationHandler) Reject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.RejectOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	result, err := h.service.Reject(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
