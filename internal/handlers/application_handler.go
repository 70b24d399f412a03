package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/services"
)

type ApplicationHandler struct {
	service services.ApplicationServiceInterface
}

func NewApplicationHandler(service services.ApplicationServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply handles POST /api/opportunities/:id/applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	opportunityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	application, err := h.service.Apply(c.Request.Context(), actor, opportunityID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

// List handles GET /api/applications?status&opportunityId&menteeId
// The service narrows the result to what the caller's role may see.
func (h *ApplicationHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	p, ok := bindPagination(c)
	if !ok {
		return
	}

	filter := models.ApplicationFilter{
		OpportunityID: strings.TrimSpace(c.Query("opportunityId")),
		MenteeID:      strings.TrimSpace(c.Query("menteeId")),
		Pagination:    p,
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := models.ApplicationStatus(strings.ToUpper(raw))
		if !status.IsValid() {
			respondError(c, http.StatusBadRequest, "Invalid status filter", fmt.Errorf("unknown status %q", raw))
			return
		}
		filter.Status = status
	}

	result, err := h.service.List(c.Request.Context(), actor, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	application, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// Withdraw handles POST /api/applications/:id/withdraw
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	application, err := h.service.Withdraw(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// UpdateStatus handles PUT /api/applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	application, err := h.service.UpdateStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// ResumeURL handles GET /api/applications/:id/resume-url
func (h *ApplicationHandler) ResumeURL(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	url, err := h.service.ResumeURL(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, url)
}
