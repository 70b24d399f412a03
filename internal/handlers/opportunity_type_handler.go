package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/services"
)

type OpportunityTypeHandler struct {
	service services.OpportunityTypeServiceInterface
}

func NewOpportunityTypeHandler(service services.OpportunityTypeServiceInterface) *OpportunityTypeHandler {
	return &OpportunityTypeHandler{service: service}
}

// ListActive handles GET /api/opportunity-types
func (h *OpportunityTypeHandler) ListActive(c *gin.Context) {
	types, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=60")
	c.JSON(http.StatusOK, gin.H{"types": types})
}

// ListAll handles GET /api/admin/opportunity-types
func (h *OpportunityTypeHandler) ListAll(c *gin.Context) {
	types, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"types": types})
}

// Create handles POST /api/admin/opportunity-types
func (h *OpportunityTypeHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var input models.OpportunityTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), actor, &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/admin/opportunity-types/:id
func (h *OpportunityTypeHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input models.OpportunityTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), actor, id, &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/admin/opportunity-types/:id
func (h *OpportunityTypeHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
