package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/services"
)

type OpportunityHandler struct {
	service services.OpportunityServiceInterface
}

func NewOpportunityHandler(service services.OpportunityServiceInterface) *OpportunityHandler {
	return &OpportunityHandler{service: service}
}

// bindOpportunityFilter reads the shared list filters:
// q, typeId, location, remote, experienceLevel, creatorRole, status, page, limit.
func bindOpportunityFilter(c *gin.Context) (models.OpportunityFilter, bool) {
	p, ok := bindPagination(c)
	if !ok {
		return models.OpportunityFilter{}, false
	}

	filter := models.OpportunityFilter{
		Query:           strings.TrimSpace(c.Query("q")),
		TypeID:          strings.TrimSpace(c.Query("typeId")),
		Location:        strings.TrimSpace(c.Query("location")),
		ExperienceLevel: strings.TrimSpace(c.Query("experienceLevel")),
		Pagination:      p,
	}

	remote, err := optionalBoolQuery(c, "remote")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid remote filter", err)
		return models.OpportunityFilter{}, false
	}
	filter.Remote = remote

	if raw := strings.ToUpper(strings.TrimSpace(c.Query("creatorRole"))); raw != "" {
		role := models.Role(raw)
		if !role.IsValid() {
			respondError(c, http.StatusBadRequest, "Invalid creatorRole filter", fmt.Errorf("unknown role %q", raw))
			return models.OpportunityFilter{}, false
		}
		filter.CreatorRole = role
	}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			status := models.OpportunityStatus(strings.ToUpper(strings.TrimSpace(part)))
			if !status.IsValid() {
				respondError(c, http.StatusBadRequest, "Invalid status filter", fmt.Errorf("unknown status %q", part))
				return models.OpportunityFilter{}, false
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	return filter, true
}

// List handles GET /api/opportunities
func (h *OpportunityHandler) List(c *gin.Context) {
	filter, ok := bindOpportunityFilter(c)
	if !ok {
		return
	}

	result, err := h.service.ListPublic(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/opportunities/:id
func (h *OpportunityHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	opportunity, err := h.service.Get(c.Request.Context(), optionalSession(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, opportunity)
}

// Create handles POST /api/opportunities
func (h *OpportunityHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var input models.OpportunityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	opportunity, err := h.service.Create(c.Request.Context(), actor, &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, opportunity)
}

// ListMine handles GET /api/opportunities/mine
func (h *OpportunityHandler) ListMine(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	filter, ok := bindOpportunityFilter(c)
	if !ok {
		return
	}

	result, err := h.service.ListMine(c.Request.Context(), session.UserID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Update handles PUT /api/opportunities/:id
func (h *OpportunityHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input models.OpportunityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	opportunity, err := h.service.Update(c.Request.Context(), actor, id, &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, opportunity)
}

// Delete handles DELETE /api/opportunities/:id
func (h *OpportunityHandler) Delete(c *gin.Context) {
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

// Close handles POST /api/opportunities/:id/close
func (h *OpportunityHandler) Close(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	opportunity, err := h.service.Close(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, opportunity)
}

// Save handles POST /api/opportunities/:id/save
func (h *OpportunityHandler) Save(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Save(c.Request.Context(), session, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// Unsave handles DELETE /api/opportunities/:id/save
func (h *OpportunityHandler) Unsave(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Unsave(c.Request.Context(), session.UserID, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListSaved handles GET /api/saved-opportunities
func (h *OpportunityHandler) ListSaved(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	p, ok := bindPagination(c)
	if !ok {
		return
	}

	result, err := h.service.ListSaved(c.Request.Context(), session.UserID, p)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
