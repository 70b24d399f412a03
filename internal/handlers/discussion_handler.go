package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/services"
)

type DiscussionHandler struct {
	service services.DiscussionServiceInterface
}

func NewDiscussionHandler(service services.DiscussionServiceInterface) *DiscussionHandler {
	return &DiscussionHandler{service: service}
}

// List handles GET /api/discussions?status&category&q
func (h *DiscussionHandler) List(c *gin.Context) {
	p, ok := bindPagination(c)
	if !ok {
		return
	}

	filter := models.ThreadFilter{
		Category:   strings.ToUpper(strings.TrimSpace(c.Query("category"))),
		Query:      strings.TrimSpace(c.Query("q")),
		Pagination: p,
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := models.DiscussionStatus(strings.ToUpper(raw))
		if !status.IsValid() {
			respondError(c, http.StatusBadRequest, "Invalid status filter", fmt.Errorf("unknown status %q", raw))
			return
		}
		filter.Status = status
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/discussions/:id
func (h *DiscussionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Create handles POST /api/discussions
func (h *DiscussionHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req models.CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	thread, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, thread)
}

// UpdateStatus handles PUT /api/discussions/:id/status
func (h *DiscussionHandler) UpdateStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateThreadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	thread, err := h.service.UpdateStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, thread)
}

// Delete handles DELETE /api/discussions/:id
func (h *DiscussionHandler) Delete(c *gin.Context) {
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

// AddComment handles POST /api/discussions/:id/comments
func (h *DiscussionHandler) AddComment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// DeleteComment handles DELETE /api/discussions/:id/comments/:commentId
func (h *DiscussionHandler) DeleteComment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), actor, id, commentID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RecordView handles POST /api/discussions/:id/view
func (h *DiscussionHandler) RecordView(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.RecordView(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
