package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/services"
)

type AnnouncementHandler struct {
	service services.AnnouncementServiceInterface
}

func NewAnnouncementHandler(service services.AnnouncementServiceInterface) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// Send handles POST /api/admin/announcements
func (h *AnnouncementHandler) Send(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req models.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	announcement, err := h.service.Send(c.Request.Context(), actor, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

// List handles GET /api/admin/announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	p, ok := bindPagination(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
