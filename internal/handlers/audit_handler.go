package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/services"
)

type AuditHandler struct {
	service services.AuditServiceInterface
}

func NewAuditHandler(service services.AuditServiceInterface) *AuditHandler {
	return &AuditHandler{service: service}
}

// List handles GET /api/admin/audit-logs?action&entityType&userId&page&limit
func (h *AuditHandler) List(c *gin.Context) {
	p, ok := bindPagination(c)
	if !ok {
		return
	}

	filter := models.AuditFilter{
		Action:     models.AuditAction(strings.ToUpper(strings.TrimSpace(c.Query("action")))),
		EntityType: models.AuditEntity(strings.ToUpper(strings.TrimSpace(c.Query("entityType")))),
		UserID:     strings.TrimSpace(c.Query("userId")),
		Pagination: p,
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
