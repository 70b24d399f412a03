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

// AdminUserHandler serves account administration
type AdminUserHandler struct {
	service services.AdminUserServiceInterface
}

func NewAdminUserHandler(service services.AdminUserServiceInterface) *AdminUserHandler {
	return &AdminUserHandler{service: service}
}

// List handles GET /api/admin/users?status&role&q&includeDeleted
func (h *AdminUserHandler) List(c *gin.Context) {
	p, ok := bindPagination(c)
	if !ok {
		return
	}

	filter := models.UserFilter{
		Query:      strings.TrimSpace(c.Query("q")),
		Pagination: p,
	}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := models.UserStatus(strings.ToUpper(raw))
		if !status.IsValid() {
			respondError(c, http.StatusBadRequest, "Invalid status filter", fmt.Errorf("unknown status %q", raw))
			return
		}
		filter.Status = status
	}
	if raw := strings.TrimSpace(c.Query("role")); raw != "" {
		role := models.Role(strings.ToUpper(raw))
		if !role.IsValid() {
			respondError(c, http.StatusBadRequest, "Invalid role filter", fmt.Errorf("unknown role %q", raw))
			return
		}
		filter.Role = role
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

// Get handles GET /api/admin/users/:id
func (h *AdminUserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Approve handles POST /api/admin/users/:id/approve
func (h *AdminUserHandler) Approve(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.service.Approve(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Reject handles POST /api/admin/users/:id/reject
func (h *AdminUserHandler) Reject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.RejectUserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	user, err := h.service.Reject(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateRole handles PUT /api/admin/users/:id/role
func (h *AdminUserHandler) UpdateRole(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.service.UpdateRole(c.Request.Context(), actor, id, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateStatus handles PUT /api/admin/users/:id/status
func (h *AdminUserHandler) UpdateStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.service.UpdateStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
