package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/services"
)

// FileHandler issues presigned URLs so browsers talk to object storage directly
type FileHandler struct {
	service services.FileServiceInterface
}

func NewFileHandler(service services.FileServiceInterface) *FileHandler {
	return &FileHandler{service: service}
}

// UploadURL handles POST /api/files/upload-url
func (h *FileHandler) UploadURL(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	url, err := h.service.CreateUploadURL(c.Request.Context(), session, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, url)
}

// DownloadURL handles GET /api/files/download-url?key=
func (h *FileHandler) DownloadURL(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	key := strings.TrimSpace(c.Query("key"))
	if key == "" {
		respondError(c, http.StatusBadRequest, "key is required", errors.New("missing query param: key"))
		return
	}

	url, err := h.service.CreateDownloadURL(c.Request.Context(), session, key)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, url)
}
