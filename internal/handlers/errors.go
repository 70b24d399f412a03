package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
// so the observability middleware can include the reason in the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

var errorCategories = []struct {
	category error
	status   int
}{
	{apperrors.ErrInvalidInput, http.StatusBadRequest},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrAccessDenied, http.StatusForbidden},
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrConflict, http.StatusConflict},
}

// respondServiceError maps a service error to its HTTP status. Client errors
// carry the sentinel's own message; anything else is a 500.
func respondServiceError(c *gin.Context, err error) {
	for _, ec := range errorCategories {
		if errors.Is(err, ec.category) {
			respondError(c, ec.status, publicMessage(err, ec.category), err)
			return
		}
	}
	respondError(c, http.StatusInternalServerError, "Internal server error", err)
}

// publicMessage strips the category suffix from a sentinel message:
// "opportunity not found: not found" becomes "Opportunity not found".
func publicMessage(err, category error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+category.Error())
	if msg == "" {
		msg = category.Error()
	}
	r := []rune(msg)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// respondBindError reports a request body or query that failed binding.
func respondBindError(c *gin.Context, err error) {
	if details := ParseValidationErrors(err); len(details) > 0 {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", details, err)
		return
	}
	respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", gin.H{"message": err.Error()}, err)
}
