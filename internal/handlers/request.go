package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/urocareerz/urocareerz-api/internal/middleware"
	"github.com/urocareerz/urocareerz-api/internal/models"
)

// requireSession returns the session stored by SessionMiddleware, writing a
// 401 when it is missing.
func requireSession(c *gin.Context) (*models.Session, bool) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return nil, false
	}
	return session, true
}

// optionalSession returns the session if OptionalSessionMiddleware found one.
func optionalSession(c *gin.Context) *models.Session {
	session, err := middleware.GetSession(c)
	if err != nil {
		return nil
	}
	return session
}

// requireActor builds an audit actor from the session and request metadata.
func requireActor(c *gin.Context) (models.Actor, bool) {
	session, ok := requireSession(c)
	if !ok {
		return models.Actor{}, false
	}
	return models.Actor{
		UserID:    session.UserID,
		Email:     session.Email,
		Role:      session.Role,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}, true
}

// pathID reads a required route parameter.
func pathID(c *gin.Context, name string) (string, bool) {
	id := strings.TrimSpace(c.Param(name))
	if id == "" {
		respondError(c, http.StatusBadRequest, "Invalid "+name, errors.New("missing route param: "+name))
		return "", false
	}
	return id, true
}

// bindPagination reads page and limit from the query string.
func bindPagination(c *gin.Context) (models.Pagination, bool) {
	var p models.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid pagination", gin.H{"message": err.Error()}, err)
		return models.Pagination{}, false
	}
	return p.Normalize(), true
}

// optionalBoolQuery parses a tri-state boolean query parameter.
func optionalBoolQuery(c *gin.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
