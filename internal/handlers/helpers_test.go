package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/urocareerz/urocareerz-api/internal/middleware"
	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)

	if err := logger.Initialize(logger.Config{Level: "error", Environment: "development"}); err != nil {
		panic(err)
	}
}

var (
	adminSession  = &models.Session{UserID: "admin-1", Email: "admin@urocareerz.com", Role: models.RoleAdmin}
	mentorSession = &models.Session{UserID: "mentor-1", Email: "mentor@example.com", Role: models.RoleMentor}
	menteeSession = &models.Session{UserID: "mentee-1", Email: "mentee@example.com", Role: models.RoleMentee}
)

// withSession stands in for SessionMiddleware.
func withSession(session *models.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session != nil {
			c.Set(middleware.SessionContextKey, session)
		}
		c.Next()
	}
}

func newRouter(session *models.Session) *gin.Engine {
	router := gin.New()
	router.Use(withSession(session))
	return router
}

func perform(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func actorFor(session *models.Session) interface{} {
	return mock.MatchedBy(func(a models.Actor) bool {
		return a.UserID == session.UserID && a.Role == session.Role && a.IPAddress != ""
	})
}
