package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/services"
)

func newDiscussionRouter(svc *MockDiscussionService, session *models.Session) http.Handler {
	handler := NewDiscussionHandler(svc)
	router := newRouter(session)
	router.GET("/api/discussions", handler.List)
	router.GET("/api/discussions/:id", handler.Get)
	router.POST("/api/discussions", handler.Create)
	router.PUT("/api/discussions/:id/status", handler.UpdateStatus)
	router.DELETE("/api/discussions/:id", handler.Delete)
	router.POST("/api/discussions/:id/comments", handler.AddComment)
	router.DELETE("/api/discussions/:id/comments/:commentId", handler.DeleteComment)
	router.POST("/api/discussions/:id/view", handler.RecordView)
	return router
}

func TestDiscussionHandler_List(t *testing.T) {
	svc := new(MockDiscussionService)
	want := models.ThreadFilter{
		Status:     models.DiscussionActive,
		Category:   "RESEARCH",
		Query:      "stones",
		Pagination: models.Pagination{Page: 1, Limit: models.DefaultPageLimit},
	}
	svc.On("List", mock.Anything, want).Return(models.NewListResult[*models.DiscussionThread](nil, 0, want.Pagination), nil)

	w := perform(newDiscussionRouter(svc, menteeSession), http.MethodGet, "/api/discussions?status=active&category=research&q=stones", "")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDiscussionHandler_Get(t *testing.T) {
	svc := new(MockDiscussionService)
	svc.On("Get", mock.Anything, "d-1").Return(&models.ThreadDetail{
		Thread:   &models.DiscussionThread{ID: "d-1", Status: models.DiscussionActive},
		Comments: []*models.DiscussionComment{},
	}, nil)

	w := perform(newDiscussionRouter(svc, menteeSession), http.MethodGet, "/api/discussions/d-1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"comments":[]`)
}

func TestDiscussionHandler_Create_InvalidCategory(t *testing.T) {
	svc := new(MockDiscussionService)

	w := perform(newDiscussionRouter(svc, menteeSession), http.MethodPost, "/api/discussions",
		`{"title":"Match advice","content":"Any tips?","category":"GOSSIP"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Category must be one of")
}

func TestDiscussionHandler_Create(t *testing.T) {
	svc := new(MockDiscussionService)
	svc.On("Create", mock.Anything, actorFor(menteeSession), mock.Anything).
		Return(&models.DiscussionThread{ID: "d-1", Status: models.DiscussionActive}, nil)

	w := perform(newDiscussionRouter(svc, menteeSession), http.MethodPost, "/api/discussions",
		`{"title":"Match advice","content":"Any tips?","category":"CAREER_ADVICE","tags":["match"]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDiscussionHandler_AddComment_Closed(t *testing.T) {
	svc := new(MockDiscussionService)
	svc.On("AddComment", mock.Anything, mock.Anything, "d-1", &models.CreateCommentRequest{Content: "late reply"}).
		Return(nil, services.ErrDiscussionClosed)

	w := perform(newDiscussionRouter(svc, menteeSession), http.MethodPost, "/api/discussions/d-1/comments", `{"content":"late reply"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Discussion is not accepting comments"}`, w.Body.String())
}

func TestDiscussionHandler_UpdateStatus(t *testing.T) {
	svc := new(MockDiscussionService)
	svc.On("UpdateStatus", mock.Anything, actorFor(adminSession), "d-1", models.DiscussionArchived).
		Return(&models.DiscussionThread{ID: "d-1", Status: models.DiscussionArchived}, nil)
	router := newDiscussionRouter(svc, adminSession)

	assert.Equal(t, http.StatusOK, perform(router, http.MethodPut, "/api/discussions/d-1/status", `{"status":"ARCHIVED"}`).Code)
	assert.Equal(t, http.StatusBadRequest, perform(router, http.MethodPut, "/api/discussions/d-1/status", `{"status":"ACTIVE"}`).Code)
	svc.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestDiscussionHandler_Deletes(t *testing.T) {
	svc := new(MockDiscussionService)
	svc.On("Delete", mock.Anything, mock.Anything, "d-1").Return(services.ErrForbidden)
	svc.On("DeleteComment", mock.Anything, mock.Anything, "d-1", "c-1").Return(nil)
	router := newDiscussionRouter(svc, menteeSession)

	assert.Equal(t, http.StatusForbidden, perform(router, http.MethodDelete, "/api/discussions/d-1", "").Code)
	assert.Equal(t, http.StatusOK, perform(router, http.MethodDelete, "/api/discussions/d-1/comments/c-1", "").Code)
}

func TestDiscussionHandler_RecordView(t *testing.T) {
	svc := new(MockDiscussionService)
	svc.On("RecordView", mock.Anything, actorFor(menteeSession), "d-1").Return(&models.ViewResult{Counted: false, ViewCount: 7}, nil)

	w := perform(newDiscussionRouter(svc, menteeSession), http.MethodPost, "/api/discussions/d-1/view", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"counted":false,"viewCount":7}`, w.Body.String())
}
