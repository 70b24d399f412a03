package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/services"
	"github.com/urocareerz/urocareerz-api/pkg/storage"
)

func newApplicationRouter(svc *MockApplicationService, session *models.Session) http.Handler {
	handler := NewApplicationHandler(svc)
	router := newRouter(session)
	router.POST("/api/opportunities/:id/applications", handler.Apply)
	router.GET("/api/applications", handler.List)
	router.GET("/api/applications/:id", handler.Get)
	router.POST("/api/applications/:id/withdraw", handler.Withdraw)
	router.PUT("/api/applications/:id/status", handler.UpdateStatus)
	router.GET("/api/applications/:id/resume-url", handler.ResumeURL)
	return router
}

func TestApplicationHandler_Apply(t *testing.T) {
	svc := new(MockApplicationService)
	svc.On("Apply", mock.Anything, actorFor(menteeSession), "o-1", &models.CreateApplicationRequest{CoverLetter: "Hello"}).
		Return(&models.Application{ID: "a-1", Status: models.ApplicationPending}, nil)

	w := perform(newApplicationRouter(svc, menteeSession), http.MethodPost, "/api/opportunities/o-1/applications", `{"coverLetter":"Hello"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestApplicationHandler_Apply_EmptyBody(t *testing.T) {
	svc := new(MockApplicationService)
	svc.On("Apply", mock.Anything, mock.Anything, "o-1", &models.CreateApplicationRequest{}).
		Return(&models.Application{ID: "a-1"}, nil)

	w := perform(newApplicationRouter(svc, menteeSession), http.MethodPost, "/api/opportunities/o-1/applications", "")

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestApplicationHandler_Apply_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"duplicate", services.ErrAlreadyApplied, http.StatusConflict},
		{"closed", services.ErrNotAcceptingApps, http.StatusBadRequest},
		{"mentor", services.ErrForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockApplicationService)
			svc.On("Apply", mock.Anything, mock.Anything, "o-1", mock.Anything).Return(nil, tt.err)

			w := perform(newApplicationRouter(svc, menteeSession), http.MethodPost, "/api/opportunities/o-1/applications", `{}`)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestApplicationHandler_List(t *testing.T) {
	svc := new(MockApplicationService)
	want := models.ApplicationFilter{
		OpportunityID: "o-1",
		Status:        models.ApplicationAccepted,
		Pagination:    models.Pagination{Page: 1, Limit: models.DefaultPageLimit},
	}
	svc.On("List", mock.Anything, actorFor(mentorSession), want).
		Return(models.NewListResult([]*models.Application{{ID: "a-1"}}, 1, want.Pagination), nil)

	w := perform(newApplicationRouter(svc, mentorSession), http.MethodGet, "/api/applications?opportunityId=o-1&status=accepted", "")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestApplicationHandler_List_BadStatus(t *testing.T) {
	svc := new(MockApplicationService)

	w := perform(newApplicationRouter(svc, mentorSession), http.MethodGet, "/api/applications?status=lost", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplicationHandler_UpdateStatus(t *testing.T) {
	svc := new(MockApplicationService)
	svc.On("UpdateStatus", mock.Anything, actorFor(mentorSession), "a-1", models.ApplicationAccepted).
		Return(&models.Application{ID: "a-1", Status: models.ApplicationAccepted}, nil)
	router := newApplicationRouter(svc, mentorSession)

	w := perform(router, http.MethodPut, "/api/applications/a-1/status", `{"status":"ACCEPTED"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(router, http.MethodPut, "/api/applications/a-1/status", `{"status":"WITHDRAWN"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestApplicationHandler_WithdrawAndGet(t *testing.T) {
	svc := new(MockApplicationService)
	svc.On("Withdraw", mock.Anything, actorFor(menteeSession), "a-1").Return(nil, services.ErrInvalidTransition)
	svc.On("Get", mock.Anything, actorFor(menteeSession), "a-2").Return(nil, services.ErrApplicationNotFound)
	router := newApplicationRouter(svc, menteeSession)

	assert.Equal(t, http.StatusBadRequest, perform(router, http.MethodPost, "/api/applications/a-1/withdraw", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodGet, "/api/applications/a-2", "").Code)
}

func TestApplicationHandler_ResumeURL(t *testing.T) {
	svc := new(MockApplicationService)
	svc.On("ResumeURL", mock.Anything, mock.Anything, "a-1").Return(&storage.PresignedURL{
		URL: "https://files.example.com/users/mentee-1/resume/cv.pdf?X-Amz-Signature=abc", Method: http.MethodGet,
		Key: "users/mentee-1/resume/cv.pdf", ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil)
	svc.On("ResumeURL", mock.Anything, mock.Anything, "a-2").Return(nil, services.ErrNoResume)
	router := newApplicationRouter(svc, mentorSession)

	w := perform(router, http.MethodGet, "/api/applications/a-1/resume-url", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"method":"GET"`)

	w = perform(router, http.MethodGet, "/api/applications/a-2/resume-url", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
