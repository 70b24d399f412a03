package services_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/urocareerz/urocareerz-api/config"
	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/services"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Session.JWTSecret = "test-secret-with-enough-length-123"
	cfg.Session.JWTIssuer = "urocareerz-test"
	cfg.Session.CookieName = "urocareerz_session"
	cfg.Session.SessionTTLHours = 24
	cfg.OTP.TTLMinutes = 10
	cfg.Admin.FallbackEmail = "fallback@urocareerz.com"
	cfg.Frontend.BaseURL = "https://app.urocareerz.com"
	cfg.Storage.MaxUploadBytes = 5 << 20
	return cfg
}

func adminActor() models.Actor {
	return models.Actor{UserID: "admin-1", Email: "admin@urocareerz.com", Role: models.RoleAdmin, IPAddress: "10.0.0.1", UserAgent: "test"}
}

func mentorActor() models.Actor {
	return models.Actor{UserID: "mentor-1", Email: "mentor@example.com", Role: models.RoleMentor}
}

func menteeActor() models.Actor {
	return models.Actor{UserID: "mentee-1", Email: "mentee@example.com", Role: models.RoleMentee}
}

// newAudit returns an AuditService whose repository accepts any entry.
func newAudit() (*services.AuditService, *MockAuditRepository) {
	repo := new(MockAuditRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	return services.NewAuditService(repo), repo
}

// newNotifier returns a NotificationService backed by a recording sender.
func newNotifier() (*services.NotificationService, *fakeSender) {
	sender := &fakeSender{failFor: map[string]error{}}
	return services.NewNotificationService(sender, "https://app.urocareerz.com"), sender
}

// auditActions returns the actions passed to the audit repository.
func auditActions(repo *MockAuditRepository) []models.AuditAction {
	var out []models.AuditAction
	for _, call := range repo.Calls {
		if call.Method == "Create" {
			out = append(out, call.Arguments.Get(1).(*models.AuditLog).Action)
		}
	}
	return out
}
