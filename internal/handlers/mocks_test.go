package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/pkg/jwt"
	"github.com/urocareerz/urocareerz-api/pkg/storage"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) RequestLogin(ctx context.Context, email string) (*models.AuthResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) ResendOTP(ctx context.Context, email string) (*models.AuthResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.VerifyOTPResponse, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.VerifyOTPResponse), args.String(1), args.Error(2)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, session *models.Session) (*models.User, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) GetSessionTTL() int { return 86400 }
func (m *MockAuthService) GetCookieName() string { return "urocareerz_session" }
func (m *MockAuthService) GetCookieDomain() string { return "" }
func (m *MockAuthService) GetCookieSecure() bool { return false }
func (m *MockAuthService) GetTokenManager() *jwt.TokenManager { return nil }

type MockOpportunityService struct {
	mock.Mock
}

func (m *MockOpportunityService) ListPublic(ctx context.Context, filter models.OpportunityFilter) (models.ListResult[*models.Opportunity], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(models.ListResult[*models.Opportunity]), args.Error(1)
}

func (m *MockOpportunityService) ListMine(ctx context.Context, userID string, filter models.OpportunityFilter) (models.ListResult[*models.Opportunity], error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(models.ListResult[*models.Opportunity]), args.Error(1)
}

func (m *MockOpportunityService) Get(ctx context.Context, session *models.Session, id string) (*models.Opportunity, error) {
	args := m.Called(ctx, session, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Opportunity), args.Error(1)
}

func (m *MockOpportunityService) Create(ctx context.Context, actor models.Actor, input *models.OpportunityInput) (*models.Opportunity, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Opportunity), args.Error(1)
}

func (m *MockOpportunityService) Update(ctx context.Context, actor models.Actor, id string, input *models.OpportunityInput) (*models.Opportunity, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Opportunity), args.Error(1)
}

func (m *MockOpportunityService) Delete(ctx context.Context, actor models.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockOpportunityService) Close(ctx context.Context, actor models.Actor, id string) (*models.Opportunity, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Opportunity), args.Error(1)
}

func (m *MockOpportunityService) Save(ctx context.Context, session *models.Session, id string) error {
	return m.Called(ctx, session, id).Error(0)
}

func (m *MockOpportunityService) Unsave(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockOpportunityService) ListSaved(ctx context.Context, userID string, p models.Pagination) (models.ListResult[*models.SavedOpportunity], error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).(models.ListResult[*models.SavedOpportunity]), args.Error(1)
}

type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) List(ctx context.Context, filter models.OpportunityFilter) (models.ListResult[*models.Opportunity], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(models.ListResult[*models.Opportunity]), args.Error(1)
}

func (m *MockModerationService) Approve(ctx context.Context, actor models.Actor, id string, convert bool) (*models.ModerationResult, error) {
	args := m.Called(ctx, actor, id, convert)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModerationResult), args.Error(1)
}

func (m *MockModerationService) Reject(ctx context.Context, actor models.Actor, id, reason string) (*models.ModerationResult, error) {
	args := m.Called(ctx, actor, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModerationResult), args.Error(1)
}

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Apply(ctx context.Context, actor models.Actor, opportunityID string, req *models.CreateApplicationRequest) (*models.Application, error) {
	args := m.Called(ctx, actor, opportunityID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) List(ctx context.Context, actor models.Actor, filter models.ApplicationFilter) (models.ListResult[*models.Application], error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).(models.ListResult[*models.Application]), args.Error(1)
}

func (m *MockApplicationService) Get(ctx context.Context, actor models.Actor, id string) (*models.Application, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) Withdraw(ctx context.Context, actor models.Actor, id string) (*models.Application, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.ApplicationStatus) (*models.Application, error) {
	args := m.Called(ctx, actor, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) ResumeURL(ctx context.Context, actor models.Actor, id string) (*storage.PresignedURL, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PresignedURL), args.Error(1)
}

type MockDiscussionService struct {
	mock.Mock
}

func (m *MockDiscussionService) List(ctx context.Context, filter models.ThreadFilter) (models.ListResult[*models.DiscussionThread], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(models.ListResult[*models.DiscussionThread]), args.Error(1)
}

func (m *MockDiscussionService) Get(ctx context.Context, id string) (*models.ThreadDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ThreadDetail), args.Error(1)
}

func (m *MockDiscussionService) Create(ctx context.Context, actor models.Actor, req *models.CreateThreadRequest) (*models.DiscussionThread, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscussionThread), args.Error(1)
}

func (m *MockDiscussionService) UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.DiscussionStatus) (*models.DiscussionThread, error) {
	args := m.Called(ctx, actor, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscussionThread), args.Error(1)
}

func (m *MockDiscussionService) Delete(ctx context.Context, actor models.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockDiscussionService) AddComment(ctx context.Context, actor models.Actor, threadID string, req *models.CreateCommentRequest) (*models.DiscussionComment, error) {
	args := m.Called(ctx, actor, threadID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscussionComment), args.Error(1)
}

func (m *MockDiscussionService) DeleteComment(ctx context.Context, actor models.Actor, threadID, commentID string) error {
	return m.Called(ctx, actor, threadID, commentID).Error(0)
}

func (m *MockDiscussionService) RecordView(ctx context.Context, actor models.Actor, threadID string) (*models.ViewResult, error) {
	args := m.Called(ctx, actor, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ViewResult), args.Error(1)
}

type MockAdminUserService struct {
	mock.Mock
}

func (m *MockAdminUserService) List(ctx context.Context, filter models.UserFilter) (models.ListResult[*models.User], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(models.ListResult[*models.User]), args.Error(1)
}

func (m *MockAdminUserService) Get(ctx context.Context, id string) (*models.ProfileResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileResponse), args.Error(1)
}

func (m *MockAdminUserService) Approve(ctx context.Context, actor models.Actor, id string) (*models.User, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAdminUserService) Reject(ctx context.Context, actor models.Actor, id, reason string) (*models.User, error) {
	args := m.Called(ctx, actor, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAdminUserService) UpdateRole(ctx context.Context, actor models.Actor, id string, role models.Role) (*models.User, error) {
	args := m.Called(ctx, actor, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAdminUserService) UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.UserStatus) (*models.User, error) {
	args := m.Called(ctx, actor, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) CreateUploadURL(ctx context.Context, session *models.Session, req *models.UploadURLRequest) (*storage.PresignedURL, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PresignedURL), args.Error(1)
}

func (m *MockFileService) CreateDownloadURL(ctx context.Context, session *models.Session, key string) (*storage.PresignedURL, error) {
	args := m.Called(ctx, session, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PresignedURL), args.Error(1)
}

type MockAnnouncementService struct {
	mock.Mock
}

func (m *MockAnnouncementService) Send(ctx context.Context, actor models.Actor, req *models.CreateAnnouncementRequest) (*models.Announcement, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}

func (m *MockAnnouncementService) List(ctx context.Context, p models.Pagination) (models.ListResult[*models.Announcement], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(models.ListResult[*models.Announcement]), args.Error(1)
}
