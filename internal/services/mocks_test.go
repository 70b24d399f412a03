package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/pkg/mailer"
	"github.com/urocareerz/urocareerz-api/pkg/storage"
)

// MockUserRepository is a mock implementation of UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) user(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	return m.user(m.Called(ctx, u))
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepository) GetActiveAdminByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepository) SetOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error {
	args := m.Called(ctx, id, otpHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) MarkVerified(ctx context.Context, id string) (*models.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) TransitionStatus(ctx context.Context, id string, from, to models.UserStatus, clearOTP bool) (*models.User, error) {
	return m.user(m.Called(ctx, id, from, to, clearOTP))
}

func (m *MockUserRepository) SoftDeletePending(ctx context.Context, id string) (*models.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	return m.user(m.Called(ctx, id, role))
}

func (m *MockUserRepository) UpdateNames(ctx context.Context, id, firstName, lastName string) (*models.User, error) {
	return m.user(m.Called(ctx, id, firstName, lastName))
}

func (m *MockUserRepository) AcceptTerms(ctx context.Context, id string) (*models.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) List(ctx context.Context, f models.UserFilter) ([]*models.User, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) ListActiveByRoles(ctx context.Context, roles []models.Role) ([]*models.User, error) {
	args := m.Called(ctx, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockProfileRepository is a mock implementation of ProfileRepositoryInterface
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

// MockOpportunityTypeRepository is a mock implementation of OpportunityTypeRepositoryInterface
type MockOpportunityTypeRepository struct {
	mock.Mock
}

func (m *MockOpportunityTypeRepository) list(args mock.Arguments) ([]*models.OpportunityType, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OpportunityType), args.Error(1)
}

func (m *MockOpportunityTypeRepository) one(args mock.Arguments) (*models.OpportunityType, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OpportunityType), args.Error(1)
}

func (m *MockOpportunityTypeRepository) ListActive(ctx context.Context) ([]*models.OpportunityType, error) {
	return m.list(m.Called(ctx))
}

func (m *MockOpportunityTypeRepository) ListAll(ctx context.Context) ([]*models.OpportunityType, error) {
	return m.list(m.Called(ctx))
}

func (m *MockOpportunityTypeRepository) GetByID(ctx context.Context, id string) (*models.OpportunityType, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockOpportunityTypeRepository) Create(ctx context.Context, t *models.OpportunityType) (*models.OpportunityType, error) {
	return m.one(m.Called(ctx, t))
}

func (m *MockOpportunityTypeRepository) Update(ctx context.Context, t *models.OpportunityType) (*models.OpportunityType, error) {
	return m.one(m.Called(ctx, t))
}

func (m *MockOpportunityTypeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOpportunityRepository is a mock implementation of OpportunityRepositoryInterface
type MockOpportunityRepository struct {
	mock.Mock
}

func (m *MockOpportunityRepository) one(args mock.Arguments) (*models.Opportunity, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) Create(ctx context.Context, o *models.Opportunity) (*models.Opportunity, error) {
	return m.one(m.Called(ctx, o))
}

func (m *MockOpportunityRepository) GetByID(ctx context.Context, id string) (*models.Opportunity, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockOpportunityRepository) List(ctx context.Context, f models.OpportunityFilter) ([]*models.Opportunity, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Opportunity), args.Int(1), args.Error(2)
}

func (m *MockOpportunityRepository) Update(ctx context.Context, o *models.Opportunity) (*models.Opportunity, error) {
	return m.one(m.Called(ctx, o))
}

func (m *MockOpportunityRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOpportunityRepository) SetStatus(ctx context.Context, id string, from, to models.OpportunityStatus, reviewerID *string, reason string) (*models.Opportunity, error) {
	return m.one(m.Called(ctx, id, from, to, reviewerID, reason))
}

func (m *MockOpportunityRepository) Convert(ctx context.Context, id, ownerID, reviewerID string) (string, error) {
	args := m.Called(ctx, id, ownerID, reviewerID)
	return args.String(0), args.Error(1)
}

func (m *MockOpportunityRepository) Save(ctx context.Context, userID, opportunityID string) error {
	args := m.Called(ctx, userID, opportunityID)
	return args.Error(0)
}

func (m *MockOpportunityRepository) Unsave(ctx context.Context, userID, opportunityID string) error {
	args := m.Called(ctx, userID, opportunityID)
	return args.Error(0)
}

func (m *MockOpportunityRepository) ListSaved(ctx context.Context, userID string, p models.Pagination) ([]*models.SavedOpportunity, int, error) {
	args := m.Called(ctx, userID, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.SavedOpportunity), args.Int(1), args.Error(2)
}

// MockApplicationRepository is a mock implementation of ApplicationRepositoryInterface
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) one(args mock.Arguments) (*models.Application, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) Create(ctx context.Context, a *models.Application) (*models.Application, error) {
	return m.one(m.Called(ctx, a))
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockApplicationRepository) List(ctx context.Context, f models.ApplicationFilter) ([]*models.Application, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Application), args.Int(1), args.Error(2)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id string, from, to models.ApplicationStatus) (*models.Application, error) {
	return m.one(m.Called(ctx, id, from, to))
}

// MockDiscussionRepository is a mock implementation of DiscussionRepositoryInterface
type MockDiscussionRepository struct {
	mock.Mock
}

func (m *MockDiscussionRepository) thread(args mock.Arguments) (*models.DiscussionThread, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscussionThread), args.Error(1)
}

func (m *MockDiscussionRepository) comment(args mock.Arguments) (*models.DiscussionComment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscussionComment), args.Error(1)
}

func (m *MockDiscussionRepository) CreateThread(ctx context.Context, t *models.DiscussionThread) (*models.DiscussionThread, error) {
	return m.thread(m.Called(ctx, t))
}

func (m *MockDiscussionRepository) GetThread(ctx context.Context, id string) (*models.DiscussionThread, error) {
	return m.thread(m.Called(ctx, id))
}

func (m *MockDiscussionRepository) ListThreads(ctx context.Context, f models.ThreadFilter) ([]*models.DiscussionThread, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.DiscussionThread), args.Int(1), args.Error(2)
}

func (m *MockDiscussionRepository) UpdateThreadStatus(ctx context.Context, id string, from, to models.DiscussionStatus) (*models.DiscussionThread, error) {
	return m.thread(m.Called(ctx, id, from, to))
}

func (m *MockDiscussionRepository) SoftDeleteThread(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDiscussionRepository) CreateComment(ctx context.Context, c *models.DiscussionComment) (*models.DiscussionComment, error) {
	return m.comment(m.Called(ctx, c))
}

func (m *MockDiscussionRepository) GetComment(ctx context.Context, threadID, id string) (*models.DiscussionComment, error) {
	return m.comment(m.Called(ctx, threadID, id))
}

func (m *MockDiscussionRepository) ListComments(ctx context.Context, threadID string) ([]*models.DiscussionComment, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DiscussionComment), args.Error(1)
}

func (m *MockDiscussionRepository) SoftDeleteComment(ctx context.Context, threadID, id string) error {
	args := m.Called(ctx, threadID, id)
	return args.Error(0)
}

func (m *MockDiscussionRepository) RecordView(ctx context.Context, threadID, userID string) (*models.ViewResult, error) {
	args := m.Called(ctx, threadID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ViewResult), args.Error(1)
}

// MockAuditRepository is a mock implementation of AuditRepositoryInterface
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, l *models.AuditLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, f models.AuditFilter) ([]*models.AuditLog, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.AuditLog), args.Int(1), args.Error(2)
}

// MockAnnouncementRepository is a mock implementation of AnnouncementRepositoryInterface
type MockAnnouncementRepository struct {
	mock.Mock
}

func (m *MockAnnouncementRepository) Create(ctx context.Context, a *models.Announcement) (*models.Announcement, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) List(ctx context.Context, p models.Pagination) ([]*models.Announcement, int, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Announcement), args.Int(1), args.Error(2)
}

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) PresignUpload(ctx context.Context, key, contentType string) (*storage.PresignedURL, error) {
	args := m.Called(ctx, key, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PresignedURL), args.Error(1)
}

func (m *MockObjectStorage) PresignDownload(ctx context.Context, key string) (*storage.PresignedURL, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PresignedURL), args.Error(1)
}

// fakeSender records rendered messages. failFor makes sends to an address fail.
type fakeSender struct {
	mu      sync.Mutex
	sent    []mailer.Message
	failFor map[string]error
}

func (f *fakeSender) Send(_ context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[msg.To]; ok {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) templates() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.Template)
	}
	return out
}
