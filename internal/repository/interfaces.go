package repository

import (
	"context"
	"time"

	"github.com/urocareerz/urocareerz-api/internal/models"
)

// UserRepositoryInterface defines user account data access.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetActiveAdminByEmail(ctx context.Context, email string) (*models.User, error)
	SetOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, id string) (*models.User, error)
	TransitionStatus(ctx context.Context, id string, from, to models.UserStatus, clearOTP bool) (*models.User, error)
	SoftDeletePending(ctx context.Context, id string) (*models.User, error)
	UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error)
	UpdateNames(ctx context.Context, id, firstName, lastName string) (*models.User, error)
	AcceptTerms(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, f models.UserFilter) ([]*models.User, int, error)
	ListActiveByRoles(ctx context.Context, roles []models.Role) ([]*models.User, error)
}

// ProfileRepositoryInterface defines profile data access.
type ProfileRepositoryInterface interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error)
}

// OpportunityTypeRepositoryInterface defines opportunity type data access.
type OpportunityTypeRepositoryInterface interface {
	ListActive(ctx context.Context) ([]*models.OpportunityType, error)
	ListAll(ctx context.Context) ([]*models.OpportunityType, error)
	GetByID(ctx context.Context, id string) (*models.OpportunityType, error)
	Create(ctx context.Context, t *models.OpportunityType) (*models.OpportunityType, error)
	Update(ctx context.Context, t *models.OpportunityType) (*models.OpportunityType, error)
	Delete(ctx context.Context, id string) error
}

// OpportunityRepositoryInterface defines opportunity and bookmark data access.
type OpportunityRepositoryInterface interface {
	Create(ctx context.Context, o *models.Opportunity) (*models.Opportunity, error)
	GetByID(ctx context.Context, id string) (*models.Opportunity, error)
	List(ctx context.Context, f models.OpportunityFilter) ([]*models.Opportunity, int, error)
	Update(ctx context.Context, o *models.Opportunity) (*models.Opportunity, error)
	SoftDelete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, from, to models.OpportunityStatus, reviewerID *string, reason string) (*models.Opportunity, error)
	Convert(ctx context.Context, id, ownerID, reviewerID string) (string, error)
	Save(ctx context.Context, userID, opportunityID string) error
	Unsave(ctx context.Context, userID, opportunityID string) error
	ListSaved(ctx context.Context, userID string, p models.Pagination) ([]*models.SavedOpportunity, int, error)
}

// ApplicationRepositoryInterface defines application data access.
type ApplicationRepositoryInterface interface {
	Create(ctx context.Context, a *models.Application) (*models.Application, error)
	GetByID(ctx context.Context, id string) (*models.Application, error)
	List(ctx context.Context, f models.ApplicationFilter) ([]*models.Application, int, error)
	UpdateStatus(ctx context.Context, id string, from, to models.ApplicationStatus) (*models.Application, error)
}

// DiscussionRepositoryInterface defines thread, comment and view data access.
type DiscussionRepositoryInterface interface {
	CreateThread(ctx context.Context, t *models.DiscussionThread) (*models.DiscussionThread, error)
	GetThread(ctx context.Context, id string) (*models.DiscussionThread, error)
	ListThreads(ctx context.Context, f models.ThreadFilter) ([]*models.DiscussionThread, int, error)
	UpdateThreadStatus(ctx context.Context, id string, from, to models.DiscussionStatus) (*models.DiscussionThread, error)
	SoftDeleteThread(ctx context.Context, id string) error
	CreateComment(ctx context.Context, c *models.DiscussionComment) (*models.DiscussionComment, error)
	GetComment(ctx context.Context, threadID, id string) (*models.DiscussionComment, error)
	ListComments(ctx context.Context, threadID string) ([]*models.DiscussionComment, error)
	SoftDeleteComment(ctx context.Context, threadID, id string) error
	RecordView(ctx context.Context, threadID, userID string) (*models.ViewResult, error)
}

// AuditRepositoryInterface defines audit log data access.
type AuditRepositoryInterface interface {
	Create(ctx context.Context, l *models.AuditLog) error
	List(ctx context.Context, f models.AuditFilter) ([]*models.AuditLog, int, error)
}

// AnnouncementRepositoryInterface defines announcement data access.
type AnnouncementRepositoryInterface interface {
	Create(ctx context.Context, a *models.Announcement) (*models.Announcement, error)
	List(ctx context.Context, p models.Pagination) ([]*models.Announcement, int, error)
}

var (
	_ UserRepositoryInterface            = (*UserRepository)(nil)
	_ ProfileRepositoryInterface         = (*ProfileRepository)(nil)
	_ OpportunityTypeRepositoryInterface = (*OpportunityTypeRepository)(nil)
	_ OpportunityRepositoryInterface     = (*OpportunityRepository)(nil)
	_ ApplicationRepositoryInterface     = (*ApplicationRepository)(nil)
	_ DiscussionRepositoryInterface      = (*DiscussionRepository)(nil)
	_ AuditRepositoryInterface           = (*AuditRepository)(nil)
	_ AnnouncementRepositoryInterface    = (*AnnouncementRepository)(nil)
)
