package services

import (
	"context"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/pkg/jwt"
	"github.com/urocareerz/urocareerz-api/pkg/storage"
)

// AuthServiceInterface defines the OTP registration and login flow
type AuthServiceInterface interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	RequestLogin(ctx context.Context, email string) (*models.AuthResponse, error)
	ResendOTP(ctx context.Context, email string) (*models.AuthResponse, error)
	VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.VerifyOTPResponse, string, error)
	CurrentUser(ctx context.Context, session *models.Session) (*models.User, error)
	GetSessionTTL() int
	GetCookieName() string
	GetCookieDomain() string
	GetCookieSecure() bool
	GetTokenManager() *jwt.TokenManager
}

// ProfileServiceInterface defines the interface for profile service operations
type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.ProfileResponse, error)
	AcceptTerms(ctx context.Context, userID string) (*models.User, error)
}

// FileServiceInterface issues presigned object storage URLs
type FileServiceInterface interface {
	CreateUploadURL(ctx context.Context, session *models.Session, req *models.UploadURLRequest) (*storage.PresignedURL, error)
	CreateDownloadURL(ctx context.Context, session *models.Session, key string) (*storage.PresignedURL, error)
}

type OpportunityTypeServiceInterface interface {
	ListActive(ctx context.Context) ([]*models.OpportunityType, error)
	ListAll(ctx context.Context) ([]*models.OpportunityType, error)
	Create(ctx context.Context, actor models.Actor, input *models.OpportunityTypeInput) (*models.OpportunityType, error)
	Update(ctx context.Context, actor models.Actor, id string, input *models.OpportunityTypeInput) (*models.OpportunityType, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
}

// OpportunityServiceInterface defines listing, authoring and bookmarking of opportunities
type OpportunityServiceInterface interface {
	ListPublic(ctx context.Context, filter models.OpportunityFilter) (models.ListResult[*models.Opportunity], error)
	ListMine(ctx context.Context, userID string, filter models.OpportunityFilter) (models.ListResult[*models.Opportunity], error)
	Get(ctx context.Context, session *models.Session, id string) (*models.Opportunity, error)
	Create(ctx context.Context, actor models.Actor, input *models.OpportunityInput) (*models.Opportunity, error)
	Update(ctx context.Context, actor models.Actor, id string, input *models.OpportunityInput) (*models.Opportunity, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
	Close(ctx context.Context, actor models.Actor, id string) (*models.Opportunity, error)
	Save(ctx context.Context, session *models.Session, id string) error
	Unsave(ctx context.Context, userID, id string) error
	ListSaved(ctx context.Context, userID string, p models.Pagination) (models.ListResult[*models.SavedOpportunity], error)
}

// ModerationServiceInterface defines the admin review queue
type ModerationServiceInterface interface {
	List(ctx context.Context, filter models.OpportunityFilter) (models.ListResult[*models.Opportunity], error)
	Approve(ctx context.Context, actor models.Actor, id string, convert bool) (*models.ModerationResult, error)
	Reject(ctx context.Context, actor models.Actor, id, reason string) (*models.ModerationResult, error)
}

type ApplicationServiceInterface interface {
	Apply(ctx context.Context, actor models.Actor, opportunityID string, req *models.CreateApplicationRequest) (*models.Application, error)
	List(ctx context.Context, actor models.Actor, filter models.ApplicationFilter) (models.ListResult[*models.Application], error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.Application, error)
	Withdraw(ctx context.Context, actor models.Actor, id string) (*models.Application, error)
	UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.ApplicationStatus) (*models.Application, error)
	ResumeURL(ctx context.Context, actor models.Actor, id string) (*storage.PresignedURL, error)
}

type DiscussionServiceInterface interface {
	List(ctx context.Context, filter models.ThreadFilter) (models.ListResult[*models.DiscussionThread], error)
	Get(ctx context.Context, id string) (*models.ThreadDetail, error)
	Create(ctx context.Context, actor models.Actor, req *models.CreateThreadRequest) (*models.DiscussionThread, error)
	UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.DiscussionStatus) (*models.DiscussionThread, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
	AddComment(ctx context.Context, actor models.Actor, threadID string, req *models.CreateCommentRequest) (*models.DiscussionComment, error)
	DeleteComment(ctx context.Context, actor models.Actor, threadID, commentID string) error
	RecordView(ctx context.Context, actor models.Actor, threadID string) (*models.ViewResult, error)
}

// AdminUserServiceInterface defines account administration
type AdminUserServiceInterface interface {
	List(ctx context.Context, filter models.UserFilter) (models.ListResult[*models.User], error)
	Get(ctx context.Context, id string) (*models.ProfileResponse, error)
	Approve(ctx context.Context, actor models.Actor, id string) (*models.User, error)
	Reject(ctx context.Context, actor models.Actor, id, reason string) (*models.User, error)
	UpdateRole(ctx context.Context, actor models.Actor, id string, role models.Role) (*models.User, error)
	UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.UserStatus) (*models.User, error)
}

type AnnouncementServiceInterface interface {
	Send(ctx context.Context, actor models.Actor, req *models.CreateAnnouncementRequest) (*models.Announcement, error)
	List(ctx context.Context, p models.Pagination) (models.ListResult[*models.Announcement], error)
}

type AuditServiceInterface interface {
	List(ctx context.Context, filter models.AuditFilter) (models.ListResult[*models.AuditLog], error)
}

// Ensure services implement their interfaces
var _ AuthServiceInterface = (*AuthService)(nil)
var _ ProfileServiceInterface = (*ProfileService)(nil)
var _ FileServiceInterface = (*FileService)(nil)
var _ OpportunityTypeServiceInterface = (*OpportunityTypeService)(nil)
var _ OpportunityServiceInterface = (*OpportunityService)(nil)
var _ ModerationServiceInterface = (*ModerationService)(nil)
var _ ApplicationServiceInterface = (*ApplicationService)(nil)
var _ DiscussionServiceInterface = (*DiscussionService)(nil)
var _ AdminUserServiceInterface = (*AdminUserService)(nil)
var _ AnnouncementServiceInterface = (*AnnouncementService)(nil)
var _ AuditServiceInterface = (*AuditService)(nil)
