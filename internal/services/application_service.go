package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/repository"
	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
	"github.com/urocareerz/urocareerz-api/pkg/metrics"
	"github.com/urocareerz/urocareerz-api/pkg/sanitize"
	"github.com/urocareerz/urocareerz-api/pkg/storage"
)

// ApplicationService handles mentee applications and their review.
type ApplicationService struct {
	repo        repository.ApplicationRepositoryInterface
	oppRepo     repository.OpportunityRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	profileRepo repository.ProfileRepositoryInterface
	files       *FileService
	notifier    *NotificationService
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	repo repository.ApplicationRepositoryInterface,
	oppRepo repository.OpportunityRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	profileRepo repository.ProfileRepositoryInterface,
	files *FileService,
	notifier *NotificationService,
) *ApplicationService {
	return &ApplicationService{
		repo:        repo,
		oppRepo:     oppRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		files:       files,
		notifier:    notifier,
	}
}

// Apply submits a mentee's application to an approved opportunity. Without an
// explicit resume the profile resume is attached.
func (s *ApplicationService) Apply(ctx context.Context, actor models.Actor, opportunityID string, req *models.CreateApplicationRequest) (*models.Application, error) {
	if actor.Role != models.RoleMentee {
		return nil, ErrForbidden
	}

	o, err := s.oppRepo.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, notFoundAs(err, ErrOpportunityNotFound)
	}
	if o.DeletedAt != nil {
		return nil, ErrOpportunityNotFound
	}
	if o.Status != models.OpportunityApproved {
		return nil, ErrNotAcceptingApps
	}
	if o.ApplicationDeadline != nil && time.Now().After(*o.ApplicationDeadline) {
		return nil, fmt.Errorf("deadline passed: %w", ErrNotAcceptingApps)
	}

	resumeKey := req.ResumeKey
	if resumeKey == "" {
		if profile, err := s.profileRepo.Get(ctx, actor.UserID); err == nil {
			resumeKey = profile.ResumeKey
		}
	}
	if err := checkOwnedKey(resumeKey, actor.UserID, storage.KindResume); err != nil {
		return nil, err
	}

	app, err := s.repo.Create(ctx, &models.Application{
		OpportunityID: opportunityID,
		MenteeID:      actor.UserID,
		CoverLetter:   sanitize.HTML(req.CoverLetter),
		ResumeKey:     resumeKey,
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	metrics.ApplicationTransitions.WithLabelValues(string(models.ApplicationPending)).Inc()
	logger.Info("Application submitted",
		zap.String("application_id", app.ID),
		zap.String("opportunity_id", opportunityID),
		zap.String("mentee_id", actor.UserID))

	if creator, err := s.userRepo.GetByID(ctx, o.CreatorID); err == nil && !creator.IsDeleted() {
		s.notifier.ApplicationReceived(ctx, creator, app)
	}

	return app, nil
}

// List scopes applications by role: mentees see their own, mentors see
// applications to their listings, admins see everything.
func (s *ApplicationService) List(ctx context.Context, actor models.Actor, filter models.ApplicationFilter) (models.ListResult[*models.Application], error) {
	switch actor.Role {
	case models.RoleMentee:
		filter.MenteeID = actor.UserID
		filter.CreatorID = ""
	case models.RoleMentor:
		filter.CreatorID = actor.UserID
		filter.MenteeID = ""
	case models.RoleAdmin:
	default:
		return models.ListResult[*models.Application]{}, ErrForbidden
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.ListResult[*models.Application]{}, err
	}
	return models.NewListResult(items, total, filter.Pagination), nil
}

// Get returns an application visible to the actor.
func (s *ApplicationService) Get(ctx context.Context, actor models.Actor, id string) (*models.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrApplicationNotFound)
	}
	if !canViewApplication(actor, app) {
		return nil, ErrApplicationNotFound
	}
	return app, nil
}

// Withdraw lets the applying mentee pull a PENDING application.
func (s *ApplicationService) Withdraw(ctx context.Context, actor models.Actor, id string) (*models.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrApplicationNotFound)
	}
	if app.MenteeID != actor.UserID {
		return nil, ErrForbidden
	}
	return s.transition(ctx, app, models.ApplicationWithdrawn)
}

// UpdateStatus lets the opportunity creator or an admin accept or reject.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.ApplicationStatus) (*models.Application, error) {
	if status != models.ApplicationAccepted && status != models.ApplicationRejected {
		return nil, ErrInvalidTransition
	}

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrApplicationNotFound)
	}
	if !actor.IsAdmin() && app.OpportunityCreatorID != actor.UserID {
		return nil, ErrForbidden
	}

	updated, err := s.transition(ctx, app, status)
	if err != nil {
		return nil, err
	}
	s.notifier.ApplicationStatusChanged(ctx, updated)
	return updated, nil
}

// ResumeURL signs the application's resume for the mentee, the opportunity creator or an admin.
func (s *ApplicationService) ResumeURL(ctx context.Context, actor models.Actor, id string) (*storage.PresignedURL, error) {
	app, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if app.ResumeKey == "" {
		return nil, ErrNoResume
	}
	return s.files.presignDownload(ctx, app.ResumeKey)
}

func (s *ApplicationService) transition(ctx context.Context, app *models.Application, to models.ApplicationStatus) (*models.Application, error) {
	if !app.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("application is %s: %w", app.Status, ErrInvalidTransition)
	}

	updated, err := s.repo.UpdateStatus(ctx, app.ID, app.Status, to)
	if err != nil {
		return nil, notFoundAs(err, ErrApplicationNotFound)
	}

	metrics.ApplicationTransitions.WithLabelValues(string(to)).Inc()
	logger.Info("Application status changed",
		zap.String("application_id", app.ID),
		zap.String("from", string(app.Status)),
		zap.String("to", string(to)))

	return updated, nil
}

func canViewApplication(actor models.Actor, app *models.Application) bool {
	return actor.IsAdmin() || app.MenteeID == actor.UserID || app.OpportunityCreatorID == actor.UserID
}
