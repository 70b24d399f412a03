package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/config"
	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/repository"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
	"github.com/urocareerz/urocareerz-api/pkg/metrics"
	"github.com/urocareerz/urocareerz-api/pkg/sanitize"
)

// ModerationService implements the admin approve/reject/convert workflow for
// submitted opportunities.
type ModerationService struct {
	repo     repository.OpportunityRepositoryInterface
	userRepo repository.UserRepositoryInterface
	notifier *NotificationService
	audit    *AuditService
	config   *config.Config
}

// NewModerationService creates a new ModerationService
func NewModerationService(
	repo repository.OpportunityRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	notifier *NotificationService,
	audit *AuditService,
	cfg *config.Config,
) *ModerationService {
	return &ModerationService{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
		audit:    audit,
		config:   cfg,
	}
}

// List returns opportunities in any status for the moderation queue.
func (s *ModerationService) List(ctx context.Context, filter models.OpportunityFilter) (models.ListResult[*models.Opportunity], error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.ListResult[*models.Opportunity]{}, err
	}
	return models.NewListResult(items, total, filter.Pagination), nil
}

// Approve publishes a PENDING submission. With convert set, a mentee
// submission is cloned into an admin-owned APPROVED listing and the original
// is marked CONVERTED.
func (s *ModerationService) Approve(ctx context.Context, actor models.Actor, id string, convert bool) (*models.ModerationResult, error) {
	o, err := s.loadPending(ctx, id, models.OpportunityApproved)
	if err != nil {
		return nil, err
	}

	if convert {
		return s.convert(ctx, actor, o)
	}

	approved, err := s.repo.SetStatus(ctx, id, o.Status, models.OpportunityApproved, &actor.UserID, "")
	if err != nil {
		return nil, err
	}

	metrics.ModerationActions.WithLabelValues("opportunity", "approve").Inc()
	logger.Info("Opportunity approved",
		zap.String("opportunity_id", id),
		zap.String("admin_id", actor.UserID))

	if creator := s.creator(ctx, approved, actor); creator != nil {
		s.notifier.OpportunityApproved(ctx, creator, approved)
	}
	s.audit.Record(ctx, actor, models.AuditOpportunityApproved, models.EntityOpportunity, id,
		map[string]any{"title": approved.Title, "creatorId": approved.CreatorID})

	return &models.ModerationResult{Opportunity: approved}, nil
}

func (s *ModerationService) convert(ctx context.Context, actor models.Actor, o *models.Opportunity) (*models.ModerationResult, error) {
	if o.CreatorRole != models.RoleMentee {
		return nil, ErrConvertNotAllowed
	}

	ownerID := s.fallbackAdminID(ctx, actor)
	convertedID, err := s.repo.Convert(ctx, o.ID, ownerID, actor.UserID)
	if err != nil {
		return nil, err
	}

	original, err := s.repo.GetByID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	converted, err := s.repo.GetByID(ctx, convertedID)
	if err != nil {
		return nil, err
	}

	metrics.ModerationActions.WithLabelValues("opportunity", "convert").Inc()
	logger.Info("Opportunity converted",
		zap.String("opportunity_id", o.ID),
		zap.String("converted_id", convertedID),
		zap.String("owner_id", ownerID),
		zap.String("admin_id", actor.UserID))

	if creator := s.creator(ctx, o, actor); creator != nil {
		s.notifier.OpportunityConverted(ctx, creator, converted)
	}
	s.audit.Record(ctx, actor, models.AuditOpportunityConverted, models.EntityOpportunity, o.ID,
		map[string]any{"convertedToId": convertedID, "ownerId": ownerID, "title": o.Title})

	return &models.ModerationResult{Opportunity: original, Converted: converted}, nil
}

// Reject declines a PENDING submission with an optional reason.
func (s *ModerationService) Reject(ctx context.Context, actor models.Actor, id, reason string) (*models.ModerationResult, error) {
	o, err := s.loadPending(ctx, id, models.OpportunityRejected)
	if err != nil {
		return nil, err
	}

	reason = sanitize.Text(reason)
	rejected, err := s.repo.SetStatus(ctx, id, o.Status, models.OpportunityRejected, &actor.UserID, reason)
	if err != nil {
		return nil, err
	}

	metrics.ModerationActions.WithLabelValues("opportunity", "reject").Inc()
	logger.Info("Opportunity rejected",
		zap.String("opportunity_id", id),
		zap.String("admin_id", actor.UserID))

	if creator := s.creator(ctx, rejected, actor); creator != nil {
		s.notifier.OpportunityRejected(ctx, creator, rejected, reason)
	}
	s.audit.Record(ctx, actor, models.AuditOpportunityRejected, models.EntityOpportunity, id,
		map[string]any{"title": rejected.Title, "reason": reason})

	return &models.ModerationResult{Opportunity: rejected}, nil
}

func (s *ModerationService) loadPending(ctx context.Context, id string, next models.OpportunityStatus) (*models.Opportunity, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrOpportunityNotFound)
	}
	if o.DeletedAt != nil {
		return nil, ErrOpportunityNotFound
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("opportunity is %s: %w", o.Status, ErrInvalidTransition)
	}
	return o, nil
}

// fallbackAdminID resolves the configured owner for converted listings,
// falling back to the acting admin.
func (s *ModerationService) fallbackAdminID(ctx context.Context, actor models.Actor) string {
	email := s.config.Admin.FallbackEmail
	if email == "" {
		return actor.UserID
	}
	admin, err := s.userRepo.GetActiveAdminByEmail(ctx, email)
	if err != nil {
		logger.Warn("Fallback admin unavailable, using acting admin",
			zap.String("admin_id", actor.UserID),
			zap.Error(err))
		return actor.UserID
	}
	return admin.ID
}

// creator loads the listing's author for notification, skipping admins acting on their own listings.
func (s *ModerationService) creator(ctx context.Context, o *models.Opportunity, actor models.Actor) *models.User {
	if o.CreatorID == actor.UserID {
		return nil
	}
	user, err := s.userRepo.GetByID(ctx, o.CreatorID)
	if err != nil || user.IsDeleted() {
		logger.Warn("Opportunity creator unavailable for notification",
			zap.String("opportunity_id", o.ID),
			zap.Error(err))
		return nil
	}
	return user
}
