package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/repository"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
	"github.com/urocareerz/urocareerz-api/pkg/sanitize"
)

// AnnouncementService broadcasts admin announcements by email.
type AnnouncementService struct {
	repo     repository.AnnouncementRepositoryInterface
	userRepo repository.UserRepositoryInterface
	notifier *NotificationService
	audit    *AuditService
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(
	repo repository.AnnouncementRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	notifier *NotificationService,
	audit *AuditService,
) *AnnouncementService {
	return &AnnouncementService{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
		audit:    audit,
	}
}

// Send emails every active user in the audience and stores the announcement
// with its delivery counts. Individual send failures are counted, not returned.
func (s *AnnouncementService) Send(ctx context.Context, actor models.Actor, req *models.CreateAnnouncementRequest) (*models.Announcement, error) {
	subject := sanitize.Text(req.Subject)
	bodyHTML := sanitize.HTML(req.Body)
	bodyText := sanitize.Text(req.Body)

	recipients, err := s.userRepo.ListActiveByRoles(ctx, req.Audience.Roles())
	if err != nil {
		return nil, err
	}

	failed := 0
	for _, user := range recipients {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.notifier.Announcement(ctx, user, subject, bodyHTML, bodyText); err != nil {
			failed++
			logger.Warn("Failed to deliver announcement",
				zap.String("user_id", user.ID),
				zap.Error(err))
		}
	}

	a, err := s.repo.Create(ctx, &models.Announcement{
		Subject:        subject,
		Body:           bodyHTML,
		Audience:       req.Audience,
		RecipientCount: len(recipients),
		FailedCount:    failed,
		CreatedBy:      actor.UserID,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Announcement sent",
		zap.String("announcement_id", a.ID),
		zap.String("audience", string(req.Audience)),
		zap.Int("recipients", len(recipients)),
		zap.Int("failed", failed))

	s.audit.Record(ctx, actor, models.AuditAnnouncementSent, models.EntityAnnouncement, a.ID,
		map[string]any{"subject": subject, "audience": string(req.Audience), "recipients": len(recipients), "failed": failed})
	return a, nil
}

func (s *AnnouncementService) List(ctx context.Context, p models.Pagination) (models.ListResult[*models.Announcement], error) {
	items, total, err := s.repo.List(ctx, p)
	if err != nil {
		return models.ListResult[*models.Announcement]{}, err
	}
	return models.NewListResult(items, total, p), nil
}
