package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/repository"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
)

// AuditService records admin actions. Recording never fails the caller.
type AuditService struct {
	repo repository.AuditRepositoryInterface
}

// NewAuditService creates a new AuditService
func NewAuditService(repo repository.AuditRepositoryInterface) *AuditService {
	return &AuditService{repo: repo}
}

// Record appends an audit entry; write failures are logged and dropped.
func (s *AuditService) Record(
	ctx context.Context,
	actor models.Actor,
	action models.AuditAction,
	entity models.AuditEntity,
	entityID string,
	details map[string]any,
) {
	entry := &models.AuditLog{
		Action:     action,
		EntityType: entity,
		EntityID:   entityID,
		UserID:     actor.UserID,
		Details:    details,
		IPAddress:  actor.IPAddress,
		UserAgent:  actor.UserAgent,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		logger.LogError(err, "Failed to write audit log",
			zap.String("action", string(action)),
			zap.String("entity_type", string(entity)),
			zap.String("entity_id", entityID),
			zap.String("actor_id", actor.UserID))
	}
}

func (s *AuditService) List(ctx context.Context, filter models.AuditFilter) (models.ListResult[*models.AuditLog], error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.ListResult[*models.AuditLog]{}, err
	}
	return models.NewListResult(items, total, filter.Pagination), nil
}
