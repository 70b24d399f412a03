package services

import (
	"context"
	"strings"

	"github.com/urocareerz/urocareerz-api/internal/cache"
	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/repository"
	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
	"github.com/urocareerz/urocareerz-api/pkg/sanitize"
)

// OpportunityTypeService manages the opportunity type lookup list.
type OpportunityTypeService struct {
	repo  repository.OpportunityTypeRepositoryInterface
	cache cache.OpportunityTypesCacheInterface
	audit *AuditService
}

// NewOpportunityTypeService creates a new OpportunityTypeService
func NewOpportunityTypeService(
	repo repository.OpportunityTypeRepositoryInterface,
	typesCache cache.OpportunityTypesCacheInterface,
	audit *AuditService,
) *OpportunityTypeService {
	return &OpportunityTypeService{
		repo:  repo,
		cache: typesCache,
		audit: audit,
	}
}

// ListActive returns the active types from the in-process cache.
func (s *OpportunityTypeService) ListActive(ctx context.Context) ([]*models.OpportunityType, error) {
	return s.cache.GetActive(ctx)
}

// ListAll returns every type, active or not, straight from the store.
func (s *OpportunityTypeService) ListAll(ctx context.Context) ([]*models.OpportunityType, error) {
	return s.repo.ListAll(ctx)
}

func (s *OpportunityTypeService) Create(ctx context.Context, actor models.Actor, input *models.OpportunityTypeInput) (*models.OpportunityType, error) {
	t := &models.OpportunityType{IsActive: true}
	applyTypeInput(t, input)

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, ErrOpportunityTypeExists
		}
		return nil, err
	}

	s.cache.Invalidate()
	s.audit.Record(ctx, actor, models.AuditOpportunityTypeCreated, models.EntityOpportunityType, created.ID,
		map[string]any{"name": created.Name})

	return created, nil
}

func (s *OpportunityTypeService) Update(ctx context.Context, actor models.Actor, id string, input *models.OpportunityTypeInput) (*models.OpportunityType, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrOpportunityTypeNotFound)
	}

	before := existing.Name
	applyTypeInput(existing, input)

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, ErrOpportunityTypeExists
		}
		return nil, notFoundAs(err, ErrOpportunityTypeNotFound)
	}

	s.cache.Invalidate()
	s.audit.Record(ctx, actor, models.AuditOpportunityTypeUpdated, models.EntityOpportunityType, updated.ID,
		map[string]any{"previousName": before, "name": updated.Name, "isActive": updated.IsActive})

	return updated, nil
}

// Delete removes an unused type. Types referenced by opportunities stay; deactivate them instead.
func (s *OpportunityTypeService) Delete(ctx context.Context, actor models.Actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return ErrOpportunityTypeInUse
		}
		return notFoundAs(err, ErrOpportunityTypeNotFound)
	}

	s.cache.Invalidate()
	s.audit.Record(ctx, actor, models.AuditOpportunityTypeDeleted, models.EntityOpportunityType, id, nil)
	return nil
}

func applyTypeInput(t *models.OpportunityType, input *models.OpportunityTypeInput) {
	t.Name = sanitize.Text(input.Name)
	t.Description = sanitize.Text(input.Description)
	t.Color = strings.ToLower(strings.TrimSpace(input.Color))
	if input.IsActive != nil {
		t.IsActive = *input.IsActive
	}
}
