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
)

// OpportunityService implements listing, authoring and bookmarking of opportunities.
type OpportunityService struct {
	repo     repository.OpportunityRepositoryInterface
	typeRepo repository.OpportunityTypeRepositoryInterface
	audit    *AuditService
}

// NewOpportunityService creates a new OpportunityService
func NewOpportunityService(
	repo repository.OpportunityRepositoryInterface,
	typeRepo repository.OpportunityTypeRepositoryInterface,
	audit *AuditService,
) *OpportunityService {
	return &OpportunityService{
		repo:     repo,
		typeRepo: typeRepo,
		audit:    audit,
	}
}

// ListPublic returns approved, live opportunities. Status and ownership
// filters from the caller are ignored.
func (s *OpportunityService) ListPublic(ctx context.Context, filter models.OpportunityFilter) (models.ListResult[*models.Opportunity], error) {
	filter.Statuses = []models.OpportunityStatus{models.OpportunityApproved}
	filter.IncludeDeleted = false
	filter.CreatorID = ""
	return s.list(ctx, filter)
}

// ListMine returns every live opportunity the user created, in any status.
func (s *OpportunityService) ListMine(ctx context.Context, userID string, filter models.OpportunityFilter) (models.ListResult[*models.Opportunity], error) {
	filter.CreatorID = userID
	filter.IncludeDeleted = false
	return s.list(ctx, filter)
}

func (s *OpportunityService) list(ctx context.Context, filter models.OpportunityFilter) (models.ListResult[*models.Opportunity], error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.ListResult[*models.Opportunity]{}, err
	}
	return models.NewListResult(items, total, filter.Pagination), nil
}

// Get returns an opportunity the session may see. Hidden listings look missing.
func (s *OpportunityService) Get(ctx context.Context, session *models.Session, id string) (*models.Opportunity, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrOpportunityNotFound)
	}
	if !o.IsVisibleTo(session) {
		return nil, ErrOpportunityNotFound
	}
	return o, nil
}

// Create stores a new listing. Mentor and mentee submissions wait for
// moderation; admin listings are published immediately.
func (s *OpportunityService) Create(ctx context.Context, actor models.Actor, input *models.OpportunityInput) (*models.Opportunity, error) {
	if !actor.Role.IsValid() {
		return nil, ErrForbidden
	}
	if err := s.checkType(ctx, input.TypeID); err != nil {
		return nil, err
	}

	o := &models.Opportunity{
		Status:      models.OpportunityPending,
		CreatorID:   actor.UserID,
		CreatorRole: actor.Role,
	}
	applyOpportunityInput(o, input)

	if actor.IsAdmin() {
		now := time.Now()
		o.Status = models.OpportunityApproved
		o.ReviewedBy = &actor.UserID
		o.ReviewedAt = &now
	}

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, err
	}

	metrics.OpportunitySubmissions.WithLabelValues(string(actor.Role)).Inc()
	logger.Info("Opportunity created",
		zap.String("opportunity_id", created.ID),
		zap.String("creator_id", actor.UserID),
		zap.String("status", string(created.Status)))

	if actor.IsAdmin() {
		s.audit.Record(ctx, actor, models.AuditOpportunityCreated, models.EntityOpportunity, created.ID,
			map[string]any{"title": created.Title})
	}

	return created, nil
}

// Update edits a listing. Creators may edit while PENDING or APPROVED; admins always.
func (s *OpportunityService) Update(ctx context.Context, actor models.Actor, id string, input *models.OpportunityInput) (*models.Opportunity, error) {
	o, err := s.loadLive(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		if o.CreatorID != actor.UserID {
			return nil, ErrForbidden
		}
		if !o.Status.IsEditable() {
			return nil, fmt.Errorf("opportunity is %s: %w", o.Status, ErrInvalidTransition)
		}
	}
	if input.TypeID != o.TypeID {
		if err := s.checkType(ctx, input.TypeID); err != nil {
			return nil, err
		}
	}

	applyOpportunityInput(o, input)
	updated, err := s.repo.Update(ctx, o)
	if err != nil {
		return nil, notFoundAs(err, ErrOpportunityNotFound)
	}

	if actor.IsAdmin() {
		s.audit.Record(ctx, actor, models.AuditOpportunityUpdated, models.EntityOpportunity, updated.ID,
			map[string]any{"title": updated.Title})
	}

	return updated, nil
}

// Delete soft-deletes a listing owned by the actor, or any listing for admins.
func (s *OpportunityService) Delete(ctx context.Context, actor models.Actor, id string) error {
	o, err := s.loadLive(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && o.CreatorID != actor.UserID {
		return ErrForbidden
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return notFoundAs(err, ErrOpportunityNotFound)
	}

	logger.Info("Opportunity deleted",
		zap.String("opportunity_id", id),
		zap.String("actor_id", actor.UserID))

	if actor.IsAdmin() {
		s.audit.Record(ctx, actor, models.AuditOpportunityDeleted, models.EntityOpportunity, id,
			map[string]any{"title": o.Title, "status": string(o.Status)})
	}
	return nil
}

// Close moves an APPROVED listing to CLOSED.
func (s *OpportunityService) Close(ctx context.Context, actor models.Actor, id string) (*models.Opportunity, error) {
	o, err := s.loadLive(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && o.CreatorID != actor.UserID {
		return nil, ErrForbidden
	}
	if !o.Status.CanTransitionTo(models.OpportunityClosed) {
		return nil, fmt.Errorf("cannot close a %s opportunity: %w", o.Status, ErrInvalidTransition)
	}

	closed, err := s.repo.SetStatus(ctx, id, o.Status, models.OpportunityClosed, nil, o.RejectionReason)
	if err != nil {
		return nil, err
	}

	if actor.IsAdmin() {
		s.audit.Record(ctx, actor, models.AuditOpportunityUpdated, models.EntityOpportunity, id,
			map[string]any{"from": string(o.Status), "to": string(models.OpportunityClosed)})
	}
	return closed, nil
}

// Save bookmarks a listing visible to the user.
func (s *OpportunityService) Save(ctx context.Context, session *models.Session, id string) error {
	if _, err := s.Get(ctx, session, id); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, session.UserID, id); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return ErrAlreadySaved
		}
		return notFoundAs(err, ErrOpportunityNotFound)
	}
	return nil
}

func (s *OpportunityService) Unsave(ctx context.Context, userID, id string) error {
	if err := s.repo.Unsave(ctx, userID, id); err != nil {
		return notFoundAs(err, ErrNotSaved)
	}
	return nil
}

func (s *OpportunityService) ListSaved(ctx context.Context, userID string, p models.Pagination) (models.ListResult[*models.SavedOpportunity], error) {
	items, total, err := s.repo.ListSaved(ctx, userID, p)
	if err != nil {
		return models.ListResult[*models.SavedOpportunity]{}, err
	}
	return models.NewListResult(items, total, p), nil
}

func (s *OpportunityService) loadLive(ctx context.Context, id string) (*models.Opportunity, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrOpportunityNotFound)
	}
	if o.DeletedAt != nil {
		return nil, ErrOpportunityNotFound
	}
	return o, nil
}

func (s *OpportunityService) checkType(ctx context.Context, typeID string) error {
	t, err := s.typeRepo.GetByID(ctx, typeID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return ErrUnknownOpportunityType
		}
		return err
	}
	if !t.IsActive {
		return ErrUnknownOpportunityType
	}
	return nil
}

func applyOpportunityInput(o *models.Opportunity, in *models.OpportunityInput) {
	tags := make([]string, 0, len(in.Tags))
	for _, tag := range in.Tags {
		if v := sanitize.Text(tag); v != "" {
			tags = append(tags, v)
		}
	}

	o.Title = sanitize.Text(in.Title)
	o.Description = sanitize.HTML(in.Description)
	o.Location = sanitize.Text(in.Location)
	o.Remote = in.Remote
	o.ExperienceLevel = sanitize.Text(in.ExperienceLevel)
	o.Compensation = sanitize.Text(in.Compensation)
	o.Duration = sanitize.Text(in.Duration)
	o.ApplicationDeadline = in.ApplicationDeadline
	o.Requirements = sanitize.HTML(in.Requirements)
	o.Benefits = sanitize.HTML(in.Benefits)
	o.Tags = tags
	o.TypeID = in.TypeID
	o.SourceURL = in.SourceURL
	o.SourceName = sanitize.Text(in.SourceName)
}
