package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/repository"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
	"github.com/urocareerz/urocareerz-api/pkg/metrics"
	"github.com/urocareerz/urocareerz-api/pkg/sanitize"
)

// AdminUserService implements account administration: approval of pending
// registrations, role changes and activation toggles.
type AdminUserService struct {
	userRepo    repository.UserRepositoryInterface
	profileRepo repository.ProfileRepositoryInterface
	notifier    *NotificationService
	audit       *AuditService
}

// NewAdminUserService creates a new AdminUserService
func NewAdminUserService(
	userRepo repository.UserRepositoryInterface,
	profileRepo repository.ProfileRepositoryInterface,
	notifier *NotificationService,
	audit *AuditService,
) *AdminUserService {
	return &AdminUserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
		audit:       audit,
	}
}

func (s *AdminUserService) List(ctx context.Context, filter models.UserFilter) (models.ListResult[*models.User], error) {
	items, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return models.ListResult[*models.User]{}, err
	}
	return models.NewListResult(items, total, filter.Pagination), nil
}

// Get returns any user, deleted ones included, with their profile.
func (s *AdminUserService) Get(ctx context.Context, id string) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	profile, err := s.profileRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.ProfileResponse{User: user, Profile: profile}, nil
}

// Approve activates a PENDING registration and discards its outstanding OTP.
func (s *AdminUserService) Approve(ctx context.Context, actor models.Actor, id string) (*models.User, error) {
	user, err := s.loadLive(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status != models.UserStatusPending {
		return nil, fmt.Errorf("user is %s: %w", user.Status, ErrInvalidTransition)
	}

	approved, err := s.userRepo.TransitionStatus(ctx, id, models.UserStatusPending, models.UserStatusActive, true)
	if err != nil {
		return nil, err
	}

	metrics.ModerationActions.WithLabelValues("user", "approve").Inc()
	logger.Info("User approved",
		zap.String("user_id", id),
		zap.String("admin_id", actor.UserID))

	s.notifier.AccountApproved(ctx, approved)
	s.audit.Record(ctx, actor, models.AuditUserApproved, models.EntityUser, id,
		map[string]any{"email": approved.Email})
	return approved, nil
}

// Reject soft-deletes a PENDING registration.
func (s *AdminUserService) Reject(ctx context.Context, actor models.Actor, id, reason string) (*models.User, error) {
	user, err := s.loadLive(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status != models.UserStatusPending {
		return nil, fmt.Errorf("user is %s: %w", user.Status, ErrInvalidTransition)
	}

	reason = sanitize.Text(reason)
	rejected, err := s.userRepo.SoftDeletePending(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.ModerationActions.WithLabelValues("user", "reject").Inc()
	logger.Info("User rejected",
		zap.String("user_id", id),
		zap.String("admin_id", actor.UserID))

	s.notifier.AccountRejected(ctx, rejected, reason)
	s.audit.Record(ctx, actor, models.AuditUserRejected, models.EntityUser, id,
		map[string]any{"email": rejected.Email, "reason": reason})
	return rejected, nil
}

// UpdateRole sets any role. Admins cannot demote themselves.
func (s *AdminUserService) UpdateRole(ctx context.Context, actor models.Actor, id string, role models.Role) (*models.User, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrInvalidTransition)
	}
	if id == actor.UserID && role != models.RoleAdmin {
		return nil, ErrSelfModification
	}

	user, err := s.loadLive(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}

	updated, err := s.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}

	metrics.ModerationActions.WithLabelValues("user", "role").Inc()
	logger.Info("User role changed",
		zap.String("user_id", id),
		zap.String("from", string(user.Role)),
		zap.String("to", string(role)),
		zap.String("admin_id", actor.UserID))

	s.audit.Record(ctx, actor, models.AuditUserRoleChanged, models.EntityUser, id,
		map[string]any{"from": string(user.Role), "to": string(role)})
	return updated, nil
}

// UpdateStatus toggles ACTIVE and INACTIVE. Admins cannot deactivate themselves.
func (s *AdminUserService) UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.UserStatus) (*models.User, error) {
	if id == actor.UserID && status != models.UserStatusActive {
		return nil, ErrSelfModification
	}

	user, err := s.loadLive(ctx, id)
	if err != nil {
		return nil, err
	}
	// PENDING accounts are activated only by approval or OTP verification.
	if user.Status == models.UserStatusPending || status == models.UserStatusPending || !user.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("user is %s: %w", user.Status, ErrInvalidTransition)
	}

	updated, err := s.userRepo.TransitionStatus(ctx, id, user.Status, status, false)
	if err != nil {
		return nil, err
	}

	metrics.ModerationActions.WithLabelValues("user", "status").Inc()
	logger.Info("User status changed",
		zap.String("user_id", id),
		zap.String("from", string(user.Status)),
		zap.String("to", string(status)),
		zap.String("admin_id", actor.UserID))

	s.audit.Record(ctx, actor, models.AuditUserStatusChanged, models.EntityUser, id,
		map[string]any{"from": string(user.Status), "to": string(status)})
	return updated, nil
}

func (s *AdminUserService) loadLive(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	if user.IsDeleted() {
		return nil, ErrUserNotFound
	}
	return user, nil
}
