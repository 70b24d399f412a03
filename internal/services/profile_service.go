package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/repository"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
	"github.com/urocareerz/urocareerz-api/pkg/sanitize"
	"github.com/urocareerz/urocareerz-api/pkg/storage"
)

// ProfileService manages a user's own account names and profile fields.
type ProfileService struct {
	userRepo    repository.UserRepositoryInterface
	profileRepo repository.ProfileRepositoryInterface
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo repository.UserRepositoryInterface, profileRepo repository.ProfileRepositoryInterface) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// GetProfile returns the user together with their profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	if user.IsDeleted() {
		return nil, ErrUserNotFound
	}

	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.ProfileResponse{User: user, Profile: profile}, nil
}

// UpdateProfile writes names and profile fields. File keys must point into
// the user's own storage prefix for their kind.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	if err := checkOwnedKey(req.ResumeKey, userID, storage.KindResume); err != nil {
		return nil, err
	}
	if err := checkOwnedKey(req.AvatarKey, userID, storage.KindAvatar); err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateNames(ctx, userID, sanitize.Text(req.FirstName), sanitize.Text(req.LastName))
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}

	interests := make([]string, 0, len(req.Interests))
	for _, interest := range req.Interests {
		if v := sanitize.Text(interest); v != "" {
			interests = append(interests, v)
		}
	}

	profile, err := s.profileRepo.Upsert(ctx, &models.Profile{
		UserID:            userID,
		Bio:               sanitize.HTML(req.Bio),
		Location:          sanitize.Text(req.Location),
		Interests:         interests,
		Education:         sanitize.Text(req.Education),
		LinkedinURL:       strings.TrimSpace(req.LinkedinURL),
		GithubURL:         strings.TrimSpace(req.GithubURL),
		PortfolioURL:      strings.TrimSpace(req.PortfolioURL),
		YearsOfExperience: req.YearsOfExperience,
		ResumeKey:         req.ResumeKey,
		AvatarKey:         req.AvatarKey,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Profile updated", zap.String("user_id", userID))

	return &models.ProfileResponse{User: user, Profile: profile}, nil
}

// AcceptTerms records terms acceptance for an existing account.
func (s *ProfileService) AcceptTerms(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.AcceptTerms(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	return user, nil
}

func checkOwnedKey(key, userID string, kind storage.Kind) error {
	if key == "" {
		return nil
	}
	if !storage.OwnedBy(key, userID) || !strings.HasPrefix(key, storage.UserPrefix(userID, kind)) {
		return ErrFileNotOwned
	}
	return nil
}
