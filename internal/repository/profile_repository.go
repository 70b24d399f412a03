package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/urocareerz/urocareerz-api/internal/models"
)

// ProfileRepository stores the one-to-one profile of a user.
type ProfileRepository struct {
	db DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get returns the user's profile, or an empty one if none was saved yet.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+models.ProfileColumns+` FROM profiles WHERE user_id = $1`, userID)
	p, err := models.ScanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.EmptyProfile(userID), nil
	}
	if err != nil {
		return nil, mapError(err, "profile")
	}
	return p, nil
}

// Upsert writes every profile field.
func (r *ProfileRepository) Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO profiles (user_id, bio, location, interests, education, linkedin_url, github_url,
			portfolio_url, years_of_experience, resume_key, avatar_key, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			bio = EXCLUDED.bio,
			location = EXCLUDED.location,
			interests = EXCLUDED.interests,
			education = EXCLUDED.education,
			linkedin_url = EXCLUDED.linkedin_url,
			github_url = EXCLUDED.github_url,
			portfolio_url = EXCLUDED.portfolio_url,
			years_of_experience = EXCLUDED.years_of_experience,
			resume_key = EXCLUDED.resume_key,
			avatar_key = EXCLUDED.avatar_key,
			updated_at = NOW()
		RETURNING `+models.ProfileColumns,
		p.UserID, p.Bio, p.Location, interests, p.Education, p.LinkedinURL, p.GithubURL,
		p.PortfolioURL, p.YearsOfExperience, p.ResumeKey, p.AvatarKey,
	)
	saved, err := models.ScanProfile(row)
	if err != nil {
		return nil, mapError(err, "profile")
	}
	return saved, nil
}
