package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// Profile holds the self-service fields attached one-to-one to a User.
type Profile struct {
	UserID            string    `json:"userId"`
	Bio               string    `json:"bio"`
	Location          string    `json:"location"`
	Interests         []string  `json:"interests"`
	Education         string    `json:"education"`
	LinkedinURL       string    `json:"linkedinUrl"`
	GithubURL         string    `json:"githubUrl"`
	PortfolioURL      string    `json:"portfolioUrl"`
	YearsOfExperience *int      `json:"yearsOfExperience"`
	ResumeKey         string    `json:"resumeKey"`
	AvatarKey         string    `json:"avatarKey"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// EmptyProfile is returned for users who have never saved a profile.
func EmptyProfile(userID string) *Profile {
	return &Profile{UserID: userID, Interests: []string{}}
}

const ProfileColumns = `user_id, bio, location, interests, education, linkedin_url, github_url,
	portfolio_url, years_of_experience, resume_key, avatar_key, updated_at`

// ScanProfile scans a row selected with ProfileColumns.
func ScanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(
		&p.UserID,
		&p.Bio,
		&p.Location,
		&p.Interests,
		&p.Education,
		&p.LinkedinURL,
		&p.GithubURL,
		&p.PortfolioURL,
		&p.YearsOfExperience,
		&p.ResumeKey,
		&p.AvatarKey,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return &p, nil
}

type ProfileResponse struct {
	User    *User    `json:"user"`
	Profile *Profile `json:"profile"`
}

type UpdateProfileRequest struct {
	FirstName         string   `json:"firstName" binding:"required,min=1,max=100"`
	LastName          string   `json:"lastName" binding:"required,min=1,max=100"`
	Bio               string   `json:"bio" binding:"max=5000"`
	Location          string   `json:"location" binding:"max=200"`
	Interests         []string `json:"interests" binding:"max=20,dive,min=1,max=50"`
	Education         string   `json:"education" binding:"max=1000"`
	LinkedinURL       string   `json:"linkedinUrl" binding:"omitempty,url,max=500"`
	GithubURL         string   `json:"githubUrl" binding:"omitempty,url,max=500"`
	PortfolioURL      string   `json:"portfolioUrl" binding:"omitempty,url,max=500"`
	YearsOfExperience *int     `json:"yearsOfExperience" binding:"omitempty,min=0,max=70"`
	ResumeKey         string   `json:"resumeKey" binding:"max=500"`
	AvatarKey         string   `json:"avatarKey" binding:"max=500"`
}

type UploadURLRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=resume avatar"`
	FileName    string `json:"fileName" binding:"required,max=255"`
	ContentType string `json:"contentType" binding:"required,max=255"`
	Size        int64  `json:"size" binding:"omitempty,min=1"`
}
