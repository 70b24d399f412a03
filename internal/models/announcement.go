package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// Audience selects which active users receive an announcement.
type Audience string

const (
	AudienceAll     Audience = "ALL"
	AudienceMentees Audience = "MENTEES"
	AudienceMentors Audience = "MENTORS"
)

// Roles returns the user roles included in the audience.
func (a Audience) Roles() []Role {
	switch a {
	case AudienceMentees:
		return []Role{RoleMentee}
	case AudienceMentors:
		return []Role{RoleMentor}
	default:
		return []Role{RoleMentee, RoleMentor, RoleAdmin}
	}
}

type Announcement struct {
	ID             string    `json:"id"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	Audience       Audience  `json:"audience"`
	RecipientCount int       `json:"recipientCount"`
	FailedCount    int       `json:"failedCount"`
	CreatedBy      string    `json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
}

const AnnouncementColumns = `id, subject, body, audience, recipient_count, failed_count, created_by, created_at`

func ScanAnnouncement(row pgx.Row) (*Announcement, error) {
	var a Announcement
	var audience string
	if err := row.Scan(&a.ID, &a.Subject, &a.Body, &audience, &a.RecipientCount, &a.FailedCount, &a.CreatedBy, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Audience = Audience(audience)
	return &a, nil
}

type CreateAnnouncementRequest struct {
	Subject  string   `json:"subject" binding:"required,min=3,max=200"`
	Body     string   `json:"body" binding:"required,min=1,max=20000"`
	Audience Audience `json:"audience" binding:"required,oneof=ALL MENTEES MENTORS"`
}
