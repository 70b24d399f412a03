package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// ApplicationStatus is the review state of a mentee's application.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "PENDING"
	ApplicationAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationWithdrawn ApplicationStatus = "WITHDRAWN"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn:
		return true
	}
	return false
}

// IsTerminalStatus returns true once an application has been decided or withdrawn.
func (s ApplicationStatus) IsTerminalStatus() bool {
	return s != ApplicationPending
}

// CanTransitionTo checks if a status transition is valid
func (s ApplicationStatus) CanTransitionTo(newStatus ApplicationStatus) bool {
	if s.IsTerminalStatus() {
		return false
	}
	return newStatus == ApplicationAccepted || newStatus == ApplicationRejected || newStatus == ApplicationWithdrawn
}

// Application links a mentee to an opportunity. The opportunity and mentee
// display fields come from joins.
type Application struct {
	ID                   string            `json:"id"`
	OpportunityID        string            `json:"opportunityId"`
	OpportunityTitle     string            `json:"opportunityTitle"`
	OpportunityCreatorID string            `json:"opportunityCreatorId"`
	MenteeID             string            `json:"menteeId"`
	MenteeName           string            `json:"menteeName"`
	MenteeEmail          string            `json:"menteeEmail"`
	CoverLetter          string            `json:"coverLetter"`
	ResumeKey            string            `json:"resumeKey"`
	Status               ApplicationStatus `json:"status"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

// ApplicationColumns selects an application "a" joined to opportunities "o" and users "m".
const ApplicationColumns = `a.id, a.opportunity_id, o.title, o.creator_id, a.mentee_id,
	m.first_name || ' ' || m.last_name, m.email, a.cover_letter, a.resume_key, a.status,
	a.created_at, a.updated_at`

const ApplicationFrom = `applications a
	JOIN opportunities o ON o.id = a.opportunity_id
	JOIN users m ON m.id = a.mentee_id`

func ScanApplication(row pgx.Row) (*Application, error) {
	var a Application
	var status string
	err := row.Scan(
		&a.ID,
		&a.OpportunityID,
		&a.OpportunityTitle,
		&a.OpportunityCreatorID,
		&a.MenteeID,
		&a.MenteeName,
		&a.MenteeEmail,
		&a.CoverLetter,
		&a.ResumeKey,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Status = ApplicationStatus(status)
	return &a, nil
}

type CreateApplicationRequest struct {
	CoverLetter string `json:"coverLetter" binding:"max=5000"`
	ResumeKey   string `json:"resumeKey" binding:"max=500"`
}

type UpdateApplicationStatusRequest struct {
	Status ApplicationStatus `json:"status" binding:"required,oneof=ACCEPTED REJECTED"`
}

// ApplicationFilter narrows application lists. The service fills the
// ownership fields from the caller's role.
type ApplicationFilter struct {
	MenteeID      string
	CreatorID     string
	OpportunityID string
	Status        ApplicationStatus
	Pagination
}
