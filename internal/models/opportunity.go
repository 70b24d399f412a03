package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// OpportunityStatus is the moderation state of an opportunity.
type OpportunityStatus string

const (
	OpportunityPending   OpportunityStatus = "PENDING"
	OpportunityApproved  OpportunityStatus = "APPROVED"
	OpportunityRejected  OpportunityStatus = "REJECTED"
	OpportunityClosed    OpportunityStatus = "CLOSED"
	OpportunityConverted OpportunityStatus = "CONVERTED"
)

func (s OpportunityStatus) IsValid() bool {
	switch s {
	case OpportunityPending, OpportunityApproved, OpportunityRejected, OpportunityClosed, OpportunityConverted:
		return true
	}
	return false
}

// IsTerminalStatus returns true if no further transitions are allowed.
func (s OpportunityStatus) IsTerminalStatus() bool {
	return s == OpportunityRejected || s == OpportunityClosed || s == OpportunityConverted
}

// CanTransitionTo is the single source of truth for opportunity moderation.
func (s OpportunityStatus) CanTransitionTo(newStatus OpportunityStatus) bool {
	if s.IsTerminalStatus() {
		return false
	}

	switch s {
	case OpportunityPending:
		return newStatus == OpportunityApproved || newStatus == OpportunityRejected || newStatus == OpportunityConverted
	case OpportunityApproved:
		return newStatus == OpportunityClosed
	default:
		return false
	}
}

// IsEditable reports whether the creator may still edit the listing.
func (s OpportunityStatus) IsEditable() bool {
	return s == OpportunityPending || s == OpportunityApproved
}

// Opportunity is a posted listing. TypeName and CreatorName come from joins.
type Opportunity struct {
	ID                  string            `json:"id"`
	Title               string            `json:"title"`
	Description         string            `json:"description"`
	Location            string            `json:"location"`
	Remote              bool              `json:"remote"`
	ExperienceLevel     string            `json:"experienceLevel"`
	Compensation        string            `json:"compensation"`
	Duration            string            `json:"duration"`
	ApplicationDeadline *time.Time        `json:"applicationDeadline"`
	Requirements        string            `json:"requirements"`
	Benefits            string            `json:"benefits"`
	Tags                []string          `json:"tags"`
	TypeID              string            `json:"typeId"`
	TypeName            string            `json:"typeName"`
	Status              OpportunityStatus `json:"status"`
	CreatorID           string            `json:"creatorId"`
	CreatorRole         Role              `json:"creatorRole"`
	CreatorName         string            `json:"creatorName"`
	SourceURL           string            `json:"sourceUrl"`
	SourceName          string            `json:"sourceName"`
	RejectionReason     string            `json:"rejectionReason,omitempty"`
	ConvertedFromID     *string           `json:"convertedFromId,omitempty"`
	ConvertedToID       *string           `json:"convertedToId,omitempty"`
	ReviewedBy          *string           `json:"reviewedBy,omitempty"`
	ReviewedAt          *time.Time        `json:"reviewedAt,omitempty"`
	DeletedAt           *time.Time        `json:"deletedAt,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// IsVisibleTo reports whether a session may read the listing: approved
// listings are public, anything else only to its creator and admins.
func (o *Opportunity) IsVisibleTo(s *Session) bool {
	if o.DeletedAt != nil {
		return s.IsAdmin()
	}
	if o.Status == OpportunityApproved {
		return true
	}
	return s.IsAdmin() || (s != nil && s.UserID == o.CreatorID)
}

// OpportunityColumns selects an opportunity aliased "o" joined to
// opportunity_types "t" and users "u".
const OpportunityColumns = `o.id, o.title, o.description, o.location, o.remote, o.experience_level,
	o.compensation, o.duration, o.application_deadline, o.requirements, o.benefits, o.tags,
	o.type_id, COALESCE(t.name, ''), o.status, o.creator_id, o.creator_role,
	COALESCE(u.first_name || ' ' || u.last_name, ''), o.source_url, o.source_name,
	o.rejection_reason, o.converted_from_id, o.converted_to_id, o.reviewed_by, o.reviewed_at,
	o.deleted_at, o.created_at, o.updated_at`

// OpportunityFrom is the FROM clause matching OpportunityColumns.
const OpportunityFrom = `opportunities o
	LEFT JOIN opportunity_types t ON t.id = o.type_id
	LEFT JOIN users u ON u.id = o.creator_id`

// ScanOpportunity scans a row selected with OpportunityColumns.
func ScanOpportunity(row pgx.Row) (*Opportunity, error) {
	var o Opportunity
	var status, creatorRole string
	if err := row.Scan(opportunityDest(&o, &status, &creatorRole)...); err != nil {
		return nil, err
	}
	o.finishScan(status, creatorRole)
	return &o, nil
}

// ScanSavedOpportunity scans "s.user_id, s.opportunity_id, s.created_at, " + OpportunityColumns.
func ScanSavedOpportunity(row pgx.Row) (*SavedOpportunity, error) {
	var saved SavedOpportunity
	var o Opportunity
	var status, creatorRole string
	dest := append([]any{&saved.UserID, &saved.OpportunityID, &saved.CreatedAt}, opportunityDest(&o, &status, &creatorRole)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	o.finishScan(status, creatorRole)
	saved.Opportunity = &o
	return &saved, nil
}

func opportunityDest(o *Opportunity, status, creatorRole *string) []any {
	return []any{
		&o.ID,
		&o.Title,
		&o.Description,
		&o.Location,
		&o.Remote,
		&o.ExperienceLevel,
		&o.Compensation,
		&o.Duration,
		&o.ApplicationDeadline,
		&o.Requirements,
		&o.Benefits,
		&o.Tags,
		&o.TypeID,
		&o.TypeName,
		status,
		&o.CreatorID,
		creatorRole,
		&o.CreatorName,
		&o.SourceURL,
		&o.SourceName,
		&o.RejectionReason,
		&o.ConvertedFromID,
		&o.ConvertedToID,
		&o.ReviewedBy,
		&o.ReviewedAt,
		&o.DeletedAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
}

func (o *Opportunity) finishScan(status, creatorRole string) {
	o.Status = OpportunityStatus(status)
	o.CreatorRole = Role(creatorRole)
	if o.Tags == nil {
		o.Tags = []string{}
	}
}

// OpportunityInput is the editable payload for create and update.
type OpportunityInput struct {
	Title               string     `json:"title" binding:"required,min=3,max=200"`
	Description         string     `json:"description" binding:"required,min=10,max=20000"`
	Location            string     `json:"location" binding:"max=200"`
	Remote              bool       `json:"remote"`
	ExperienceLevel     string     `json:"experienceLevel" binding:"max=50"`
	Compensation        string     `json:"compensation" binding:"max=200"`
	Duration            string     `json:"duration" binding:"max=100"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
	Requirements        string     `json:"requirements" binding:"max=10000"`
	Benefits            string     `json:"benefits" binding:"max=10000"`
	Tags                []string   `json:"tags" binding:"max=20,dive,min=1,max=50"`
	TypeID              string     `json:"typeId" binding:"required,uuid"`
	SourceURL           string     `json:"sourceUrl" binding:"omitempty,url,max=500"`
	SourceName          string     `json:"sourceName" binding:"max=200"`
}

// OpportunityFilter narrows opportunity lists. Zero values mean "any".
type OpportunityFilter struct {
	Statuses        []OpportunityStatus
	Query           string
	TypeID          string
	Location        string
	Remote          *bool
	ExperienceLevel string
	CreatorRole     Role
	CreatorID       string
	IncludeDeleted  bool
	Pagination
}

type ApproveOpportunityRequest struct {
	Convert bool `json:"convert"`
}

type RejectOpportunityRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

// SavedOpportunity is a bookmark of an opportunity by a user.
type SavedOpportunity struct {
	UserID        string       `json:"userId"`
	OpportunityID string       `json:"opportunityId"`
	CreatedAt     time.Time    `json:"createdAt"`
	Opportunity   *Opportunity `json:"opportunity"`
}

// ModerationResult is the outcome of an approve or reject. Converted is set
// when a submission was promoted into a new admin-owned listing.
type ModerationResult struct {
	Opportunity *Opportunity `json:"opportunity"`
	Converted   *Opportunity `json:"converted,omitempty"`
}
