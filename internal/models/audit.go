package models

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
)

type AuditAction string

const (
	AuditUserApproved            AuditAction = "USER_APPROVED"
	AuditUserRejected            AuditAction = "USER_REJECTED"
	AuditUserRoleChanged         AuditAction = "USER_ROLE_CHANGED"
	AuditUserStatusChanged       AuditAction = "USER_STATUS_CHANGED"
	AuditOpportunityCreated      AuditAction = "OPPORTUNITY_CREATED"
	AuditOpportunityUpdated      AuditAction = "OPPORTUNITY_UPDATED"
	AuditOpportunityDeleted      AuditAction = "OPPORTUNITY_DELETED"
	AuditOpportunityApproved     AuditAction = "OPPORTUNITY_APPROVED"
	AuditOpportunityRejected     AuditAction = "OPPORTUNITY_REJECTED"
	AuditOpportunityConverted    AuditAction = "OPPORTUNITY_CONVERTED"
	AuditOpportunityTypeCreated  AuditAction = "OPPORTUNITY_TYPE_CREATED"
	AuditOpportunityTypeUpdated  AuditAction = "OPPORTUNITY_TYPE_UPDATED"
	AuditOpportunityTypeDeleted  AuditAction = "OPPORTUNITY_TYPE_DELETED"
	AuditDiscussionStatusChanged AuditAction = "DISCUSSION_STATUS_CHANGED"
	AuditDiscussionDeleted       AuditAction = "DISCUSSION_DELETED"
	AuditCommentDeleted          AuditAction = "COMMENT_DELETED"
	AuditAnnouncementSent        AuditAction = "ANNOUNCEMENT_SENT"
)

type AuditEntity string

const (
	EntityUser              AuditEntity = "USER"
	EntityOpportunity       AuditEntity = "OPPORTUNITY"
	EntityOpportunityType   AuditEntity = "OPPORTUNITY_TYPE"
	EntityDiscussion        AuditEntity = "DISCUSSION"
	EntityDiscussionComment AuditEntity = "DISCUSSION_COMMENT"
	EntityAnnouncement      AuditEntity = "ANNOUNCEMENT"
)

// AuditLog is an append-only record of an administrative action.
type AuditLog struct {
	ID         string         `json:"id"`
	Action     AuditAction    `json:"action"`
	EntityType AuditEntity    `json:"entityType"`
	EntityID   string         `json:"entityId"`
	UserID     string         `json:"userId"`
	UserEmail  string         `json:"userEmail"`
	Details    map[string]any `json:"details"`
	IPAddress  string         `json:"ipAddress"`
	UserAgent  string         `json:"userAgent"`
	CreatedAt  time.Time      `json:"createdAt"`
}

const AuditLogColumns = `l.id, l.action, l.entity_type, l.entity_id, COALESCE(l.user_id::text, ''), COALESCE(u.email, ''),
	l.details, l.ip_address, l.user_agent, l.created_at`

const AuditLogFrom = `audit_logs l LEFT JOIN users u ON u.id = l.user_id`

func ScanAuditLog(row pgx.Row) (*AuditLog, error) {
	var l AuditLog
	var action, entity string
	var details []byte
	err := row.Scan(&l.ID, &action, &entity, &l.EntityID, &l.UserID, &l.UserEmail, &details, &l.IPAddress, &l.UserAgent, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	l.Action = AuditAction(action)
	l.EntityType = AuditEntity(entity)
	l.Details = map[string]any{}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &l.Details); err != nil {
			return nil, err
		}
	}
	return &l, nil
}

type AuditFilter struct {
	Action     AuditAction
	EntityType AuditEntity
	UserID     string
	Pagination
}
