package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/urocareerz/urocareerz-api/internal/models"
)

// AuditRepository appends and lists admin audit records.
type AuditRepository struct {
	db DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create appends an audit record. A blank UserID is stored as NULL.
func (r *AuditRepository) Create(ctx context.Context, l *models.AuditLog) error {
	details := l.Details
	if details == nil {
		details = map[string]any{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}

	var userID *string
	if l.UserID != "" {
		userID = &l.UserID
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO audit_logs (action, entity_type, entity_id, user_id, details, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(l.Action), string(l.EntityType), l.EntityID, userID, raw, l.IPAddress, l.UserAgent,
	)
	return mapError(err, "audit log")
}

// List returns a filtered page of audit records, newest first.
func (r *AuditRepository) List(ctx context.Context, f models.AuditFilter) ([]*models.AuditLog, int, error) {
	where := squirrel.And{}
	if f.Action != "" {
		where = append(where, squirrel.Eq{"l.action": string(f.Action)})
	}
	if f.EntityType != "" {
		where = append(where, squirrel.Eq{"l.entity_type": string(f.EntityType)})
	}
	if f.UserID != "" {
		where = append(where, squirrel.Eq{"l.user_id": f.UserID})
	}

	p := f.Pagination.Normalize()
	count := psql.Select("COUNT(*)").From("audit_logs l").Where(where)
	list := psql.Select(models.AuditLogColumns).From(models.AuditLogFrom).Where(where).
		OrderBy("l.created_at DESC").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset()))

	return countAndList(ctx, r.db, count, list, models.ScanAuditLog, "audit log")
}
