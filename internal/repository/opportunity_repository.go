package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/urocareerz/urocareerz-api/internal/models"
	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
)

// OpportunityRepository handles opportunity persistence and moderation writes.
type OpportunityRepository struct {
	db DB
}

// NewOpportunityRepository creates a new opportunity repository
func NewOpportunityRepository(db DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

// Create inserts an opportunity and returns it with joined display fields.
func (r *OpportunityRepository) Create(ctx context.Context, o *models.Opportunity) (*models.Opportunity, error) {
	tags := o.Tags
	if tags == nil {
		tags = []string{}
	}

	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO opportunities (title, description, location, remote, experience_level, compensation,
			duration, application_deadline, requirements, benefits, tags, type_id, status, creator_id,
			creator_role, source_url, source_name, reviewed_by, reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id`,
		o.Title, o.Description, o.Location, o.Remote, o.ExperienceLevel, o.Compensation,
		o.Duration, o.ApplicationDeadline, o.Requirements, o.Benefits, tags, o.TypeID, string(o.Status),
		o.CreatorID, string(o.CreatorRole), o.SourceURL, o.SourceName, o.ReviewedBy, o.ReviewedAt,
	).Scan(&id)
	if err != nil {
		return nil, mapError(err, "opportunity")
	}
	return r.GetByID(ctx, id)
}

// GetByID returns an opportunity including soft-deleted ones; callers decide visibility.
func (r *OpportunityRepository) GetByID(ctx context.Context, id string) (*models.Opportunity, error) {
	row := r.db.QueryRow(ctx, `SELECT `+models.OpportunityColumns+` FROM `+models.OpportunityFrom+` WHERE o.id = $1`, id)
	o, err := models.ScanOpportunity(row)
	if err != nil {
		return nil, mapError(err, "opportunity")
	}
	return o, nil
}

// List returns a filtered page of opportunities, newest first.
func (r *OpportunityRepository) List(ctx context.Context, f models.OpportunityFilter) ([]*models.Opportunity, int, error) {
	where := squirrel.And{}
	if !f.IncludeDeleted {
		where = append(where, squirrel.Expr("o.deleted_at IS NULL"))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		where = append(where, squirrel.Eq{"o.status": statuses})
	}
	if f.Query != "" {
		pattern := likePattern(f.Query)
		where = append(where, squirrel.Or{
			squirrel.ILike{"o.title": pattern},
			squirrel.ILike{"o.description": pattern},
			squirrel.Expr("array_to_string(o.tags, ' ') ILIKE ?", pattern),
		})
	}
	if f.TypeID != "" {
		where = append(where, squirrel.Eq{"o.type_id": f.TypeID})
	}
	if f.Location != "" {
		where = append(where, squirrel.ILike{"o.location": likePattern(f.Location)})
	}
	if f.Remote != nil {
		where = append(where, squirrel.Eq{"o.remote": *f.Remote})
	}
	if f.ExperienceLevel != "" {
		where = append(where, squirrel.Eq{"o.experience_level": f.ExperienceLevel})
	}
	if f.CreatorRole != "" {
		where = append(where, squirrel.Eq{"o.creator_role": string(f.CreatorRole)})
	}
	if f.CreatorID != "" {
		where = append(where, squirrel.Eq{"o.creator_id": f.CreatorID})
	}

	p := f.Pagination.Normalize()
	count := psql.Select("COUNT(*)").From("opportunities o").Where(where)
	list := psql.Select(models.OpportunityColumns).From(models.OpportunityFrom).Where(where).
		OrderBy("o.created_at DESC").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset()))

	return countAndList(ctx, r.db, count, list, models.ScanOpportunity, "opportunity")
}

// Update rewrites the editable fields of a live opportunity.
func (r *OpportunityRepository) Update(ctx context.Context, o *models.Opportunity) (*models.Opportunity, error) {
	tags := o.Tags
	if tags == nil {
		tags = []string{}
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE opportunities SET
			title = $2, description = $3, location = $4, remote = $5, experience_level = $6,
			compensation = $7, duration = $8, application_deadline = $9, requirements = $10,
			benefits = $11, tags = $12, type_id = $13, source_url = $14, source_name = $15,
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`,
		o.ID, o.Title, o.Description, o.Location, o.Remote, o.ExperienceLevel,
		o.Compensation, o.Duration, o.ApplicationDeadline, o.Requirements,
		o.Benefits, tags, o.TypeID, o.SourceURL, o.SourceName,
	)
	if err != nil {
		return nil, mapError(err, "opportunity")
	}
	if tag.RowsAffected() == 0 {
		return nil, mapError(pgx.ErrNoRows, "opportunity")
	}
	return r.GetByID(ctx, o.ID)
}

// SoftDelete hides an opportunity from every default query.
func (r *OpportunityRepository) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE opportunities SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return mapError(err, "opportunity")
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "opportunity")
	}
	return nil
}

// SetStatus moves a live opportunity from one status to another. reviewerID
// is recorded for moderation decisions and left untouched when nil.
func (r *OpportunityRepository) SetStatus(
	ctx context.Context,
	id string,
	from, to models.OpportunityStatus,
	reviewerID *string,
	reason string,
) (*models.Opportunity, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE opportunities SET
			status = $3,
			rejection_reason = $5,
			reviewed_by = COALESCE($4::uuid, reviewed_by),
			reviewed_at = CASE WHEN $4::uuid IS NULL THEN reviewed_at ELSE NOW() END,
			updated_at = NOW()
		WHERE id = $1 AND status = $2 AND deleted_at IS NULL`,
		id, string(from), string(to), reviewerID, reason,
	)
	if err != nil {
		return nil, mapError(err, "opportunity")
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("opportunity is not %s: %w", from, apperrors.ErrConflict)
	}
	return r.GetByID(ctx, id)
}

// Convert promotes a PENDING submission into an APPROVED admin-owned copy.
// The original becomes CONVERTED and points at the copy. Both writes share one
// transaction; the copy's id is returned.
func (r *OpportunityRepository) Convert(ctx context.Context, id, ownerID, reviewerID string) (string, error) {
	var convertedID string

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var status string
		err := tx.QueryRow(ctx,
			`SELECT status FROM opportunities WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`,
			id,
		).Scan(&status)
		if err != nil {
			return mapError(err, "opportunity")
		}
		if models.OpportunityStatus(status) != models.OpportunityPending {
			return fmt.Errorf("opportunity is not %s: %w", models.OpportunityPending, apperrors.ErrConflict)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO opportunities (title, description, location, remote, experience_level, compensation,
				duration, application_deadline, requirements, benefits, tags, type_id, status, creator_id,
				creator_role, source_url, source_name, converted_from_id, reviewed_by, reviewed_at)
			SELECT title, description, location, remote, experience_level, compensation,
				duration, application_deadline, requirements, benefits, tags, type_id, 'APPROVED', $2,
				'ADMIN', source_url, source_name, id, $3, NOW()
			FROM opportunities WHERE id = $1
			RETURNING id`,
			id, ownerID, reviewerID,
		).Scan(&convertedID)
		if err != nil {
			return mapError(err, "opportunity")
		}

		_, err = tx.Exec(ctx, `
			UPDATE opportunities SET
				status = 'CONVERTED', converted_to_id = $2, reviewed_by = $3, reviewed_at = NOW(), updated_at = NOW()
			WHERE id = $1`,
			id, convertedID, reviewerID,
		)
		return mapError(err, "opportunity")
	})
	if err != nil {
		return "", err
	}
	return convertedID, nil
}

// Save bookmarks an opportunity for a user; a repeated save is a conflict.
func (r *OpportunityRepository) Save(ctx context.Context, userID, opportunityID string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO saved_opportunities (user_id, opportunity_id) VALUES ($1, $2)`,
		userID, opportunityID,
	)
	return mapError(err, "saved opportunity")
}

// Unsave removes a bookmark.
func (r *OpportunityRepository) Unsave(ctx context.Context, userID, opportunityID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM saved_opportunities WHERE user_id = $1 AND opportunity_id = $2`,
		userID, opportunityID,
	)
	if err != nil {
		return mapError(err, "saved opportunity")
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "saved opportunity")
	}
	return nil
}

// ListSaved returns a user's bookmarks of live opportunities, most recent first.
func (r *OpportunityRepository) ListSaved(ctx context.Context, userID string, p models.Pagination) ([]*models.SavedOpportunity, int, error) {
	p = p.Normalize()
	where := squirrel.And{
		squirrel.Eq{"s.user_id": userID},
		squirrel.Expr("o.deleted_at IS NULL"),
	}

	count := psql.Select("COUNT(*)").
		From("saved_opportunities s").
		Join("opportunities o ON o.id = s.opportunity_id").
		Where(where)
	list := psql.Select("s.user_id, s.opportunity_id, s.created_at, "+models.OpportunityColumns).
		From("saved_opportunities s").
		Join("opportunities o ON o.id = s.opportunity_id").
		LeftJoin("opportunity_types t ON t.id = o.type_id").
		LeftJoin("users u ON u.id = o.creator_id").
		Where(where).
		OrderBy("s.created_at DESC").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset()))

	return countAndList(ctx, r.db, count, list, models.ScanSavedOpportunity, "saved opportunity")
}
