package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/urocareerz/urocareerz-api/internal/models"
	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
)

// ApplicationRepository handles mentee applications to opportunities.
type ApplicationRepository struct {
	db DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a PENDING application. A second application by the same
// mentee to the same opportunity is a conflict.
func (r *ApplicationRepository) Create(ctx context.Context, a *models.Application) (*models.Application, error) {
	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO applications (opportunity_id, mentee_id, cover_letter, resume_key, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		a.OpportunityID, a.MenteeID, a.CoverLetter, a.ResumeKey, string(models.ApplicationPending),
	).Scan(&id)
	if err != nil {
		return nil, mapError(err, "application")
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+models.ApplicationColumns+` FROM `+models.ApplicationFrom+` WHERE a.id = $1`, id)
	a, err := models.ScanApplication(row)
	if err != nil {
		return nil, mapError(err, "application")
	}
	return a, nil
}

// List returns a filtered page of applications, newest first.
func (r *ApplicationRepository) List(ctx context.Context, f models.ApplicationFilter) ([]*models.Application, int, error) {
	where := squirrel.And{}
	if f.MenteeID != "" {
		where = append(where, squirrel.Eq{"a.mentee_id": f.MenteeID})
	}
	if f.CreatorID != "" {
		where = append(where, squirrel.Eq{"o.creator_id": f.CreatorID})
	}
	if f.OpportunityID != "" {
		where = append(where, squirrel.Eq{"a.opportunity_id": f.OpportunityID})
	}
	if f.Status != "" {
		where = append(where, squirrel.Eq{"a.status": string(f.Status)})
	}

	p := f.Pagination.Normalize()
	count := psql.Select("COUNT(*)").From(models.ApplicationFrom).Where(where)
	list := psql.Select(models.ApplicationColumns).From(models.ApplicationFrom).Where(where).
		OrderBy("a.created_at DESC").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset()))

	return countAndList(ctx, r.db, count, list, models.ScanApplication, "application")
}

// UpdateStatus moves an application from one status to another.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, from, to models.ApplicationStatus) (*models.Application, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`,
		id, string(from), string(to),
	)
	if err != nil {
		return nil, mapError(err, "application")
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("application is not %s: %w", from, apperrors.ErrConflict)
	}
	return r.GetByID(ctx, id)
}
