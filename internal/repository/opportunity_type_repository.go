package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/urocareerz/urocareerz-api/internal/models"
	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
)

// OpportunityTypeRepository handles the opportunity type lookup table.
type OpportunityTypeRepository struct {
	db DB
}

// NewOpportunityTypeRepository creates a new opportunity type repository
func NewOpportunityTypeRepository(db DB) *OpportunityTypeRepository {
	return &OpportunityTypeRepository{db: db}
}

// ListActive returns active types ordered by name.
func (r *OpportunityTypeRepository) ListActive(ctx context.Context) ([]*models.OpportunityType, error) {
	return r.list(ctx, `SELECT `+models.OpportunityTypeColumns+` FROM opportunity_types WHERE is_active ORDER BY name`)
}

// ListAll returns every type ordered by name.
func (r *OpportunityTypeRepository) ListAll(ctx context.Context) ([]*models.OpportunityType, error) {
	return r.list(ctx, `SELECT `+models.OpportunityTypeColumns+` FROM opportunity_types ORDER BY name`)
}

func (r *OpportunityTypeRepository) list(ctx context.Context, query string) ([]*models.OpportunityType, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError(err, "opportunity type")
	}
	defer rows.Close()

	types := []*models.OpportunityType{}
	for rows.Next() {
		t, err := models.ScanOpportunityType(rows)
		if err != nil {
			return nil, mapError(err, "opportunity type")
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "opportunity type")
	}
	return types, nil
}

func (r *OpportunityTypeRepository) GetByID(ctx context.Context, id string) (*models.OpportunityType, error) {
	row := r.db.QueryRow(ctx, `SELECT `+models.OpportunityTypeColumns+` FROM opportunity_types WHERE id = $1`, id)
	t, err := models.ScanOpportunityType(row)
	if err != nil {
		return nil, mapError(err, "opportunity type")
	}
	return t, nil
}

func (r *OpportunityTypeRepository) Create(ctx context.Context, t *models.OpportunityType) (*models.OpportunityType, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO opportunity_types (name, description, color, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING `+models.OpportunityTypeColumns,
		t.Name, t.Description, t.Color, t.IsActive,
	)
	created, err := models.ScanOpportunityType(row)
	if err != nil {
		return nil, mapError(err, "opportunity type")
	}
	return created, nil
}

func (r *OpportunityTypeRepository) Update(ctx context.Context, t *models.OpportunityType) (*models.OpportunityType, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE opportunity_types SET name = $2, description = $3, color = $4, is_active = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+models.OpportunityTypeColumns,
		t.ID, t.Name, t.Description, t.Color, t.IsActive,
	)
	updated, err := models.ScanOpportunityType(row)
	if err != nil {
		return nil, mapError(err, "opportunity type")
	}
	return updated, nil
}

// Delete removes a type. Types still referenced by opportunities cannot be deleted.
func (r *OpportunityTypeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM opportunity_types WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("opportunity type is in use: %w", apperrors.ErrConflict)
		}
		return mapError(err, "opportunity type")
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "opportunity type")
	}
	return nil
}
