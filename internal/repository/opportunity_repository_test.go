package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urocareerz/urocareerz-api/internal/models"
	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
)

func TestOpportunityRepository_GetByID(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`WHERE o.id = \$1`).
		WithArgs("o-1").
		WillReturnRows(opportunityRows().AddRow(opportunityValues("o-1", "APPROVED", "u-1", "MENTOR")...))

	o, err := NewOpportunityRepository(mock).GetByID(context.Background(), "o-1")
	require.NoError(t, err)
	assert.Equal(t, models.OpportunityApproved, o.Status)
	assert.Equal(t, models.RoleMentor, o.CreatorRole)
	assert.Equal(t, "Fellowship", o.TypeName)
	assert.Equal(t, []string{"endourology"}, o.Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunityRepository_Create_UnknownType(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`INSERT INTO opportunities`).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := NewOpportunityRepository(mock).Create(context.Background(), &models.Opportunity{
		Title:       "Research year",
		TypeID:      "missing",
		Status:      models.OpportunityPending,
		CreatorID:   "u-1",
		CreatorRole: models.RoleMentee,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunityRepository_List_PublicFilters(t *testing.T) {
	mock := newMockDB(t)
	remote := true
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("APPROVED", "type-1", true, "MENTOR").
		WillReturnRows(countRows(1))
	mock.ExpectQuery(`ORDER BY o.created_at DESC LIMIT 20 OFFSET 0`).
		WithArgs("APPROVED", "type-1", true, "MENTOR").
		WillReturnRows(opportunityRows().AddRow(opportunityValues("o-1", "APPROVED", "u-1", "MENTOR")...))

	items, total, err := NewOpportunityRepository(mock).List(context.Background(), models.OpportunityFilter{
		Statuses:    []models.OpportunityStatus{models.OpportunityApproved},
		TypeID:      "type-1",
		Remote:      &remote,
		CreatorRole: models.RoleMentor,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunityRepository_SetStatus(t *testing.T) {
	reviewer := "admin-1"

	t.Run("approved", func(t *testing.T) {
		mock := newMockDB(t)
		mock.ExpectExec(`UPDATE opportunities SET`).
			WithArgs("o-1", "PENDING", "APPROVED", &reviewer, "").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery(`WHERE o.id = \$1`).
			WithArgs("o-1").
			WillReturnRows(opportunityRows().AddRow(opportunityValues("o-1", "APPROVED", "u-1", "MENTOR")...))

		o, err := NewOpportunityRepository(mock).SetStatus(context.Background(), "o-1",
			models.OpportunityPending, models.OpportunityApproved, &reviewer, "")
		require.NoError(t, err)
		assert.Equal(t, models.OpportunityApproved, o.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already moderated", func(t *testing.T) {
		mock := newMockDB(t)
		mock.ExpectExec(`UPDATE opportunities SET`).
			WithArgs("o-1", "PENDING", "REJECTED", &reviewer, "duplicate").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		_, err := NewOpportunityRepository(mock).SetStatus(context.Background(), "o-1",
			models.OpportunityPending, models.OpportunityRejected, &reviewer, "duplicate")
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOpportunityRepository_Convert(t *testing.T) {
	t.Run("clones and marks original converted", func(t *testing.T) {
		mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).
			WithArgs("o-1").
			WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow("PENDING"))
		mock.ExpectQuery(`INSERT INTO opportunities`).
			WithArgs("o-1", "fallback-admin", "admin-1").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("o-2"))
		mock.ExpectExec(`SET\s+status = 'CONVERTED'`).
			WithArgs("o-1", "o-2", "admin-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		id, err := NewOpportunityRepository(mock).Convert(context.Background(), "o-1", "fallback-admin", "admin-1")
		require.NoError(t, err)
		assert.Equal(t, "o-2", id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when not pending", func(t *testing.T) {
		mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).
			WithArgs("o-1").
			WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow("APPROVED"))
		mock.ExpectRollback()

		_, err := NewOpportunityRepository(mock).Convert(context.Background(), "o-1", "fallback-admin", "admin-1")
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing opportunity", func(t *testing.T) {
		mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).
			WithArgs("o-1").
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		_, err := NewOpportunityRepository(mock).Convert(context.Background(), "o-1", "fallback-admin", "admin-1")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOpportunityRepository_SaveTwiceIsConflict(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectExec(`INSERT INTO saved_opportunities`).
		WithArgs("u-1", "o-1").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := NewOpportunityRepository(mock).Save(context.Background(), "u-1", "o-1")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunityRepository_UnsaveMissing(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM saved_opportunities`).
		WithArgs("u-1", "o-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := NewOpportunityRepository(mock).Unsave(context.Background(), "u-1", "o-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunityRepository_ListSaved(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("u-1").
		WillReturnRows(countRows(1))
	values := append([]any{"u-1", "o-1", testNow}, opportunityValues("o-1", "APPROVED", "u-2", "MENTOR")...)
	mock.ExpectQuery(`FROM saved_opportunities s JOIN opportunities o`).
		WithArgs("u-1").
		WillReturnRows(opportunityRows("user_id", "opportunity_id", "saved_at").AddRow(values...))

	saved, total, err := NewOpportunityRepository(mock).ListSaved(context.Background(), "u-1", models.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, saved, 1)
	assert.Equal(t, "o-1", saved[0].Opportunity.ID)
	assert.Equal(t, testNow, saved[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunityTypeRepository_DeleteInUse(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM opportunity_types`).
		WithArgs("type-1").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := NewOpportunityTypeRepository(mock).Delete(context.Background(), "type-1")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunityTypeRepository_ListActive(t *testing.T) {
	mock := newMockDB(t)
	rows := pgxmock.NewRows([]string{"id", "name", "description", "color", "is_active", "created_at", "updated_at"}).
		AddRow("type-1", "Fellowship", "", "#2563eb", true, testNow, testNow).
		AddRow("type-2", "Research", "", "#16a34a", true, testNow, testNow)
	mock.ExpectQuery(`WHERE is_active`).WillReturnRows(rows)

	types, err := NewOpportunityTypeRepository(mock).ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, types, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
