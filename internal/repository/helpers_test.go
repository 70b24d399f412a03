package repository

import (
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func userRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "email", "first_name", "last_name", "role", "status", "otp_hash", "otp_expires_at",
		"terms_accepted", "terms_accepted_at", "email_verified_at", "last_login_at", "deleted_at",
		"created_at", "updated_at",
	})
}

func addUser(rows *pgxmock.Rows, id, email, role, status string) *pgxmock.Rows {
	return rows.AddRow(id, email, "Ada", "Lovelace", role, status, nil, nil,
		true, &testNow, nil, nil, nil, testNow, testNow)
}

func opportunityRows(extra ...string) *pgxmock.Rows {
	cols := append(extra,
		"id", "title", "description", "location", "remote", "experience_level", "compensation",
		"duration", "application_deadline", "requirements", "benefits", "tags", "type_id", "type_name",
		"status", "creator_id", "creator_role", "creator_name", "source_url", "source_name",
		"rejection_reason", "converted_from_id", "converted_to_id", "reviewed_by", "reviewed_at",
		"deleted_at", "created_at", "updated_at",
	)
	return pgxmock.NewRows(cols)
}

func opportunityValues(id, status, creatorID, creatorRole string) []any {
	return []any{
		id, "Endourology Fellowship", "One year clinical fellowship", "Boston", false, "RESIDENT", "",
		"12 months", nil, "", "", []string{"endourology"}, "type-1", "Fellowship",
		status, creatorID, creatorRole, "Ada Lovelace", "", "",
		"", nil, nil, nil, nil,
		nil, testNow, testNow,
	}
}

func countRows(n int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"count"}).AddRow(n)
}
