package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/urocareerz/urocareerz-api/internal/models"
	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
)

// UserRepository handles user account persistence.
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a PENDING user holding an outstanding OTP.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, first_name, last_name, role, status, otp_hash, otp_expires_at,
			terms_accepted, terms_accepted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+models.UserColumns,
		u.Email, u.FirstName, u.LastName, string(u.Role), string(u.Status), u.OTPHash, u.OTPExpiresAt,
		u.TermsAccepted, u.TermsAcceptedAt,
	)
	created, err := models.ScanUser(row)
	if err != nil {
		return nil, mapError(err, "user")
	}
	return created, nil
}

// GetByID returns a user including soft-deleted ones.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+models.UserColumns+` FROM users WHERE id = $1`, id)
	u, err := models.ScanUser(row)
	if err != nil {
		return nil, mapError(err, "user")
	}
	return u, nil
}

// GetByEmail returns the live (not deleted) account for an email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+models.UserColumns+` FROM users WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`,
		email,
	)
	u, err := models.ScanUser(row)
	if err != nil {
		return nil, mapError(err, "user")
	}
	return u, nil
}

// GetActiveAdminByEmail resolves the fallback admin account.
func (r *UserRepository) GetActiveAdminByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+models.UserColumns+` FROM users
		WHERE LOWER(email) = LOWER($1) AND role = 'ADMIN' AND status = 'ACTIVE' AND deleted_at IS NULL`,
		email,
	)
	u, err := models.ScanUser(row)
	if err != nil {
		return nil, mapError(err, "admin user")
	}
	return u, nil
}

// SetOTP replaces the outstanding OTP for a live user.
func (r *UserRepository) SetOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET otp_hash = $2, otp_expires_at = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`,
		id, otpHash, expiresAt,
	)
	if err != nil {
		return mapError(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	return nil
}

// MarkVerified clears the OTP, activates a PENDING account and records the login.
func (r *UserRepository) MarkVerified(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users SET
			otp_hash = NULL,
			otp_expires_at = NULL,
			status = CASE WHEN status = 'PENDING' THEN 'ACTIVE' ELSE status END,
			email_verified_at = COALESCE(email_verified_at, NOW()),
			last_login_at = NOW(),
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+models.UserColumns,
		id,
	)
	u, err := models.ScanUser(row)
	if err != nil {
		return nil, mapError(err, "user")
	}
	return u, nil
}

// TransitionStatus moves a live user from one status to another. A user not
// in the expected status is reported as a conflict.
func (r *UserRepository) TransitionStatus(ctx context.Context, id string, from, to models.UserStatus, clearOTP bool) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users SET
			status = $3,
			otp_hash = CASE WHEN $4 THEN NULL ELSE otp_hash END,
			otp_expires_at = CASE WHEN $4 THEN NULL ELSE otp_expires_at END,
			updated_at = NOW()
		WHERE id = $1 AND status = $2 AND deleted_at IS NULL
		RETURNING `+models.UserColumns,
		id, string(from), string(to), clearOTP,
	)
	u, err := models.ScanUser(row)
	if err != nil {
		err = mapError(err, "user")
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("user is not %s: %w", from, apperrors.ErrConflict)
		}
		return nil, err
	}
	return u, nil
}

// SoftDeletePending marks a PENDING user deleted and drops its OTP.
func (r *UserRepository) SoftDeletePending(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users SET deleted_at = NOW(), otp_hash = NULL, otp_expires_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING' AND deleted_at IS NULL
		RETURNING `+models.UserColumns,
		id,
	)
	u, err := models.ScanUser(row)
	if err != nil {
		err = mapError(err, "user")
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("user is not pending: %w", apperrors.ErrConflict)
		}
		return nil, err
	}
	return u, nil
}

// UpdateRole changes the role of a live user.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users SET role = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+models.UserColumns,
		id, string(role),
	)
	u, err := models.ScanUser(row)
	if err != nil {
		return nil, mapError(err, "user")
	}
	return u, nil
}

// UpdateNames changes first and last name.
func (r *UserRepository) UpdateNames(ctx context.Context, id, firstName, lastName string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users SET first_name = $2, last_name = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+models.UserColumns,
		id, firstName, lastName,
	)
	u, err := models.ScanUser(row)
	if err != nil {
		return nil, mapError(err, "user")
	}
	return u, nil
}

// AcceptTerms records terms acceptance once; later calls keep the first timestamp.
func (r *UserRepository) AcceptTerms(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users SET
			terms_accepted = TRUE,
			terms_accepted_at = COALESCE(terms_accepted_at, NOW()),
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+models.UserColumns,
		id,
	)
	u, err := models.ScanUser(row)
	if err != nil {
		return nil, mapError(err, "user")
	}
	return u, nil
}

// List returns a filtered page of users, newest first.
func (r *UserRepository) List(ctx context.Context, f models.UserFilter) ([]*models.User, int, error) {
	where := squirrel.And{}
	if !f.IncludeDeleted {
		where = append(where, squirrel.Expr("deleted_at IS NULL"))
	}
	if f.Status != "" {
		where = append(where, squirrel.Eq{"status": string(f.Status)})
	}
	if f.Role != "" {
		where = append(where, squirrel.Eq{"role": string(f.Role)})
	}
	if f.Query != "" {
		pattern := likePattern(f.Query)
		where = append(where, squirrel.Or{
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
		})
	}

	p := f.Pagination.Normalize()
	count := psql.Select("COUNT(*)").From("users").Where(where)
	list := psql.Select(models.UserColumns).From("users").Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset()))

	return countAndList(ctx, r.db, count, list, models.ScanUser, "user")
}

// ListActiveByRoles returns every active, live user holding one of roles.
func (r *UserRepository) ListActiveByRoles(ctx context.Context, roles []models.Role) ([]*models.User, error) {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+models.UserColumns+` FROM users
		WHERE status = 'ACTIVE' AND deleted_at IS NULL AND role = ANY($1)
		ORDER BY created_at`,
		names,
	)
	if err != nil {
		return nil, mapError(err, "user")
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := models.ScanUser(rows)
		if err != nil {
			return nil, mapError(err, "user")
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "user")
	}
	return users, nil
}
