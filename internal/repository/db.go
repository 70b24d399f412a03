package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
)

// Querier is satisfied by the pool, pgx.Tx and pgxmock.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is a Querier that can open transactions.
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// psql builds $n-placeholder statements.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidTextRep      = "22P02" // malformed uuid literal
)

// mapError converts pgx/pgconn errors into application error categories.
// Context errors pass through untouched.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", entity, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFoundError(entity)
	}

	// Constraint names stay out of the message; it may reach clients.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.ConflictError(entity + " already exists")
		case pgForeignKeyViolation:
			return fmt.Errorf("%s references a missing record: %w", entity, apperrors.ErrNotFound)
		case pgCheckViolation:
			logger.Warn("Check constraint violated",
				zap.String("entity", entity),
				zap.String("constraint", pgErr.ConstraintName))
			return apperrors.InvalidInputError(entity, "contains a value that is not allowed")
		case pgInvalidTextRep:
			return apperrors.NotFoundError(entity)
		}
	}

	return fmt.Errorf("%s: %w", entity, err)
}

// isForeignKeyViolation reports a 23503 error, used where a delete is blocked by references.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// withTx runs fn inside a transaction, committing on success.
func withTx(ctx context.Context, db DB, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) //nolint:errcheck // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// countAndList runs a COUNT(*) over base and then the paged select.
func countAndList[T any](
	ctx context.Context,
	q Querier,
	countQuery, listQuery squirrel.SelectBuilder,
	scan func(pgx.Row) (T, error),
	entity string,
) ([]T, int, error) {
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build %s count: %w", entity, err)
	}
	var total int
	if err := q.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err, entity)
	}

	sql, args, err = listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build %s list: %w", entity, err)
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, mapError(err, entity)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, mapError(err, entity)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, entity)
	}
	return items, total, nil
}

// likePattern escapes LIKE wildcards and wraps the term in %.
func likePattern(term string) string {
	r := []rune{}
	for _, c := range term {
		if c == '%' || c == '_' || c == '\\' {
			r = append(r, '\\')
		}
		r = append(r, c)
	}
	return "%" + string(r) + "%"
}
