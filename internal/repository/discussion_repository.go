package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/urocareerz/urocareerz-api/internal/models"
	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
)

// DiscussionRepository handles threads, comments and view tracking.
type DiscussionRepository struct {
	db DB
}

// NewDiscussionRepository creates a new discussion repository
func NewDiscussionRepository(db DB) *DiscussionRepository {
	return &DiscussionRepository{db: db}
}

func (r *DiscussionRepository) CreateThread(ctx context.Context, t *models.DiscussionThread) (*models.DiscussionThread, error) {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}

	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO discussion_threads (author_id, title, content, category, tags, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		t.AuthorID, t.Title, t.Content, t.Category, tags, string(models.DiscussionActive),
	).Scan(&id)
	if err != nil {
		return nil, mapError(err, "discussion")
	}
	return r.GetThread(ctx, id)
}

// GetThread returns a live thread.
func (r *DiscussionRepository) GetThread(ctx context.Context, id string) (*models.DiscussionThread, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+models.ThreadColumns+` FROM `+models.ThreadFrom+` WHERE d.id = $1 AND d.deleted_at IS NULL`,
		id,
	)
	t, err := models.ScanThread(row)
	if err != nil {
		return nil, mapError(err, "discussion")
	}
	return t, nil
}

// ListThreads returns a filtered page of live threads, newest first.
func (r *DiscussionRepository) ListThreads(ctx context.Context, f models.ThreadFilter) ([]*models.DiscussionThread, int, error) {
	where := squirrel.And{squirrel.Expr("d.deleted_at IS NULL")}
	if f.Status != "" {
		where = append(where, squirrel.Eq{"d.status": string(f.Status)})
	}
	if f.Category != "" {
		where = append(where, squirrel.Eq{"d.category": f.Category})
	}
	if f.Query != "" {
		pattern := likePattern(f.Query)
		where = append(where, squirrel.Or{
			squirrel.ILike{"d.title": pattern},
			squirrel.ILike{"d.content": pattern},
		})
	}

	p := f.Pagination.Normalize()
	count := psql.Select("COUNT(*)").From("discussion_threads d").Where(where)
	list := psql.Select(models.ThreadColumns).From(models.ThreadFrom).Where(where).
		OrderBy("d.created_at DESC").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset()))

	return countAndList(ctx, r.db, count, list, models.ScanThread, "discussion")
}

// UpdateThreadStatus moves a live thread from one status to another.
func (r *DiscussionRepository) UpdateThreadStatus(ctx context.Context, id string, from, to models.DiscussionStatus) (*models.DiscussionThread, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE discussion_threads SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2 AND deleted_at IS NULL`,
		id, string(from), string(to),
	)
	if err != nil {
		return nil, mapError(err, "discussion")
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("discussion is not %s: %w", from, apperrors.ErrConflict)
	}
	return r.GetThread(ctx, id)
}

func (r *DiscussionRepository) SoftDeleteThread(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE discussion_threads SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return mapError(err, "discussion")
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "discussion")
	}
	return nil
}

// CreateComment inserts a comment and bumps the thread's comment counter.
func (r *DiscussionRepository) CreateComment(ctx context.Context, c *models.DiscussionComment) (*models.DiscussionComment, error) {
	var id string
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO discussion_comments (thread_id, author_id, parent_id, content)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			c.ThreadID, c.AuthorID, c.ParentID, c.Content,
		).Scan(&id)
		if err != nil {
			return mapError(err, "comment")
		}

		_, err = tx.Exec(ctx,
			`UPDATE discussion_threads SET comment_count = comment_count + 1, updated_at = NOW() WHERE id = $1`,
			c.ThreadID,
		)
		return mapError(err, "discussion")
	})
	if err != nil {
		return nil, err
	}
	return r.GetComment(ctx, c.ThreadID, id)
}

// GetComment returns a live comment belonging to threadID.
func (r *DiscussionRepository) GetComment(ctx context.Context, threadID, id string) (*models.DiscussionComment, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+models.CommentColumns+`
		FROM discussion_comments c JOIN users u ON u.id = c.author_id
		WHERE c.id = $1 AND c.thread_id = $2 AND c.deleted_at IS NULL`,
		id, threadID,
	)
	c, err := models.ScanComment(row)
	if err != nil {
		return nil, mapError(err, "comment")
	}
	return c, nil
}

// ListComments returns a thread's live comments, oldest first.
func (r *DiscussionRepository) ListComments(ctx context.Context, threadID string) ([]*models.DiscussionComment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+models.CommentColumns+`
		FROM discussion_comments c JOIN users u ON u.id = c.author_id
		WHERE c.thread_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.created_at`,
		threadID,
	)
	if err != nil {
		return nil, mapError(err, "comment")
	}
	defer rows.Close()

	comments := []*models.DiscussionComment{}
	for rows.Next() {
		c, err := models.ScanComment(rows)
		if err != nil {
			return nil, mapError(err, "comment")
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "comment")
	}
	return comments, nil
}

// SoftDeleteComment hides a comment and decrements the thread's counter.
func (r *DiscussionRepository) SoftDeleteComment(ctx context.Context, threadID, id string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE discussion_comments SET deleted_at = NOW(), updated_at = NOW()
			WHERE id = $1 AND thread_id = $2 AND deleted_at IS NULL`,
			id, threadID,
		)
		if err != nil {
			return mapError(err, "comment")
		}
		if tag.RowsAffected() == 0 {
			return mapError(pgx.ErrNoRows, "comment")
		}

		_, err = tx.Exec(ctx, `
			UPDATE discussion_threads SET comment_count = GREATEST(comment_count - 1, 0), updated_at = NOW()
			WHERE id = $1`,
			threadID,
		)
		return mapError(err, "discussion")
	})
}

// RecordView counts a user's first view of a thread. Repeated views by the
// same user leave the counter unchanged.
func (r *DiscussionRepository) RecordView(ctx context.Context, threadID, userID string) (*models.ViewResult, error) {
	result := &models.ViewResult{}

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			INSERT INTO discussion_views (thread_id, user_id) VALUES ($1, $2)
			ON CONFLICT (thread_id, user_id) DO NOTHING`,
			threadID, userID,
		)
		if err != nil {
			return mapError(err, "discussion view")
		}

		if tag.RowsAffected() > 0 {
			result.Counted = true
			return mapError(tx.QueryRow(ctx, `
				UPDATE discussion_threads SET view_count = view_count + 1
				WHERE id = $1
				RETURNING view_count`,
				threadID,
			).Scan(&result.ViewCount), "discussion")
		}

		return mapError(tx.QueryRow(ctx,
			`SELECT view_count FROM discussion_threads WHERE id = $1`,
			threadID,
		).Scan(&result.ViewCount), "discussion")
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
