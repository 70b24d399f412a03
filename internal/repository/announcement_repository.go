package repository

import (
	"context"

	"github.com/urocareerz/urocareerz-api/internal/models"
)

// AnnouncementRepository records sent announcements.
type AnnouncementRepository struct {
	db DB
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) (*models.Announcement, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO announcements (subject, body, audience, recipient_count, failed_count, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+models.AnnouncementColumns,
		a.Subject, a.Body, string(a.Audience), a.RecipientCount, a.FailedCount, a.CreatedBy,
	)
	created, err := models.ScanAnnouncement(row)
	if err != nil {
		return nil, mapError(err, "announcement")
	}
	return created, nil
}

// List returns a page of announcements, newest first.
func (r *AnnouncementRepository) List(ctx context.Context, p models.Pagination) ([]*models.Announcement, int, error) {
	p = p.Normalize()
	count := psql.Select("COUNT(*)").From("announcements")
	list := psql.Select(models.AnnouncementColumns).From("announcements").
		OrderBy("created_at DESC").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset()))

	return countAndList(ctx, r.db, count, list, models.ScanAnnouncement, "announcement")
}
