package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/repository"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
	"github.com/urocareerz/urocareerz-api/pkg/metrics"
	"github.com/urocareerz/urocareerz-api/pkg/sanitize"
)

// DiscussionService manages community threads, their comments and view counts.
type DiscussionService struct {
	repo  repository.DiscussionRepositoryInterface
	audit *AuditService
}

// NewDiscussionService creates a new DiscussionService
func NewDiscussionService(repo repository.DiscussionRepositoryInterface, audit *AuditService) *DiscussionService {
	return &DiscussionService{repo: repo, audit: audit}
}

func (s *DiscussionService) List(ctx context.Context, filter models.ThreadFilter) (models.ListResult[*models.DiscussionThread], error) {
	items, total, err := s.repo.ListThreads(ctx, filter)
	if err != nil {
		return models.ListResult[*models.DiscussionThread]{}, err
	}
	return models.NewListResult(items, total, filter.Pagination), nil
}

// Get returns a thread with its comments in posting order.
func (s *DiscussionService) Get(ctx context.Context, id string) (*models.ThreadDetail, error) {
	thread, err := s.repo.GetThread(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrDiscussionNotFound)
	}

	comments, err := s.repo.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.DiscussionComment{}
	}

	return &models.ThreadDetail{Thread: thread, Comments: comments}, nil
}

func (s *DiscussionService) Create(ctx context.Context, actor models.Actor, req *models.CreateThreadRequest) (*models.DiscussionThread, error) {
	tags := make([]string, 0, len(req.Tags))
	for _, t := range req.Tags {
		if clean := sanitize.Text(t); clean != "" {
			tags = append(tags, clean)
		}
	}

	thread, err := s.repo.CreateThread(ctx, &models.DiscussionThread{
		AuthorID: actor.UserID,
		Title:    sanitize.Text(req.Title),
		Content:  sanitize.HTML(req.Content),
		Category: req.Category,
		Tags:     tags,
		Status:   models.DiscussionActive,
	})
	if err != nil {
		return nil, err
	}

	metrics.DiscussionActivity.WithLabelValues("thread").Inc()
	logger.Info("Discussion thread created",
		zap.String("thread_id", thread.ID),
		zap.String("author_id", actor.UserID),
		zap.String("category", thread.Category))

	return thread, nil
}

// UpdateStatus closes or archives a thread. Only the author or an admin may do so.
func (s *DiscussionService) UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.DiscussionStatus) (*models.DiscussionThread, error) {
	thread, err := s.repo.GetThread(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrDiscussionNotFound)
	}
	if thread.AuthorID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if !thread.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("thread is %s: %w", thread.Status, ErrInvalidTransition)
	}

	updated, err := s.repo.UpdateThreadStatus(ctx, id, thread.Status, status)
	if err != nil {
		return nil, notFoundAs(err, ErrDiscussionNotFound)
	}

	if actor.IsAdmin() && thread.AuthorID != actor.UserID {
		s.audit.Record(ctx, actor, models.AuditDiscussionStatusChanged, models.EntityDiscussion, id,
			map[string]any{"from": string(thread.Status), "to": string(status)})
	}
	return updated, nil
}

// Delete soft-deletes a thread. Only the author or an admin may do so.
func (s *DiscussionService) Delete(ctx context.Context, actor models.Actor, id string) error {
	thread, err := s.repo.GetThread(ctx, id)
	if err != nil {
		return notFoundAs(err, ErrDiscussionNotFound)
	}
	if thread.AuthorID != actor.UserID && !actor.IsAdmin() {
		return ErrForbidden
	}

	if err := s.repo.SoftDeleteThread(ctx, id); err != nil {
		return notFoundAs(err, ErrDiscussionNotFound)
	}

	logger.Info("Discussion thread deleted",
		zap.String("thread_id", id),
		zap.String("actor_id", actor.UserID))
	if actor.IsAdmin() && thread.AuthorID != actor.UserID {
		s.audit.Record(ctx, actor, models.AuditDiscussionDeleted, models.EntityDiscussion, id,
			map[string]any{"title": thread.Title, "authorId": thread.AuthorID})
	}
	return nil
}

// AddComment posts to an ACTIVE thread. A reply's parent must belong to the same thread.
func (s *DiscussionService) AddComment(ctx context.Context, actor models.Actor, threadID string, req *models.CreateCommentRequest) (*models.DiscussionComment, error) {
	thread, err := s.repo.GetThread(ctx, threadID)
	if err != nil {
		return nil, notFoundAs(err, ErrDiscussionNotFound)
	}
	if !thread.Status.AcceptsComments() {
		return nil, ErrDiscussionClosed
	}

	if req.ParentID != nil && *req.ParentID != "" {
		if _, err := s.repo.GetComment(ctx, threadID, *req.ParentID); err != nil {
			return nil, notFoundAs(err, ErrCommentNotFound)
		}
	} else {
		req.ParentID = nil
	}

	content := sanitize.HTML(req.Content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	comment, err := s.repo.CreateComment(ctx, &models.DiscussionComment{
		ThreadID: threadID,
		AuthorID: actor.UserID,
		ParentID: req.ParentID,
		Content:  content,
	})
	if err != nil {
		return nil, notFoundAs(err, ErrDiscussionNotFound)
	}

	metrics.DiscussionActivity.WithLabelValues("comment").Inc()
	return comment, nil
}

// DeleteComment removes a comment. Only its author or an admin may do so.
func (s *DiscussionService) DeleteComment(ctx context.Context, actor models.Actor, threadID, commentID string) error {
	comment, err := s.repo.GetComment(ctx, threadID, commentID)
	if err != nil {
		return notFoundAs(err, ErrCommentNotFound)
	}
	if comment.AuthorID != actor.UserID && !actor.IsAdmin() {
		return ErrForbidden
	}

	if err := s.repo.SoftDeleteComment(ctx, threadID, commentID); err != nil {
		return notFoundAs(err, ErrCommentNotFound)
	}

	if actor.IsAdmin() && comment.AuthorID != actor.UserID {
		s.audit.Record(ctx, actor, models.AuditCommentDeleted, models.EntityDiscussionComment, commentID,
			map[string]any{"threadId": threadID, "authorId": comment.AuthorID})
	}
	return nil
}

// RecordView counts the first view of a thread by each user.
func (s *DiscussionService) RecordView(ctx context.Context, actor models.Actor, threadID string) (*models.ViewResult, error) {
	if _, err := s.repo.GetThread(ctx, threadID); err != nil {
		return nil, notFoundAs(err, ErrDiscussionNotFound)
	}

	res, err := s.repo.RecordView(ctx, threadID, actor.UserID)
	if err != nil {
		return nil, notFoundAs(err, ErrDiscussionNotFound)
	}
	if res.Counted {
		metrics.DiscussionActivity.WithLabelValues("view").Inc()
	}
	return res, nil
}
