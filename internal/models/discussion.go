package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

type DiscussionStatus string

const (
	DiscussionActive   DiscussionStatus = "ACTIVE"
	DiscussionClosed   DiscussionStatus = "CLOSED"
	DiscussionArchived DiscussionStatus = "ARCHIVED"
)

func (s DiscussionStatus) IsValid() bool {
	return s == DiscussionActive || s == DiscussionClosed || s == DiscussionArchived
}

// CanTransitionTo: ACTIVE -> CLOSED|ARCHIVED, CLOSED -> ARCHIVED.
func (s DiscussionStatus) CanTransitionTo(newStatus DiscussionStatus) bool {
	switch s {
	case DiscussionActive:
		return newStatus == DiscussionClosed || newStatus == DiscussionArchived
	case DiscussionClosed:
		return newStatus == DiscussionArchived
	default:
		return false
	}
}

// AcceptsComments reports whether new comments may be posted.
func (s DiscussionStatus) AcceptsComments() bool {
	return s == DiscussionActive
}

// DiscussionCategories lists the allowed thread categories.
var DiscussionCategories = []string{"GENERAL", "CAREER_ADVICE", "RESEARCH", "CLINICAL", "EDUCATION", "NETWORKING"}

type DiscussionThread struct {
	ID           string           `json:"id"`
	AuthorID     string           `json:"authorId"`
	AuthorName   string           `json:"authorName"`
	AuthorRole   Role             `json:"authorRole"`
	Title        string           `json:"title"`
	Content      string           `json:"content"`
	Category     string           `json:"category"`
	Tags         []string         `json:"tags"`
	Status       DiscussionStatus `json:"status"`
	ViewCount    int              `json:"viewCount"`
	CommentCount int              `json:"commentCount"`
	DeletedAt    *time.Time       `json:"deletedAt,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// ThreadColumns selects a thread "d" joined to its author "u".
const ThreadColumns = `d.id, d.author_id, u.first_name || ' ' || u.last_name, u.role, d.title, d.content,
	d.category, d.tags, d.status, d.view_count, d.comment_count, d.deleted_at, d.created_at, d.updated_at`

const ThreadFrom = `discussion_threads d JOIN users u ON u.id = d.author_id`

func ScanThread(row pgx.Row) (*DiscussionThread, error) {
	var d DiscussionThread
	var role, status string
	err := row.Scan(
		&d.ID,
		&d.AuthorID,
		&d.AuthorName,
		&role,
		&d.Title,
		&d.Content,
		&d.Category,
		&d.Tags,
		&status,
		&d.ViewCount,
		&d.CommentCount,
		&d.DeletedAt,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.AuthorRole = Role(role)
	d.Status = DiscussionStatus(status)
	if d.Tags == nil {
		d.Tags = []string{}
	}
	return &d, nil
}

type DiscussionComment struct {
	ID         string    `json:"id"`
	ThreadID   string    `json:"threadId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	ParentID   *string   `json:"parentId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

const CommentColumns = `c.id, c.thread_id, c.author_id, u.first_name || ' ' || u.last_name,
	c.parent_id, c.content, c.created_at, c.updated_at`

func ScanComment(row pgx.Row) (*DiscussionComment, error) {
	var c DiscussionComment
	err := row.Scan(&c.ID, &c.ThreadID, &c.AuthorID, &c.AuthorName, &c.ParentID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type ThreadDetail struct {
	Thread   *DiscussionThread    `json:"thread"`
	Comments []*DiscussionComment `json:"comments"`
}

type CreateThreadRequest struct {
	Title    string   `json:"title" binding:"required,min=3,max=200"`
	Content  string   `json:"content" binding:"required,min=1,max=20000"`
	Category string   `json:"category" binding:"required,oneof=GENERAL CAREER_ADVICE RESEARCH CLINICAL EDUCATION NETWORKING"`
	Tags     []string `json:"tags" binding:"max=10,dive,min=1,max=50"`
}

type CreateCommentRequest struct {
	Content  string  `json:"content" binding:"required,min=1,max=5000"`
	ParentID *string `json:"parentId" binding:"omitempty,uuid"`
}

type UpdateThreadStatusRequest struct {
	Status DiscussionStatus `json:"status" binding:"required,oneof=CLOSED ARCHIVED"`
}

type ThreadFilter struct {
	Status   DiscussionStatus
	Category string
	Query    string
	Pagination
}

// ViewResult reports whether a view call counted.
type ViewResult struct {
	Counted   bool `json:"counted"`
	ViewCount int  `json:"viewCount"`
}
