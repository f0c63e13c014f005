package domain

import "time"

// ContentKind discriminates the publishable kinds sharing one lifecycle.
// Revisions reuse the same table but are never lifecycle-managed on their own.
type ContentKind string

const (
	KindPost     ContentKind = "post"
	KindPage     ContentKind = "page"
	KindRevision ContentKind = "revision"
)

// Publishable reports whether the kind participates in the content lifecycle.
func (k ContentKind) Publishable() bool {
	return k == KindPost || k == KindPage
}

// ContentStatus is the lifecycle state of a content item.
//
// draft/pending/publish/private/trash are the public states; auto-draft and
// inherit are internal operate-states that callers can never set directly.
// auto-draft is the state right after Create and is reported to callers as
// draft. inherit marks revision snapshots.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPending   ContentStatus = "pending"
	StatusPublish   ContentStatus = "publish"
	StatusPrivate   ContentStatus = "private"
	StatusTrash     ContentStatus = "trash"
	StatusAutoDraft ContentStatus = "auto-draft"
	StatusInherit   ContentStatus = "inherit"
)

// Settable reports whether callers may request this status through the
// update/updateStatus paths.
func (s ContentStatus) Settable() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublish, StatusPrivate, StatusTrash:
		return true
	}
	return false
}

// CommentStatus controls whether an item accepts new comments.
type CommentStatus string

const (
	CommentsOpen   CommentStatus = "open"
	CommentsClosed CommentStatus = "closed"
)

// ContentItem is a post, page or revision row.
type ContentItem struct {
	ID            uint64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title         string        `gorm:"column:title;type:varchar(255)" json:"title"`
	Content       string        `gorm:"column:content;type:mediumtext" json:"content"`
	Excerpt       string        `gorm:"column:excerpt;type:text" json:"excerpt"`
	Kind          ContentKind   `gorm:"column:kind;type:varchar(20);index" json:"kind"`
	Name          string        `gorm:"column:name;type:varchar(200);index" json:"name"`
	AuthorID      uint64        `gorm:"column:author_id;index" json:"author_id"`
	Status        ContentStatus `gorm:"column:status;type:varchar(20);index" json:"status"`
	CommentStatus CommentStatus `gorm:"column:comment_status;type:varchar(20);default:'open'" json:"comment_status"`
	CommentCount  uint          `gorm:"column:comment_count;default:0" json:"comment_count"`
	MenuOrder     int           `gorm:"column:menu_order;default:0" json:"menu_order"`
	ParentID      *uint64       `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContentItem) TableName() string { return "content_items" }

// PublicStatus maps internal operate-states to the externally visible value.
// auto-draft rows are always reported as draft.
func (c *ContentItem) PublicStatus() ContentStatus {
	if c.Status == StatusAutoDraft {
		return StatusDraft
	}
	return c.Status
}

// ToResponse converts the row into the API-facing shape.
func (c *ContentItem) ToResponse() *ContentResponse {
	return &ContentResponse{
		ID:            c.ID,
		Title:         c.Title,
		Content:       c.Content,
		Excerpt:       c.Excerpt,
		Kind:          c.Kind,
		Name:          c.Name,
		AuthorID:      c.AuthorID,
		Status:        c.PublicStatus(),
		CommentStatus: c.CommentStatus,
		CommentCount:  c.CommentCount,
		MenuOrder:     c.MenuOrder,
		ParentID:      c.ParentID,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ContentResponse is the external view of a content item.
type ContentResponse struct {
	ID            uint64        `json:"id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Excerpt       string        `json:"excerpt"`
	Kind          ContentKind   `json:"kind"`
	Name          string        `json:"name"`
	AuthorID      uint64        `json:"author_id"`
	Status        ContentStatus `json:"status"`
	CommentStatus CommentStatus `json:"comment_status"`
	CommentCount  uint          `json:"comment_count"`
	MenuOrder     int           `json:"menu_order"`
	ParentID      *uint64       `json:"parent_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// CreateContentRequest is the payload for creating a post or page.
// Author and status are forced by the service regardless of the caller.
type CreateContentRequest struct {
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	Excerpt       string         `json:"excerpt"`
	Kind          ContentKind    `json:"kind"`
	Name          string         `json:"name"`
	CommentStatus *CommentStatus `json:"comment_status,omitempty"`
	ParentID      *uint64        `json:"parent_id,omitempty"`
	MenuOrder     *int           `json:"menu_order,omitempty"`
}

// UpdateContentRequest is a partial patch. Pointer fields distinguish
// "omitted" from "set to empty": a nil field is never touched.
type UpdateContentRequest struct {
	Title         *string        `json:"title,omitempty"`
	Content       *string        `json:"content,omitempty"`
	Excerpt       *string        `json:"excerpt,omitempty"`
	Name          *string        `json:"name,omitempty"`
	Status        *ContentStatus `json:"status,omitempty"`
	CommentStatus *CommentStatus `json:"comment_status,omitempty"`
	ParentID      *uint64        `json:"parent_id,omitempty"`
	MenuOrder     *int           `json:"menu_order,omitempty"`
}

// ContentFilter narrows List queries.
type ContentFilter struct {
	Kind     *ContentKind
	Status   *ContentStatus
	AuthorID *uint64
}

// RestoreResult distinguishes a real restore from a no-op (no trash
// bookkeeping found for the item).
type RestoreResult struct {
	Restored bool             `json:"restored"`
	Item     *ContentResponse `json:"item,omitempty"`
}
