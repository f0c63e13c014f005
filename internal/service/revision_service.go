package service

import (
	"fmt"

	"github.com/quillcms/quill-backend/internal/domain"
	"github.com/quillcms/quill-backend/internal/repository"
)

// RevisionService snapshots content changes into immutable history rows.
type RevisionService struct{}

// NewRevisionService creates a new RevisionService
func NewRevisionService() *RevisionService {
	return &RevisionService{}
}

// MaybeRecord inserts a revision when the patch actually changes any of
// title/content/excerpt. Only fields present in the patch are compared; an
// omitted field is never "changed". The snapshot carries the resulting
// post-patch values, is authored by the acting user and parented to the item
// being updated. Returns nil when no revision was needed.
//
// Revisions are never pruned; unbounded history growth is accepted.
func (s *RevisionService) MaybeRecord(st repository.Store, prev *domain.ContentItem, patch *domain.UpdateContentRequest, actor *domain.Actor) (*domain.ContentItem, error) {
	changed := false

	title := prev.Title
	if patch.Title != nil {
		if *patch.Title != prev.Title {
			changed = true
		}
		title = *patch.Title
	}

	content := prev.Content
	if patch.Content != nil {
		if *patch.Content != prev.Content {
			changed = true
		}
		content = *patch.Content
	}

	// excerpt is post-only; the update path discards it for pages, so a
	// page patch carrying only an excerpt must not leave a revision
	excerpt := prev.Excerpt
	if patch.Excerpt != nil && prev.Kind == domain.KindPost {
		if *patch.Excerpt != prev.Excerpt {
			changed = true
		}
		excerpt = *patch.Excerpt
	}

	if !changed {
		return nil, nil
	}

	parentID := prev.ID
	rev := &domain.ContentItem{
		Title:         title,
		Content:       content,
		Excerpt:       excerpt,
		Kind:          domain.KindRevision,
		Name:          fmt.Sprintf("%d-revision", prev.ID),
		AuthorID:      actor.ID,
		Status:        domain.StatusInherit,
		CommentStatus: domain.CommentsClosed,
		ParentID:      &parentID,
	}
	if err := st.Content().Create(rev); err != nil {
		return nil, err
	}
	return rev, nil
}
