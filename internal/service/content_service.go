package service

import (
	"context"
	"fmt"

	"github.com/quillcms/quill-backend/internal/common"
	"github.com/quillcms/quill-backend/internal/domain"
	"github.com/quillcms/quill-backend/internal/repository"
)

// ContentOptions is the read-only configuration surface the coordinator
// consults for defaults.
type ContentOptions interface {
	GetString(ctx context.Context, name, def string) string
	GetBool(ctx context.Context, name string, def bool) bool
}

// ContentService is the lifecycle coordinator for posts and pages: the only
// entry point the API layer talks to. It enforces authorization, drives the
// status state machine, and keeps trash bookkeeping, revisions and names
// consistent inside one transaction per operation.
type ContentService interface {
	Get(id uint64) (*domain.ContentResponse, error)
	List(filter domain.ContentFilter, page, limit int) ([]*domain.ContentResponse, *common.Meta, error)
	Create(actor *domain.Actor, req *domain.CreateContentRequest) (*domain.ContentResponse, error)
	Update(actor *domain.Actor, id uint64, patch *domain.UpdateContentRequest) (*domain.ContentResponse, error)
	UpdateStatus(actor *domain.Actor, id uint64, status domain.ContentStatus) (*domain.ContentResponse, error)
	BulkUpdateStatus(actor *domain.Actor, ids []uint64, status domain.ContentStatus) error
	UpdateName(actor *domain.Actor, id uint64, name string) (*domain.ContentResponse, error)
	UpdateCommentStatus(actor *domain.Actor, id uint64, cs domain.CommentStatus) (*domain.ContentResponse, error)
	Restore(actor *domain.Actor, id uint64) (*domain.RestoreResult, error)
	BulkRestore(actor *domain.Actor, ids []uint64) ([]uint64, error)
	Delete(actor *domain.Actor, id uint64) (bool, error)
	BulkDelete(actor *domain.Actor, ids []uint64) error
}

type contentService struct {
	store     repository.Store
	guard     CapabilityGuard
	names     *NameService
	revisions *RevisionService
	trash     *TrashService
	options   ContentOptions
}

// NewContentService creates a new ContentService
func NewContentService(store repository.Store, guard CapabilityGuard, names *NameService,
	revisions *RevisionService, trash *TrashService, options ContentOptions) ContentService {
	return &contentService{
		store:     store,
		guard:     guard,
		names:     names,
		revisions: revisions,
		trash:     trash,
		options:   options,
	}
}

// Get fetches a single post or page. Revision rows and missing ids both
// read as absent.
func (s *contentService) Get(id uint64) (*domain.ContentResponse, error) {
	item, err := s.findPublishable(id)
	if err != nil || item == nil {
		return nil, err
	}
	return item.ToResponse(), nil
}

// List returns a paginated list of posts and pages.
func (s *contentService) List(filter domain.ContentFilter, page, limit int) ([]*domain.ContentResponse, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := s.store.Content().List(filter, page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.ContentResponse, len(items))
	for i, item := range items {
		responses[i] = item.ToResponse()
	}

	return responses, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

// Create inserts a new post or page. Author and initial status are forced:
// the row starts as an auto-draft owned by the acting user no matter what the
// caller supplied, and is reported back as a draft.
func (s *contentService) Create(actor *domain.Actor, req *domain.CreateContentRequest) (*domain.ContentResponse, error) {
	if !req.Kind.Publishable() {
		return nil, fmt.Errorf("kind must be post or page: %w", common.ErrValidation)
	}
	if err := s.guard.RequireCapability(actor, domain.BaseCap(domain.FamilyEdit, req.Kind)); err != nil {
		return nil, err
	}

	item := &domain.ContentItem{
		Title:         req.Title,
		Content:       req.Content,
		Kind:          req.Kind,
		AuthorID:      actor.ID,
		Status:        domain.StatusAutoDraft,
		CommentStatus: s.defaultCommentStatus(req),
		ParentID:      req.ParentID,
	}
	if req.Kind == domain.KindPost {
		item.Excerpt = req.Excerpt
	}
	if req.MenuOrder != nil {
		item.MenuOrder = *req.MenuOrder
	}

	candidate := req.Name
	if candidate == "" {
		candidate = req.Title
	}

	err := s.store.Transaction(func(tx repository.Store) error {
		name, err := s.names.ResolveUniqueName(tx, candidate)
		if err != nil {
			return err
		}
		item.Name = name
		return tx.Content().Create(item)
	})
	if err != nil {
		return nil, err
	}
	return item.ToResponse(), nil
}

// Update applies a partial patch. Patches submitted against a revision id
// land on the canonical parent item. A patch that trashes the item
// additionally needs the delete-family authorization and records trash
// bookkeeping; a patch that changes title/content/excerpt leaves a revision.
func (s *contentService) Update(actor *domain.Actor, id uint64, patch *domain.UpdateContentRequest) (*domain.ContentResponse, error) {
	item, err := s.store.Content().FindByID(id)
	if err != nil || item == nil {
		return nil, err
	}
	if item.Kind == domain.KindRevision {
		if item.ParentID == nil {
			return nil, nil
		}
		item, err = s.store.Content().FindByID(*item.ParentID)
		if err != nil || item == nil {
			return nil, err
		}
	}
	if !item.Kind.Publishable() {
		return nil, nil
	}

	if err := s.authorize(actor, item, domain.FamilyEdit); err != nil {
		return nil, err
	}
	if item.Status == domain.StatusTrash {
		return nil, fmt.Errorf("trashed items cannot be edited, restore it first: %w", common.ErrValidation)
	}

	if patch.Status != nil {
		if !patch.Status.Settable() {
			return nil, fmt.Errorf("status %q cannot be set directly: %w", *patch.Status, common.ErrValidation)
		}
		if *patch.Status == domain.StatusTrash {
			if err := s.authorize(actor, item, domain.FamilyDelete); err != nil {
				return nil, err
			}
		}
	}

	err = s.store.Transaction(func(tx repository.Store) error {
		if _, err := s.revisions.MaybeRecord(tx, item, patch, actor); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.Content != nil {
			updates["content"] = *patch.Content
		}
		if patch.Excerpt != nil && item.Kind == domain.KindPost {
			updates["excerpt"] = *patch.Excerpt
		}
		if patch.Name != nil {
			name, err := s.resolveNameChange(tx, item, *patch.Name)
			if err != nil {
				return err
			}
			if name != "" {
				updates["name"] = name
			}
		}
		if patch.CommentStatus != nil {
			updates["comment_status"] = *patch.CommentStatus
		}
		if patch.MenuOrder != nil {
			updates["menu_order"] = *patch.MenuOrder
		}
		if patch.ParentID != nil {
			updates["parent_id"] = *patch.ParentID
		}

		switch {
		case patch.Status != nil:
			updates["status"] = *patch.Status
			if *patch.Status == domain.StatusTrash {
				if err := s.trash.Remember(tx, item.ID, item.PublicStatus()); err != nil {
					return err
				}
			}
		case item.Status == domain.StatusAutoDraft:
			// the first update promotes the auto-draft
			updates["status"] = domain.StatusDraft
		}

		return tx.Content().UpdateFields(item.ID, updates)
	})
	if err != nil {
		return nil, err
	}

	return s.reload(item.ID)
}

// UpdateStatus transitions one item. Trashing requires the delete family;
// every other transition the edit family. Trash is terminal here: trashed
// items must be restored first.
func (s *contentService) UpdateStatus(actor *domain.Actor, id uint64, status domain.ContentStatus) (*domain.ContentResponse, error) {
	if !status.Settable() {
		return nil, fmt.Errorf("status %q cannot be set directly: %w", status, common.ErrValidation)
	}

	item, err := s.findPublishable(id)
	if err != nil || item == nil {
		return nil, err
	}

	family := domain.FamilyEdit
	if status == domain.StatusTrash {
		family = domain.FamilyDelete
	}
	if err := s.authorize(actor, item, family); err != nil {
		return nil, err
	}
	if item.Status == domain.StatusTrash {
		return nil, fmt.Errorf("item %d is in the trash, restore it first: %w", id, common.ErrValidation)
	}

	if status == domain.StatusTrash {
		err = s.store.Transaction(func(tx repository.Store) error {
			if err := s.trash.Remember(tx, item.ID, item.PublicStatus()); err != nil {
				return err
			}
			return tx.Content().UpdateStatus([]uint64{item.ID}, status)
		})
	} else {
		err = s.store.Content().UpdateStatus([]uint64{item.ID}, status)
	}
	if err != nil {
		return nil, err
	}

	return s.reload(item.ID)
}

// BulkUpdateStatus transitions a batch all-or-nothing: every id is
// authorized and checked against the trash precondition before any write,
// and a single failure rejects the whole batch.
func (s *contentService) BulkUpdateStatus(actor *domain.Actor, ids []uint64, status domain.ContentStatus) error {
	if !status.Settable() {
		return fmt.Errorf("status %q cannot be set directly: %w", status, common.ErrValidation)
	}
	if len(ids) == 0 {
		return nil
	}

	items, err := s.loadBatch(ids)
	if err != nil {
		return err
	}

	family := domain.FamilyEdit
	if status == domain.StatusTrash {
		family = domain.FamilyDelete
	}
	for _, item := range items {
		if err := s.authorize(actor, item, family); err != nil {
			return err
		}
		if item.Status == domain.StatusTrash {
			return fmt.Errorf("item %d is in the trash, restore it first: %w", item.ID, common.ErrValidation)
		}
	}

	return s.store.Transaction(func(tx repository.Store) error {
		if status == domain.StatusTrash {
			if err := s.trash.RememberBulk(tx, items); err != nil {
				return err
			}
		}
		return tx.Content().UpdateStatus(ids, status)
	})
}

// UpdateName sets a new unique URL-safe name for the item.
func (s *contentService) UpdateName(actor *domain.Actor, id uint64, name string) (*domain.ContentResponse, error) {
	item, err := s.findPublishable(id)
	if err != nil || item == nil {
		return nil, err
	}
	if err := s.authorize(actor, item, domain.FamilyEdit); err != nil {
		return nil, err
	}
	if item.Status == domain.StatusTrash {
		return nil, fmt.Errorf("trashed items cannot be edited, restore it first: %w", common.ErrValidation)
	}

	err = s.store.Transaction(func(tx repository.Store) error {
		resolved, err := s.resolveNameChange(tx, item, name)
		if err != nil {
			return err
		}
		if resolved == "" {
			return nil
		}
		return tx.Content().UpdateFields(item.ID, map[string]interface{}{"name": resolved})
	})
	if err != nil {
		return nil, err
	}

	return s.reload(item.ID)
}

// UpdateCommentStatus opens or closes comments on the item.
func (s *contentService) UpdateCommentStatus(actor *domain.Actor, id uint64, cs domain.CommentStatus) (*domain.ContentResponse, error) {
	if cs != domain.CommentsOpen && cs != domain.CommentsClosed {
		return nil, fmt.Errorf("comment status must be open or closed: %w", common.ErrValidation)
	}

	item, err := s.findPublishable(id)
	if err != nil || item == nil {
		return nil, err
	}
	if err := s.authorize(actor, item, domain.FamilyEdit); err != nil {
		return nil, err
	}
	if item.Status == domain.StatusTrash {
		return nil, fmt.Errorf("trashed items cannot be edited, restore it first: %w", common.ErrValidation)
	}

	if err := s.store.Content().UpdateFields(item.ID, map[string]interface{}{"comment_status": cs}); err != nil {
		return nil, err
	}
	return s.reload(item.ID)
}

// Restore brings a trashed item back to its remembered status and clears the
// bookkeeping. Without bookkeeping it is a no-op, not an error.
func (s *contentService) Restore(actor *domain.Actor, id uint64) (*domain.RestoreResult, error) {
	item, err := s.findPublishable(id)
	if err != nil || item == nil {
		return nil, err
	}

	prior, found, err := s.trash.Recall(item.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return &domain.RestoreResult{Restored: false}, nil
	}

	if err := s.authorize(actor, item, domain.FamilyEdit); err != nil {
		return nil, err
	}

	prior = sanitizePriorStatus(prior)
	err = s.store.Transaction(func(tx repository.Store) error {
		if err := tx.Content().UpdateStatus([]uint64{item.ID}, prior); err != nil {
			return err
		}
		return s.trash.Forget(tx, item.ID)
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.reload(item.ID)
	if err != nil {
		return nil, err
	}
	return &domain.RestoreResult{Restored: true, Item: resp}, nil
}

// BulkRestore restores a batch: recall, status writes and forget all happen
// inside one transaction. Ids with no bookkeeping are silently skipped;
// returns the ids actually restored.
func (s *contentService) BulkRestore(actor *domain.Actor, ids []uint64) ([]uint64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var restored []uint64
	err := s.store.Transaction(func(tx repository.Store) error {
		items, err := tx.Content().FindByIDs(ids)
		if err != nil {
			return err
		}
		priors, err := s.trash.RecallBulk(tx, ids)
		if err != nil {
			return err
		}

		var targets []*domain.ContentItem
		for _, item := range items {
			if !item.Kind.Publishable() {
				continue
			}
			if _, ok := priors[item.ID]; ok {
				targets = append(targets, item)
			}
		}
		for _, item := range targets {
			if err := s.authorize(actor, item, domain.FamilyEdit); err != nil {
				return err
			}
		}

		// group by prior status so each status needs only one write
		byStatus := map[domain.ContentStatus][]uint64{}
		for _, item := range targets {
			prior := sanitizePriorStatus(priors[item.ID])
			byStatus[prior] = append(byStatus[prior], item.ID)
			restored = append(restored, item.ID)
		}
		for status, group := range byStatus {
			if err := tx.Content().UpdateStatus(group, status); err != nil {
				return err
			}
		}
		return s.trash.Forget(tx, restored...)
	})
	if err != nil {
		return nil, err
	}
	return restored, nil
}

// Delete permanently removes one trashed item together with its revisions
// and meta entries. Returns false when the id does not exist.
func (s *contentService) Delete(actor *domain.Actor, id uint64) (bool, error) {
	item, err := s.findPublishable(id)
	if err != nil || item == nil {
		return false, err
	}
	if err := s.authorize(actor, item, domain.FamilyDelete); err != nil {
		return false, err
	}
	if item.Status != domain.StatusTrash {
		return false, fmt.Errorf("only trashed items can be permanently deleted: %w", common.ErrValidation)
	}

	err = s.deleteCascade([]uint64{item.ID})
	if err != nil {
		return false, err
	}
	return true, nil
}

// BulkDelete permanently removes a batch of trashed items all-or-nothing.
func (s *contentService) BulkDelete(actor *domain.Actor, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}

	items, err := s.loadBatch(ids)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.authorize(actor, item, domain.FamilyDelete); err != nil {
			return err
		}
		if item.Status != domain.StatusTrash {
			return fmt.Errorf("item %d is not in the trash: %w", item.ID, common.ErrValidation)
		}
	}

	return s.deleteCascade(ids)
}

// ========================================
// internal helpers
// ========================================

// authorize runs the capability checks for the family in their fixed order:
// base capability, then "published" when the item is published, then
// "others'" when the actor is not the author, then "private" for other
// users' private items. The published elevation applies only to the Publish
// status, not Private; the asymmetry is deliberate.
func (s *contentService) authorize(actor *domain.Actor, item *domain.ContentItem, family domain.CapFamily) error {
	kind := item.Kind
	if err := s.guard.RequireCapability(actor, domain.BaseCap(family, kind)); err != nil {
		return err
	}
	if item.Status == domain.StatusPublish {
		if err := s.guard.RequireCapability(actor, domain.PublishedCap(family, kind)); err != nil {
			return err
		}
	}
	if actor == nil || actor.ID != item.AuthorID {
		if err := s.guard.RequireCapability(actor, domain.OthersCap(family, kind)); err != nil {
			return err
		}
		if item.Status == domain.StatusPrivate {
			if err := s.guard.RequireCapability(actor, domain.PrivateCap(family, kind)); err != nil {
				return err
			}
		}
	}
	return nil
}

// findPublishable fetches a post or page; revisions read as absent.
func (s *contentService) findPublishable(id uint64) (*domain.ContentItem, error) {
	item, err := s.store.Content().FindByID(id)
	if err != nil || item == nil {
		return nil, err
	}
	if !item.Kind.Publishable() {
		return nil, nil
	}
	return item, nil
}

// loadBatch fetches every id and fails the batch when any is missing.
func (s *contentService) loadBatch(ids []uint64) ([]*domain.ContentItem, error) {
	rows, err := s.store.Content().FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*domain.ContentItem, len(rows))
	for _, item := range rows {
		if item.Kind.Publishable() {
			byID[item.ID] = item
		}
	}

	items := make([]*domain.ContentItem, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("content item %d not found: %w", id, common.ErrValidation)
		}
		items = append(items, item)
	}
	return items, nil
}

// resolveNameChange returns the unique name to store, or "" when the
// requested name already matches the current one.
func (s *contentService) resolveNameChange(tx repository.Store, item *domain.ContentItem, requested string) (string, error) {
	candidate := requested
	if candidate == "" {
		candidate = item.Title
	}
	return s.names.ResolveNameChange(tx, item.Name, candidate)
}

func (s *contentService) reload(id uint64) (*domain.ContentResponse, error) {
	item, err := s.store.Content().FindByID(id)
	if err != nil || item == nil {
		return nil, err
	}
	return item.ToResponse(), nil
}

func (s *contentService) defaultCommentStatus(req *domain.CreateContentRequest) domain.CommentStatus {
	if req.CommentStatus != nil {
		return *req.CommentStatus
	}
	ctx := context.Background()
	if req.Kind == domain.KindPage && s.options != nil &&
		!s.options.GetBool(ctx, domain.OptionPageCommentsEnabled, true) {
		return domain.CommentsClosed
	}
	def := string(domain.CommentsOpen)
	if s.options != nil {
		def = s.options.GetString(ctx, domain.OptionDefaultCommentStatus, def)
	}
	if def == string(domain.CommentsClosed) {
		return domain.CommentsClosed
	}
	return domain.CommentsOpen
}

// sanitizePriorStatus guards against corrupt bookkeeping: anything that is
// not a public settable status restores as draft.
func sanitizePriorStatus(prior domain.ContentStatus) domain.ContentStatus {
	if !prior.Settable() || prior == domain.StatusTrash {
		return domain.StatusDraft
	}
	return prior
}

func (s *contentService) deleteCascade(ids []uint64) error {
	return s.store.Transaction(func(tx repository.Store) error {
		if err := tx.Content().DeleteRevisionsOf(ids); err != nil {
			return err
		}
		if err := tx.Meta().DeleteByOwners(domain.OwnerPost, ids); err != nil {
			return err
		}
		return tx.Content().Delete(ids)
	})
}
