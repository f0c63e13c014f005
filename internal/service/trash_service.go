package service

import (
	"fmt"
	"time"

	"github.com/quillcms/quill-backend/internal/domain"
	"github.com/quillcms/quill-backend/internal/repository"
)

// Trash bookkeeping keys. Both are private: generic meta callers can never
// see or overwrite them.
const (
	TrashStatusKey = "_trash_meta_status"
	TrashTimeKey   = "_trash_meta_time"
)

// TrashService remembers the status an item had right before it was trashed
// so restore can bring it back. Built entirely on the metadata store.
type TrashService struct {
	meta *MetaService
}

// NewTrashService creates a new TrashService
func NewTrashService(meta *MetaService) *TrashService {
	return &TrashService{meta: meta}
}

// Remember upserts the bookkeeping pair for one item. Re-trashing without an
// intervening restore should not happen, but when it does the entries are
// overwritten, never duplicated.
func (s *TrashService) Remember(st repository.Store, itemID uint64, prior domain.ContentStatus) error {
	if err := s.meta.UpsertInternal(st, domain.OwnerPost, itemID, TrashStatusKey, string(prior)); err != nil {
		return err
	}
	return s.meta.UpsertInternal(st, domain.OwnerPost, itemID, TrashTimeKey,
		fmt.Sprintf("%d", time.Now().Unix()))
}

// RememberBulk captures each item's status as it is at the moment of
// trashing, then upserts bookkeeping for all of them.
func (s *TrashService) RememberBulk(st repository.Store, items []*domain.ContentItem) error {
	for _, item := range items {
		if err := s.Remember(st, item.ID, item.PublicStatus()); err != nil {
			return err
		}
	}
	return nil
}

// Recall returns the stored prior status, or false when no bookkeeping
// exists for the item.
func (s *TrashService) Recall(itemID uint64) (domain.ContentStatus, bool, error) {
	entry, err := s.meta.GetInternal(domain.OwnerPost, itemID, TrashStatusKey)
	if err != nil {
		return "", false, err
	}
	if entry == nil {
		return "", false, nil
	}
	return domain.ContentStatus(entry.Value), true, nil
}

// RecallBulk returns the prior statuses for every id that has bookkeeping.
func (s *TrashService) RecallBulk(st repository.Store, itemIDs []uint64) (map[uint64]domain.ContentStatus, error) {
	values, err := s.meta.GetInternalForOwners(st, domain.OwnerPost, itemIDs, TrashStatusKey)
	if err != nil {
		return nil, err
	}
	statuses := make(map[uint64]domain.ContentStatus, len(values))
	for id, v := range values {
		statuses[id] = domain.ContentStatus(v)
	}
	return statuses, nil
}

// Forget deletes the bookkeeping entries for the items; called after a
// successful restore.
func (s *TrashService) Forget(st repository.Store, itemIDs ...uint64) error {
	for _, id := range itemIDs {
		if err := s.meta.DeleteInternal(st, domain.OwnerPost, id, TrashStatusKey, TrashTimeKey); err != nil {
			return err
		}
	}
	return nil
}
