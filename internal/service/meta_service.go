package service

import (
	"fmt"
	"strings"

	"github.com/quillcms/quill-backend/internal/common"
	"github.com/quillcms/quill-backend/internal/domain"
	"github.com/quillcms/quill-backend/internal/repository"
)

// MetaService is the generic per-owner key/value extension store.
//
// Public operations never see entries whose key carries the private marker;
// system bookkeeping (trash status and the like) shares the same rows through
// the *Internal methods and is invisible to generic custom-field callers.
type MetaService struct {
	store repository.Store
	// prefix is the configured namespace prefix; reads match both the bare
	// and the prefixed form of a requested key.
	prefix string
}

// NewMetaService creates a new MetaService
func NewMetaService(store repository.Store, prefix string) *MetaService {
	return &MetaService{store: store, prefix: prefix}
}

// Get fetches one entry by id. Private entries are reported as absent.
func (s *MetaService) Get(id uint64) (*domain.MetaEntry, error) {
	entry, err := s.store.Meta().FindByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.IsPrivate() {
		return nil, nil
	}
	return entry, nil
}

// GetByKey fetches one entry by owner and key, matching the bare and the
// prefixed form. Requests for private-marked keys are reported as absent.
func (s *MetaService) GetByKey(ownerType domain.MetaOwnerType, ownerID uint64, key string) (*domain.MetaEntry, error) {
	k := domain.ParseMetaKey(key)
	if k.Private {
		return nil, nil
	}

	candidates := k.Candidates(s.prefix)
	entries, err := s.store.Meta().FindByOwnerAndKeys(ownerType, ownerID, candidates)
	if err != nil {
		return nil, err
	}
	return pickByCandidateOrder(entries, candidates), nil
}

// List returns the owner's entries. With keys it matches bare-or-prefixed
// forms of each requested key; without, it returns all non-private entries.
func (s *MetaService) List(ownerType domain.MetaOwnerType, ownerID uint64, keys []string) ([]*domain.MetaEntry, error) {
	if len(keys) == 0 {
		entries, err := s.store.Meta().ListByOwner(ownerType, ownerID)
		if err != nil {
			return nil, err
		}
		public := make([]*domain.MetaEntry, 0, len(entries))
		for _, e := range entries {
			if !e.IsPrivate() {
				public = append(public, e)
			}
		}
		return public, nil
	}

	var candidates []string
	for _, key := range keys {
		k := domain.ParseMetaKey(key)
		if k.Private {
			continue
		}
		candidates = append(candidates, k.Candidates(s.prefix)...)
	}
	return s.store.Meta().FindByOwnerAndKeys(ownerType, ownerID, candidates)
}

// Exists reports whether the key already exists in bare or prefixed form.
func (s *MetaService) Exists(ownerType domain.MetaOwnerType, ownerID uint64, key string) (bool, error) {
	existing, err := s.ExistingKeys(ownerType, ownerID, []string{key})
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}

// ExistingKeys returns the subset of requested keys that already exist for
// the owner (bare-or-prefixed match), empty if none. Used for pre-validation.
func (s *MetaService) ExistingKeys(ownerType domain.MetaOwnerType, ownerID uint64, keys []string) ([]string, error) {
	return existingKeysIn(s.store, s.prefix, ownerType, ownerID, keys)
}

// Create inserts one entry through the public path: the private marker is
// stripped from the stored key and duplicate (owner, key) pairs are rejected.
func (s *MetaService) Create(ownerType domain.MetaOwnerType, ownerID uint64, req *domain.CreateMetaRequest) (*domain.MetaEntry, error) {
	k := domain.ParseMetaKey(req.Key).Public()
	if k.Bare == "" {
		return nil, fmt.Errorf("meta key must not be empty: %w", common.ErrValidation)
	}

	entry := &domain.MetaEntry{
		OwnerType: ownerType,
		OwnerID:   ownerID,
		Key:       k.String(),
		Value:     req.Value,
	}
	err := s.store.Transaction(func(tx repository.Store) error {
		existing, err := existingKeysIn(tx, s.prefix, ownerType, ownerID, []string{k.Bare})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("meta key %q already exists: %w", k.Bare, common.ErrValidation)
		}
		return tx.Meta().Create(entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// BulkCreate inserts a batch all-or-nothing: if any requested key already
// exists, nothing is written and the whole batch fails.
func (s *MetaService) BulkCreate(ownerType domain.MetaOwnerType, ownerID uint64, reqs []*domain.CreateMetaRequest) ([]*domain.MetaEntry, error) {
	keys := make([]string, 0, len(reqs))
	entries := make([]*domain.MetaEntry, 0, len(reqs))
	for _, req := range reqs {
		k := domain.ParseMetaKey(req.Key).Public()
		if k.Bare == "" {
			return nil, fmt.Errorf("meta key must not be empty: %w", common.ErrValidation)
		}
		keys = append(keys, k.Bare)
		entries = append(entries, &domain.MetaEntry{
			OwnerType: ownerType,
			OwnerID:   ownerID,
			Key:       k.String(),
			Value:     req.Value,
		})
	}

	err := s.store.Transaction(func(tx repository.Store) error {
		existing, err := existingKeysIn(tx, s.prefix, ownerType, ownerID, keys)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("meta keys already exist: %s: %w",
				strings.Join(existing, ", "), common.ErrValidation)
		}
		return tx.Meta().CreateBatch(entries)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Update changes one entry's value by id. Private entries are refused
// through this public path and reported as absent.
func (s *MetaService) Update(id uint64, value string) (*domain.MetaEntry, error) {
	entry, err := s.store.Meta().FindByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.IsPrivate() {
		return nil, common.ErrNotFound
	}
	if err := s.store.Meta().UpdateValue(id, value); err != nil {
		return nil, err
	}
	entry.Value = value
	return entry, nil
}

// UpdateByKey changes the value of the entry matching the bare or prefixed
// form of key. Private-marked keys are refused on this path.
func (s *MetaService) UpdateByKey(ownerType domain.MetaOwnerType, ownerID uint64, key, value string) error {
	k := domain.ParseMetaKey(key)
	if k.Private {
		return common.ErrNotFound
	}
	n, err := s.store.Meta().UpdateValueByOwnerAndKeys(ownerType, ownerID, k.Candidates(s.prefix), value)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes one entry by id. Private entries are refused through this
// public path and reported as absent.
func (s *MetaService) Delete(id uint64) error {
	entry, err := s.store.Meta().FindByID(id)
	if err != nil {
		return err
	}
	if entry == nil || entry.IsPrivate() {
		return common.ErrNotFound
	}
	return s.store.Meta().Delete(id)
}

// ========================================
// Internal path — system bookkeeping
// ========================================

// The *Internal methods keep the private marker as given and skip the public
// visibility filtering. They take a Store so callers can join a transaction.

// GetInternal fetches one entry by its exact stored key.
func (s *MetaService) GetInternal(ownerType domain.MetaOwnerType, ownerID uint64, key string) (*domain.MetaEntry, error) {
	entries, err := s.store.Meta().FindByOwnerAndKeys(ownerType, ownerID, []string{key})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

// GetInternalForOwners fetches one stored key across many owners.
func (s *MetaService) GetInternalForOwners(st repository.Store, ownerType domain.MetaOwnerType, ownerIDs []uint64, key string) (map[uint64]string, error) {
	entries, err := st.Meta().FindByOwnersAndKey(ownerType, ownerIDs, key)
	if err != nil {
		return nil, err
	}
	values := make(map[uint64]string, len(entries))
	for _, e := range entries {
		values[e.OwnerID] = e.Value
	}
	return values, nil
}

// UpsertInternal writes a bookkeeping entry, overwriting rather than
// duplicating when it already exists.
func (s *MetaService) UpsertInternal(st repository.Store, ownerType domain.MetaOwnerType, ownerID uint64, key, value string) error {
	n, err := st.Meta().UpdateValueByOwnerAndKeys(ownerType, ownerID, []string{key}, value)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return st.Meta().Create(&domain.MetaEntry{
		OwnerType: ownerType,
		OwnerID:   ownerID,
		Key:       key,
		Value:     value,
	})
}

// DeleteInternal removes bookkeeping entries by their exact stored keys.
func (s *MetaService) DeleteInternal(st repository.Store, ownerType domain.MetaOwnerType, ownerID uint64, keys ...string) error {
	return st.Meta().DeleteByOwnerAndKeys(ownerType, ownerID, keys)
}

func pickByCandidateOrder(entries []*domain.MetaEntry, candidates []string) *domain.MetaEntry {
	for _, c := range candidates {
		for _, e := range entries {
			if e.Key == c {
				return e
			}
		}
	}
	return nil
}

func existingKeysIn(st repository.Store, prefix string, ownerType domain.MetaOwnerType, ownerID uint64, keys []string) ([]string, error) {
	var candidates []string
	for _, key := range keys {
		candidates = append(candidates, domain.ParseMetaKey(key).Candidates(prefix)...)
	}
	entries, err := st.Meta().FindByOwnerAndKeys(ownerType, ownerID, candidates)
	if err != nil {
		return nil, err
	}
	stored := map[string]bool{}
	for _, e := range entries {
		stored[e.Key] = true
	}
	var existing []string
	for _, key := range keys {
		for _, c := range domain.ParseMetaKey(key).Candidates(prefix) {
			if stored[c] {
				existing = append(existing, key)
				break
			}
		}
	}
	return existing, nil
}
