package repository

import (
	"errors"

	"github.com/quillcms/quill-backend/internal/domain"
	"gorm.io/gorm"
)

// MetaRepository generic meta entry data access. Keys passed here are stored
// forms; visibility and prefix aliasing are the meta service's concern.
type MetaRepository interface {
	// FindByID returns (nil, nil) when the row does not exist.
	FindByID(id uint64) (*domain.MetaEntry, error)
	FindByOwnerAndKeys(ownerType domain.MetaOwnerType, ownerID uint64, keys []string) ([]*domain.MetaEntry, error)
	// FindByOwnersAndKey fetches one key across many owners in a single read.
	FindByOwnersAndKey(ownerType domain.MetaOwnerType, ownerIDs []uint64, key string) ([]*domain.MetaEntry, error)
	ListByOwner(ownerType domain.MetaOwnerType, ownerID uint64) ([]*domain.MetaEntry, error)
	Create(entry *domain.MetaEntry) error
	CreateBatch(entries []*domain.MetaEntry) error
	UpdateValue(id uint64, value string) error
	// UpdateValueByOwnerAndKeys returns the number of rows touched so
	// callers can implement upsert semantics.
	UpdateValueByOwnerAndKeys(ownerType domain.MetaOwnerType, ownerID uint64, keys []string, value string) (int64, error)
	Delete(id uint64) error
	DeleteByOwnerAndKeys(ownerType domain.MetaOwnerType, ownerID uint64, keys []string) error
	// DeleteByOwners removes every entry of the given owners; used as the
	// cascade when an owner is permanently deleted.
	DeleteByOwners(ownerType domain.MetaOwnerType, ownerIDs []uint64) error
}

type metaRepository struct {
	db *gorm.DB
}

// NewMetaRepository creates a new MetaRepository
func NewMetaRepository(db *gorm.DB) MetaRepository {
	return &metaRepository{db: db}
}

func (r *metaRepository) FindByID(id uint64) (*domain.MetaEntry, error) {
	var entry domain.MetaEntry
	if err := r.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *metaRepository) FindByOwnerAndKeys(ownerType domain.MetaOwnerType, ownerID uint64, keys []string) ([]*domain.MetaEntry, error) {
	var entries []*domain.MetaEntry
	if len(keys) == 0 {
		return entries, nil
	}
	err := r.db.
		Where("owner_type = ? AND owner_id = ? AND meta_key IN ?", ownerType, ownerID, keys).
		Find(&entries).Error
	return entries, err
}

func (r *metaRepository) FindByOwnersAndKey(ownerType domain.MetaOwnerType, ownerIDs []uint64, key string) ([]*domain.MetaEntry, error) {
	var entries []*domain.MetaEntry
	if len(ownerIDs) == 0 {
		return entries, nil
	}
	err := r.db.
		Where("owner_type = ? AND owner_id IN ? AND meta_key = ?", ownerType, ownerIDs, key).
		Find(&entries).Error
	return entries, err
}

func (r *metaRepository) ListByOwner(ownerType domain.MetaOwnerType, ownerID uint64) ([]*domain.MetaEntry, error) {
	var entries []*domain.MetaEntry
	err := r.db.
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *metaRepository) Create(entry *domain.MetaEntry) error {
	return r.db.Create(entry).Error
}

func (r *metaRepository) CreateBatch(entries []*domain.MetaEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}

func (r *metaRepository) UpdateValue(id uint64, value string) error {
	return r.db.Model(&domain.MetaEntry{}).Where("id = ?", id).
		Update("meta_value", value).Error
}

func (r *metaRepository) UpdateValueByOwnerAndKeys(ownerType domain.MetaOwnerType, ownerID uint64, keys []string, value string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	tx := r.db.Model(&domain.MetaEntry{}).
		Where("owner_type = ? AND owner_id = ? AND meta_key IN ?", ownerType, ownerID, keys).
		Update("meta_value", value)
	return tx.RowsAffected, tx.Error
}

func (r *metaRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.MetaEntry{}, "id = ?", id).Error
}

func (r *metaRepository) DeleteByOwnerAndKeys(ownerType domain.MetaOwnerType, ownerID uint64, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.Delete(&domain.MetaEntry{},
		"owner_type = ? AND owner_id = ? AND meta_key IN ?", ownerType, ownerID, keys).Error
}

func (r *metaRepository) DeleteByOwners(ownerType domain.MetaOwnerType, ownerIDs []uint64) error {
	if len(ownerIDs) == 0 {
		return nil
	}
	return r.db.Delete(&domain.MetaEntry{},
		"owner_type = ? AND owner_id IN ?", ownerType, ownerIDs).Error
}
