package repository

import (
	"errors"

	"github.com/quillcms/quill-backend/internal/domain"
	"gorm.io/gorm"
)

// ContentRepository content item data access
type ContentRepository interface {
	// FindByID returns (nil, nil) when the row does not exist.
	FindByID(id uint64) (*domain.ContentItem, error)
	FindByIDs(ids []uint64) ([]*domain.ContentItem, error)
	List(filter domain.ContentFilter, page, limit int) ([]*domain.ContentItem, int64, error)
	// CountByNamePrefix counts non-revision items whose name starts with
	// the given prefix.
	CountByNamePrefix(prefix string) (int64, error)
	Create(item *domain.ContentItem) error
	// UpdateFields applies a partial column update to one row.
	UpdateFields(id uint64, fields map[string]interface{}) error
	UpdateStatus(ids []uint64, status domain.ContentStatus) error
	// Delete permanently removes the rows.
	Delete(ids []uint64) error
	// DeleteRevisionsOf removes all revision rows parented to the given ids.
	DeleteRevisionsOf(parentIDs []uint64) error
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) FindByID(id uint64) (*domain.ContentItem, error) {
	var item domain.ContentItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) FindByIDs(ids []uint64) ([]*domain.ContentItem, error) {
	var items []*domain.ContentItem
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *contentRepository) List(filter domain.ContentFilter, page, limit int) ([]*domain.ContentItem, int64, error) {
	var items []*domain.ContentItem
	var total int64

	query := r.db.Model(&domain.ContentItem{}).Where("kind <> ?", domain.KindRevision)
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.Status != nil {
		if *filter.Status == domain.StatusDraft {
			// auto-draft rows are externally draft
			query = query.Where("status IN ?", []domain.ContentStatus{domain.StatusDraft, domain.StatusAutoDraft})
		} else {
			query = query.Where("status = ?", *filter.Status)
		}
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("menu_order ASC, id DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *contentRepository) CountByNamePrefix(prefix string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.ContentItem{}).
		Where("kind <> ?", domain.KindRevision).
		Where("name LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}

func (r *contentRepository) Create(item *domain.ContentItem) error {
	return r.db.Create(item).Error
}

func (r *contentRepository) UpdateFields(id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&domain.ContentItem{}).Where("id = ?", id).Updates(fields).Error
}

func (r *contentRepository) UpdateStatus(ids []uint64, status domain.ContentStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&domain.ContentItem{}).Where("id IN ?", ids).
		Update("status", status).Error
}

func (r *contentRepository) Delete(ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Delete(&domain.ContentItem{}, "id IN ?", ids).Error
}

func (r *contentRepository) DeleteRevisionsOf(parentIDs []uint64) error {
	if len(parentIDs) == 0 {
		return nil
	}
	return r.db.Delete(&domain.ContentItem{}, "kind = ? AND parent_id IN ?", domain.KindRevision, parentIDs).Error
}
