package repository

import (
	"errors"

	"github.com/quillcms/quill-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OptionRepository named configuration value data access
type OptionRepository interface {
	// FindByName returns (nil, nil) when the option does not exist.
	FindByName(name string) (*domain.Option, error)
	ListAutoload() ([]*domain.Option, error)
	Upsert(name, value string, autoload bool) error
	Delete(name string) error
}

type optionRepository struct {
	db *gorm.DB
}

// NewOptionRepository creates a new OptionRepository
func NewOptionRepository(db *gorm.DB) OptionRepository {
	return &optionRepository{db: db}
}

func (r *optionRepository) FindByName(name string) (*domain.Option, error) {
	var opt domain.Option
	if err := r.db.First(&opt, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &opt, nil
}

func (r *optionRepository) ListAutoload() ([]*domain.Option, error) {
	var opts []*domain.Option
	err := r.db.Where("autoload = ?", true).Find(&opts).Error
	return opts, err
}

func (r *optionRepository) Upsert(name, value string, autoload bool) error {
	opt := domain.Option{Name: name, Value: value, Autoload: autoload}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "autoload"}),
	}).Create(&opt).Error
}

func (r *optionRepository) Delete(name string) error {
	return r.db.Delete(&domain.Option{}, "name = ?", name).Error
}
