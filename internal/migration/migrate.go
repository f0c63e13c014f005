package migration

import (
	"encoding/json"

	"github.com/quillcms/quill-backend/internal/domain"
	"gorm.io/gorm"
)

// Run applies GORM auto-migration for the engine's tables.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.ContentItem{},
		&domain.MetaEntry{},
		&domain.Option{},
	)
}

// SeedDefaults inserts the options the engine expects when they are absent:
// the role → capability mapping and the comment defaults.
func SeedDefaults(db *gorm.DB) error {
	defaults := map[string]string{
		domain.OptionDefaultCommentStatus: string(domain.CommentsOpen),
		domain.OptionPageCommentsEnabled:  "true",
	}

	roles, err := json.Marshal(domain.DefaultRoles())
	if err != nil {
		return err
	}
	defaults[domain.OptionUserRoles] = string(roles)

	for name, value := range defaults {
		var count int64
		if err := db.Model(&domain.Option{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		opt := domain.Option{Name: name, Value: value, Autoload: true}
		if err := db.Create(&opt).Error; err != nil {
			return err
		}
	}
	return nil
}
