package domain

// Option is a named configuration value. Autoloaded options are kept warm in
// the option cache.
type Option struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"column:name;type:varchar(191);uniqueIndex" json:"name"`
	Value    string `gorm:"column:value;type:longtext" json:"value"`
	Autoload bool   `gorm:"column:autoload;default:true" json:"autoload"`
}

func (Option) TableName() string { return "options" }

// Well-known option names.
const (
	OptionUserRoles            = "user_roles"
	OptionDefaultCommentStatus = "default_comment_status"
	OptionPageCommentsEnabled  = "page_comments_enabled"
)
