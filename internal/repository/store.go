package repository

import "gorm.io/gorm"

// Store bundles the engine's repositories behind one handle so services can
// run multi-repository writes inside a single transaction. Transaction passes
// a Store bound to the transactional *gorm.DB; a failure anywhere rolls back
// every row the callback touched.
type Store interface {
	Content() ContentRepository
	Meta() MetaRepository
	Options() OptionRepository
	Transaction(fn func(tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a gorm-backed Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Content() ContentRepository { return NewContentRepository(s.db) }
func (s *gormStore) Meta() MetaRepository       { return NewMetaRepository(s.db) }
func (s *gormStore) Options() OptionRepository  { return NewOptionRepository(s.db) }

func (s *gormStore) Transaction(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
