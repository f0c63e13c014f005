package service

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/quillcms/quill-backend/internal/common"
	"github.com/quillcms/quill-backend/internal/domain"
	"github.com/quillcms/quill-backend/internal/repository"
)

func authorizationError(capability string) error {
	return fmt.Errorf("capability %q required: %w", capability, common.ErrForbidden)
}

// mockStore bundles the repository mocks behind the Store interface.
// Transaction just runs the callback against the same mocks, so expectations
// set on the store apply inside transactions too.
type mockStore struct {
	content *mockContentRepo
	meta    *mockMetaRepo
	options *mockOptionRepo

	// txCalls counts Transaction invocations; txDepth is non-zero while the
	// callback runs, so expectations can assert a call happened inside one.
	txCalls int
	txDepth int
}

func newMockStore() *mockStore {
	return &mockStore{
		content: new(mockContentRepo),
		meta:    new(mockMetaRepo),
		options: new(mockOptionRepo),
	}
}

func (s *mockStore) Content() repository.ContentRepository { return s.content }
func (s *mockStore) Meta() repository.MetaRepository       { return s.meta }
func (s *mockStore) Options() repository.OptionRepository  { return s.options }

func (s *mockStore) Transaction(fn func(tx repository.Store) error) error {
	s.txCalls++
	s.txDepth++
	defer func() { s.txDepth-- }()
	return fn(s)
}

func (s *mockStore) AssertExpectations(t mock.TestingT) {
	s.content.AssertExpectations(t)
	s.meta.AssertExpectations(t)
	s.options.AssertExpectations(t)
}

// ========================================
// content repository mock
// ========================================

type mockContentRepo struct {
	mock.Mock
}

func (m *mockContentRepo) FindByID(id uint64) (*domain.ContentItem, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContentItem), args.Error(1)
}

func (m *mockContentRepo) FindByIDs(ids []uint64) ([]*domain.ContentItem, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ContentItem), args.Error(1)
}

func (m *mockContentRepo) List(filter domain.ContentFilter, page, limit int) ([]*domain.ContentItem, int64, error) {
	args := m.Called(filter, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.ContentItem), args.Get(1).(int64), args.Error(2)
}

func (m *mockContentRepo) CountByNamePrefix(prefix string) (int64, error) {
	args := m.Called(prefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContentRepo) Create(item *domain.ContentItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *mockContentRepo) UpdateFields(id uint64, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func (m *mockContentRepo) UpdateStatus(ids []uint64, status domain.ContentStatus) error {
	args := m.Called(ids, status)
	return args.Error(0)
}

func (m *mockContentRepo) Delete(ids []uint64) error {
	args := m.Called(ids)
	return args.Error(0)
}

func (m *mockContentRepo) DeleteRevisionsOf(parentIDs []uint64) error {
	args := m.Called(parentIDs)
	return args.Error(0)
}

// ========================================
// meta repository mock
// ========================================

type mockMetaRepo struct {
	mock.Mock
}

func (m *mockMetaRepo) FindByID(id uint64) (*domain.MetaEntry, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetaEntry), args.Error(1)
}

func (m *mockMetaRepo) FindByOwnerAndKeys(ownerType domain.MetaOwnerType, ownerID uint64, keys []string) ([]*domain.MetaEntry, error) {
	args := m.Called(ownerType, ownerID, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MetaEntry), args.Error(1)
}

func (m *mockMetaRepo) FindByOwnersAndKey(ownerType domain.MetaOwnerType, ownerIDs []uint64, key string) ([]*domain.MetaEntry, error) {
	args := m.Called(ownerType, ownerIDs, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MetaEntry), args.Error(1)
}

func (m *mockMetaRepo) ListByOwner(ownerType domain.MetaOwnerType, ownerID uint64) ([]*domain.MetaEntry, error) {
	args := m.Called(ownerType, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MetaEntry), args.Error(1)
}

func (m *mockMetaRepo) Create(entry *domain.MetaEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *mockMetaRepo) CreateBatch(entries []*domain.MetaEntry) error {
	args := m.Called(entries)
	return args.Error(0)
}

func (m *mockMetaRepo) UpdateValue(id uint64, value string) error {
	args := m.Called(id, value)
	return args.Error(0)
}

func (m *mockMetaRepo) UpdateValueByOwnerAndKeys(ownerType domain.MetaOwnerType, ownerID uint64, keys []string, value string) (int64, error) {
	args := m.Called(ownerType, ownerID, keys, value)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMetaRepo) Delete(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockMetaRepo) DeleteByOwnerAndKeys(ownerType domain.MetaOwnerType, ownerID uint64, keys []string) error {
	args := m.Called(ownerType, ownerID, keys)
	return args.Error(0)
}

func (m *mockMetaRepo) DeleteByOwners(ownerType domain.MetaOwnerType, ownerIDs []uint64) error {
	args := m.Called(ownerType, ownerIDs)
	return args.Error(0)
}

// ========================================
// option repository mock
// ========================================

type mockOptionRepo struct {
	mock.Mock
}

func (m *mockOptionRepo) FindByName(name string) (*domain.Option, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Option), args.Error(1)
}

func (m *mockOptionRepo) ListAutoload() ([]*domain.Option, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Option), args.Error(1)
}

func (m *mockOptionRepo) Upsert(name, value string, autoload bool) error {
	args := m.Called(name, value, autoload)
	return args.Error(0)
}

func (m *mockOptionRepo) Delete(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

// ========================================
// capability guard fake
// ========================================

// fakeGuard grants a fixed capability set and records the order checks were
// made in, so tests can assert the fixed authorization sequence.
type fakeGuard struct {
	granted map[string]bool
	checked []string
}

func newFakeGuard(caps ...string) *fakeGuard {
	granted := make(map[string]bool, len(caps))
	for _, c := range caps {
		granted[c] = true
	}
	return &fakeGuard{granted: granted}
}

func (g *fakeGuard) RequireCapability(actor *domain.Actor, capability string) error {
	g.checked = append(g.checked, capability)
	if actor == nil || actor.Role == "" || !g.granted[capability] {
		return authorizationError(capability)
	}
	return nil
}

func (g *fakeGuard) HasCapability(actor *domain.Actor, capability string) bool {
	return g.RequireCapability(actor, capability) == nil
}

// ========================================
// content options fake
// ========================================

type fakeOptions struct {
	strings map[string]string
	bools   map[string]bool
}

func (o *fakeOptions) GetString(_ context.Context, name, def string) string {
	if v, ok := o.strings[name]; ok {
		return v
	}
	return def
}

func (o *fakeOptions) GetBool(_ context.Context, name string, def bool) bool {
	if v, ok := o.bools[name]; ok {
		return v
	}
	return def
}

func ptr[T any](v T) *T { return &v }
