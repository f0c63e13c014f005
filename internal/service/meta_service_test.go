package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/quillcms/quill-backend/internal/common"
	"github.com/quillcms/quill-backend/internal/domain"
)

func TestMetaService_Get_PrivateEntryReadsAbsent(t *testing.T) {
	store := newMockStore()
	svc := NewMetaService(store, "quill_")

	store.meta.On("FindByID", uint64(1)).Return(&domain.MetaEntry{
		ID: 1, OwnerType: domain.OwnerPost, OwnerID: 1, Key: "_trash_meta_status", Value: "draft",
	}, nil)

	entry, err := svc.Get(1)

	assert.NoError(t, err)
	assert.Nil(t, entry)
}

func TestMetaService_GetByKey_PrefersBareOverPrefixed(t *testing.T) {
	store := newMockStore()
	svc := NewMetaService(store, "quill_")

	store.meta.On("FindByOwnerAndKeys", domain.OwnerPost, uint64(1), []string{"color", "quill_color"}).
		Return([]*domain.MetaEntry{
			{ID: 2, OwnerType: domain.OwnerPost, OwnerID: 1, Key: "quill_color", Value: "blue"},
			{ID: 3, OwnerType: domain.OwnerPost, OwnerID: 1, Key: "color", Value: "red"},
		}, nil)

	entry, err := svc.GetByKey(domain.OwnerPost, 1, "color")

	assert.NoError(t, err)
	assert.Equal(t, "red", entry.Value)
}

func TestMetaService_GetByKey_MatchesPrefixedForm(t *testing.T) {
	store := newMockStore()
	svc := NewMetaService(store, "quill_")

	store.meta.On("FindByOwnerAndKeys", domain.OwnerPost, uint64(1), []string{"color", "quill_color"}).
		Return([]*domain.MetaEntry{
			{ID: 2, OwnerType: domain.OwnerPost, OwnerID: 1, Key: "quill_color", Value: "blue"},
		}, nil)

	entry, err := svc.GetByKey(domain.OwnerPost, 1, "color")

	assert.NoError(t, err)
	assert.Equal(t, "blue", entry.Value)
}

func TestMetaService_GetByKey_PrivateRequestReadsAbsent(t *testing.T) {
	store := newMockStore()
	svc := NewMetaService(store, "quill_")

	entry, err := svc.GetByKey(domain.OwnerPost, 1, "_trash_meta_status")

	assert.NoError(t, err)
	assert.Nil(t, entry)
	store.meta.AssertNotCalled(t, "FindByOwnerAndKeys", mock.Anything, mock.Anything, mock.Anything)
}

func TestMetaService_List_FiltersPrivateEntries(t *testing.T) {
	store := newMockStore()
	svc := NewMetaService(store, "quill_")

	store.meta.On("ListByOwner", domain.OwnerPost, uint64(1)).Return([]*domain.MetaEntry{
		{ID: 1, Key: "color", Value: "red"},
		{ID: 2, Key: "_trash_meta_status", Value: "draft"},
		{ID: 3, Key: "layout", Value: "wide"},
	}, nil)

	entries, err := svc.List(domain.OwnerPost, 1, nil)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	for _, e := range entries {
		assert.False(t, e.IsPrivate())
	}
}

func TestMetaService_Create_StripsPrivateMarker(t *testing.T) {
	store := newMockStore()
	svc := NewMetaService(store, "quill_")

	store.meta.On("FindByOwnerAndKeys", domain.OwnerPost, uint64(1), []string{"secret", "quill_secret"}).
		Return([]*domain.MetaEntry{}, nil)
	store.meta.On("Create", mock.AnythingOfType("*domain.MetaEntry")).Return(nil)

	entry, err := svc.Create(domain.OwnerPost, 1, &domain.CreateMetaRequest{
		Key: "_secret", Value: "v",
	})

	assert.NoError(t, err)
	assert.Equal(t, "secret", entry.Key)
	assert.False(t, entry.IsPrivate())
}

func TestMetaService_Create_CheckAndInsertShareOneTransaction(t *testing.T) {
	store := newMockStore()
	svc := NewMetaService(store, "quill_")

	store.meta.On("FindByOwnerAndKeys", domain.OwnerPost, uint64(1), []string{"color", "quill_color"}).
		Run(func(mock.Arguments) { assert.Equal(t, 1, store.txDepth) }).
		Return([]*domain.MetaEntry{}, nil)
	store.meta.On("Create", mock.AnythingOfType("*domain.MetaEntry")).
		Run(func(mock.Arguments) { assert.Equal(t, 1, store.txDepth) }).
		Return(nil)

	_, err := svc.Create(domain.OwnerPost, 1, &domain.CreateMetaRequest{Key: "color", Value: "red"})

	assert.NoError(t, err)
	assert.Equal(t, 1, store.txCalls)
}

func TestMetaService_Create_EmptyKey(t *testing.T) {
	svc := NewMetaService(newMockStore(), "quill_")

	_, err := svc.Create(domain.OwnerPost, 1, &domain.CreateMetaRequest{Key: "_", Value: "v"})

	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestMetaService_Create_DuplicateKey(t *testing.T) {
	store := newMockStore()
	svc := NewMetaService(store, "quill_")

	store.meta.On("FindByOwnerAndKeys", domain.OwnerPost, uint64(1), []string{"color", "quill_color"}).
		Return([]*domain.MetaEntry{{ID: 1, Key: "quill_color", Value: "blue"}}, nil)

	_, err := svc.Create(domain.OwnerPost, 1, &domain.CreateMetaRequest{Key: "color", Value: "red"})

	assert.ErrorIs(t, err, common.ErrValidation)
	store.meta.AssertNotCalled(t, "Create", mock.Anything)
}

func TestMetaService_BulkCreate_AllOrNothing(t *testing.T) {
	store := newMockStore()
	svc := NewMetaService(store, "quill_")

	store.meta.On("FindByOwnerAndKeys", domain.OwnerPost, uint64(1),
		[]string{"color", "quill_color", "layout", "quill_layout"}).
		Return([]*domain.MetaEntry{{ID: 1, Key: "layout", Value: "wide"}}, nil)

	_, err := svc.BulkCreate(domain.OwnerPost, 1, []*domain.CreateMetaRequest{
		{Key: "color", Value: "red"},
		{Key: "layout", Value: "narrow"},
	})

	assert.ErrorIs(t, err, common.ErrValidation)
	assert.ErrorContains(t, err, "layout")
	store.meta.AssertNotCalled(t, "CreateBatch", mock.Anything)
}

func TestMetaService_BulkCreate_InsertsBatch(t *testing.T) {
	store := newMockStore()
	svc := NewMetaService(store, "quill_")

	store.meta.On("FindByOwnerAndKeys", domain.OwnerPost, uint64(1),
		[]string{"color", "quill_color", "layout", "quill_layout"}).
		Return([]*domain.MetaEntry{}, nil)
	store.meta.On("CreateBatch", mock.AnythingOfType("[]*domain.MetaEntry")).Return(nil)

	entries, err := svc.BulkCreate(domain.OwnerPost, 1, []*domain.CreateMetaRequest{
		{Key: "color", Value: "red"},
		{Key: "layout", Value: "narrow"},
	})

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	store.AssertExpectations(t)
}

func TestMetaService_Update_PrivateEntryNotFound(t *testing.T) {
	store := newMockStore()
	svc := NewMetaService(store, "quill_")

	store.meta.On("FindByID", uint64(1)).Return(&domain.MetaEntry{
		ID: 1, Key: "_trash_meta_status", Value: "draft",
	}, nil)

	_, err := svc.Update(1, "publish")

	assert.ErrorIs(t, err, common.ErrNotFound)
	store.meta.AssertNotCalled(t, "UpdateValue", mock.Anything, mock.Anything)
}

func TestMetaService_UpdateByKey_NoRowsNotFound(t *testing.T) {
	store := newMockStore()
	svc := NewMetaService(store, "quill_")

	store.meta.On("UpdateValueByOwnerAndKeys",
		domain.OwnerPost, uint64(1), []string{"color", "quill_color"}, "green").
		Return(int64(0), nil)

	err := svc.UpdateByKey(domain.OwnerPost, 1, "color", "green")

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMetaService_Delete_MissingNotFound(t *testing.T) {
	store := newMockStore()
	svc := NewMetaService(store, "quill_")

	store.meta.On("FindByID", uint64(404)).Return(nil, nil)

	err := svc.Delete(404)

	assert.ErrorIs(t, err, common.ErrNotFound)
}
