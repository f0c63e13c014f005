package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/quillcms/quill-backend/internal/common"
	"github.com/quillcms/quill-backend/internal/domain"
)

func TestCapabilityService_LoadsMappingOnce(t *testing.T) {
	store := newMockStore()
	svc := NewCapabilityService(store)
	actor := &domain.Actor{ID: 7, Role: "author"}

	store.options.On("FindByName", domain.OptionUserRoles).Return(&domain.Option{
		Name:  domain.OptionUserRoles,
		Value: `{"author":["edit_posts"]}`,
	}, nil).Once()

	assert.NoError(t, svc.RequireCapability(actor, domain.CapEditPosts))
	assert.ErrorIs(t, svc.RequireCapability(actor, domain.CapDeletePosts), common.ErrForbidden)
	// second check must hit the cache, not the store
	store.options.AssertExpectations(t)
}

func TestCapabilityService_FallsBackToDefaultRoles(t *testing.T) {
	store := newMockStore()
	svc := NewCapabilityService(store)

	store.options.On("FindByName", domain.OptionUserRoles).Return(nil, nil)

	admin := &domain.Actor{ID: 1, Role: "administrator"}
	assert.NoError(t, svc.RequireCapability(admin, domain.CapEditOthersPages))

	subscriber := &domain.Actor{ID: 2, Role: "subscriber"}
	assert.ErrorIs(t, svc.RequireCapability(subscriber, domain.CapEditPosts), common.ErrForbidden)
}

func TestCapabilityService_NilActorForbidden(t *testing.T) {
	store := newMockStore()
	svc := NewCapabilityService(store)

	err := svc.RequireCapability(nil, domain.CapEditPosts)

	assert.ErrorIs(t, err, common.ErrForbidden)
	store.options.AssertNotCalled(t, "FindByName", mock.Anything)
}

func TestCapabilityService_EmptyRoleForbidden(t *testing.T) {
	svc := NewCapabilityService(newMockStore())

	err := svc.RequireCapability(&domain.Actor{ID: 7}, domain.CapEditPosts)

	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestCapabilityService_UnknownRoleHasNoCapabilities(t *testing.T) {
	store := newMockStore()
	svc := NewCapabilityService(store)

	store.options.On("FindByName", domain.OptionUserRoles).Return(nil, nil)

	err := svc.RequireCapability(&domain.Actor{ID: 7, Role: "ghost"}, domain.CapEditPosts)

	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestCapabilityService_InvalidateForcesReload(t *testing.T) {
	store := newMockStore()
	svc := NewCapabilityService(store)
	actor := &domain.Actor{ID: 7, Role: "author"}

	store.options.On("FindByName", domain.OptionUserRoles).Return(&domain.Option{
		Name:  domain.OptionUserRoles,
		Value: `{"author":["edit_posts"]}`,
	}, nil).Once()
	assert.NoError(t, svc.RequireCapability(actor, domain.CapEditPosts))

	svc.Invalidate()

	// mapping changed underneath, the next check sees the new grant set
	store.options.On("FindByName", domain.OptionUserRoles).Return(&domain.Option{
		Name:  domain.OptionUserRoles,
		Value: `{"author":["edit_posts","delete_posts"]}`,
	}, nil).Once()
	assert.NoError(t, svc.RequireCapability(actor, domain.CapDeletePosts))
	store.options.AssertExpectations(t)
}

func TestCapabilityService_CorruptMappingFails(t *testing.T) {
	store := newMockStore()
	svc := NewCapabilityService(store)

	store.options.On("FindByName", domain.OptionUserRoles).Return(&domain.Option{
		Name:  domain.OptionUserRoles,
		Value: `not json`,
	}, nil)

	err := svc.RequireCapability(&domain.Actor{ID: 7, Role: "author"}, domain.CapEditPosts)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrForbidden)
}

func TestCapabilityService_HasCapability(t *testing.T) {
	store := newMockStore()
	svc := NewCapabilityService(store)

	store.options.On("FindByName", domain.OptionUserRoles).Return(nil, nil)

	assert.True(t, svc.HasCapability(&domain.Actor{ID: 1, Role: "editor"}, domain.CapDeletePrivatePages))
	assert.False(t, svc.HasCapability(&domain.Actor{ID: 2, Role: "contributor"}, domain.CapEditPublishedPosts))
}
