package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentStatus_Settable(t *testing.T) {
	for _, s := range []ContentStatus{StatusDraft, StatusPending, StatusPublish, StatusPrivate, StatusTrash} {
		assert.True(t, s.Settable(), "status %q", s)
	}
	for _, s := range []ContentStatus{StatusAutoDraft, StatusInherit, "bogus", ""} {
		assert.False(t, s.Settable(), "status %q", s)
	}
}

func TestContentKind_Publishable(t *testing.T) {
	assert.True(t, KindPost.Publishable())
	assert.True(t, KindPage.Publishable())
	assert.False(t, KindRevision.Publishable())
}

func TestContentItem_PublicStatus(t *testing.T) {
	assert.Equal(t, StatusDraft, (&ContentItem{Status: StatusAutoDraft}).PublicStatus())
	assert.Equal(t, StatusPublish, (&ContentItem{Status: StatusPublish}).PublicStatus())
}

func TestContentItem_ToResponse_MapsInternalStatus(t *testing.T) {
	item := &ContentItem{ID: 1, Kind: KindPost, Status: StatusAutoDraft, Title: "x"}
	resp := item.ToResponse()
	assert.Equal(t, StatusDraft, resp.Status)
	assert.Equal(t, item.Title, resp.Title)
}
