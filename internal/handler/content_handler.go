package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillcms/quill-backend/internal/common"
	"github.com/quillcms/quill-backend/internal/domain"
	"github.com/quillcms/quill-backend/internal/middleware"
	"github.com/quillcms/quill-backend/internal/service"
)

// ContentHandler exposes the content lifecycle over HTTP.
type ContentHandler struct {
	contents service.ContentService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(contents service.ContentService) *ContentHandler {
	return &ContentHandler{contents: contents}
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}

// List handles GET /api/v1/contents
func (h *ContentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var filter domain.ContentFilter
	if v := c.Query("kind"); v != "" {
		kind := domain.ContentKind(v)
		filter.Kind = &kind
	}
	if v := c.Query("status"); v != "" {
		status := domain.ContentStatus(v)
		filter.Status = &status
	}
	if v := c.Query("author"); v != "" {
		if authorID, err := strconv.ParseUint(v, 10, 64); err == nil {
			filter.AuthorID = &authorID
		}
	}

	items, meta, err := h.contents.List(filter, page, limit)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, items, meta)
}

// Get handles GET /api/v1/contents/:id
func (h *ContentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.contents.Get(id)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	if item == nil {
		common.ErrorResponse(c, http.StatusNotFound, "content item not found", nil)
		return
	}
	common.SuccessResponse(c, item, nil)
}

// Create handles POST /api/v1/contents
func (h *ContentHandler) Create(c *gin.Context) {
	var req domain.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	item, err := h.contents.Create(middleware.GetActor(c), &req)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, item, nil)
}

// Update handles PATCH /api/v1/contents/:id
func (h *ContentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch domain.UpdateContentRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	item, err := h.contents.Update(middleware.GetActor(c), id, &patch)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	if item == nil {
		common.ErrorResponse(c, http.StatusNotFound, "content item not found", nil)
		return
	}
	common.SuccessResponse(c, item, nil)
}

// UpdateStatus handles PATCH /api/v1/contents/:id/status
func (h *ContentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Status domain.ContentStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	item, err := h.contents.UpdateStatus(middleware.GetActor(c), id, req.Status)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	if item == nil {
		common.ErrorResponse(c, http.StatusNotFound, "content item not found", nil)
		return
	}
	common.SuccessResponse(c, item, nil)
}

// BulkUpdateStatus handles POST /api/v1/contents/bulk/status
func (h *ContentHandler) BulkUpdateStatus(c *gin.Context) {
	var req struct {
		IDs    []uint64             `json:"ids"`
		Status domain.ContentStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.contents.BulkUpdateStatus(middleware.GetActor(c), req.IDs, req.Status); err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"updated": len(req.IDs)}, nil)
}

// UpdateName handles PATCH /api/v1/contents/:id/name
func (h *ContentHandler) UpdateName(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	item, err := h.contents.UpdateName(middleware.GetActor(c), id, req.Name)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	if item == nil {
		common.ErrorResponse(c, http.StatusNotFound, "content item not found", nil)
		return
	}
	common.SuccessResponse(c, item, nil)
}

// UpdateCommentStatus handles PATCH /api/v1/contents/:id/comment-status
func (h *ContentHandler) UpdateCommentStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		CommentStatus domain.CommentStatus `json:"comment_status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	item, err := h.contents.UpdateCommentStatus(middleware.GetActor(c), id, req.CommentStatus)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	if item == nil {
		common.ErrorResponse(c, http.StatusNotFound, "content item not found", nil)
		return
	}
	common.SuccessResponse(c, item, nil)
}

// Restore handles POST /api/v1/contents/:id/restore
func (h *ContentHandler) Restore(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.contents.Restore(middleware.GetActor(c), id)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	if result == nil {
		common.ErrorResponse(c, http.StatusNotFound, "content item not found", nil)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// BulkRestore handles POST /api/v1/contents/bulk/restore
func (h *ContentHandler) BulkRestore(c *gin.Context) {
	var req struct {
		IDs []uint64 `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	restored, err := h.contents.BulkRestore(middleware.GetActor(c), req.IDs)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"restored": restored}, nil)
}

// Delete handles DELETE /api/v1/contents/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.contents.Delete(middleware.GetActor(c), id)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	if !deleted {
		common.ErrorResponse(c, http.StatusNotFound, "content item not found", nil)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": id}, nil)
}

// BulkDelete handles POST /api/v1/contents/bulk/delete
func (h *ContentHandler) BulkDelete(c *gin.Context) {
	var req struct {
		IDs []uint64 `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.contents.BulkDelete(middleware.GetActor(c), req.IDs); err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": req.IDs}, nil)
}
