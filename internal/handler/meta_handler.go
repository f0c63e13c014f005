package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quillcms/quill-backend/internal/common"
	"github.com/quillcms/quill-backend/internal/domain"
	"github.com/quillcms/quill-backend/internal/service"
)

// MetaHandler exposes the public custom-field store over HTTP. Private
// bookkeeping entries are never reachable through these routes.
type MetaHandler struct {
	meta *service.MetaService
}

// NewMetaHandler creates a new MetaHandler
func NewMetaHandler(meta *service.MetaService) *MetaHandler {
	return &MetaHandler{meta: meta}
}

func parseOwner(c *gin.Context) (domain.MetaOwnerType, uint64, bool) {
	ownerType := domain.MetaOwnerType(c.Param("ownerType"))
	switch ownerType {
	case domain.OwnerPost, domain.OwnerUser, domain.OwnerComment, domain.OwnerMedia, domain.OwnerTerm:
	default:
		common.ErrorResponse(c, http.StatusBadRequest, "invalid owner type", nil)
		return "", 0, false
	}

	ownerID, err := strconv.ParseUint(c.Param("ownerId"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid owner id", err)
		return "", 0, false
	}
	return ownerType, ownerID, true
}

// List handles GET /api/v1/meta/:ownerType/:ownerId
func (h *MetaHandler) List(c *gin.Context) {
	ownerType, ownerID, ok := parseOwner(c)
	if !ok {
		return
	}

	var keys []string
	if v := c.Query("keys"); v != "" {
		keys = strings.Split(v, ",")
	}

	entries, err := h.meta.List(ownerType, ownerID, keys)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, entries, nil)
}

// GetByKey handles GET /api/v1/meta/:ownerType/:ownerId/:key
func (h *MetaHandler) GetByKey(c *gin.Context) {
	ownerType, ownerID, ok := parseOwner(c)
	if !ok {
		return
	}

	entry, err := h.meta.GetByKey(ownerType, ownerID, c.Param("key"))
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	if entry == nil {
		common.ErrorResponse(c, http.StatusNotFound, "meta entry not found", nil)
		return
	}
	common.SuccessResponse(c, entry, nil)
}

// Create handles POST /api/v1/meta/:ownerType/:ownerId
func (h *MetaHandler) Create(c *gin.Context) {
	ownerType, ownerID, ok := parseOwner(c)
	if !ok {
		return
	}

	var req domain.CreateMetaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	entry, err := h.meta.Create(ownerType, ownerID, &req)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, entry, nil)
}

// BulkCreate handles POST /api/v1/meta/:ownerType/:ownerId/bulk
func (h *MetaHandler) BulkCreate(c *gin.Context) {
	ownerType, ownerID, ok := parseOwner(c)
	if !ok {
		return
	}

	var reqs []*domain.CreateMetaRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	entries, err := h.meta.BulkCreate(ownerType, ownerID, reqs)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, entries, nil)
}

// UpdateByKey handles PUT /api/v1/meta/:ownerType/:ownerId/:key
func (h *MetaHandler) UpdateByKey(c *gin.Context) {
	ownerType, ownerID, ok := parseOwner(c)
	if !ok {
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	key := c.Param("key")
	if err := h.meta.UpdateByKey(ownerType, ownerID, key, req.Value); err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"key": key, "value": req.Value}, nil)
}

// Update handles PUT /api/v1/meta/entries/:id
func (h *MetaHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	entry, err := h.meta.Update(id, req.Value)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, entry, nil)
}

// Delete handles DELETE /api/v1/meta/entries/:id
func (h *MetaHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.meta.Delete(id); err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": id}, nil)
}
