package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillcms/quill-backend/internal/common"
	"github.com/quillcms/quill-backend/internal/service"
)

// OptionHandler exposes named configuration values over HTTP.
type OptionHandler struct {
	options *service.OptionService
}

// NewOptionHandler creates a new OptionHandler
func NewOptionHandler(options *service.OptionService) *OptionHandler {
	return &OptionHandler{options: options}
}

// Get handles GET /api/v1/options/:name
func (h *OptionHandler) Get(c *gin.Context) {
	name := c.Param("name")

	value, ok, err := h.options.Get(c.Request.Context(), name)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	if !ok {
		common.ErrorResponse(c, http.StatusNotFound, "option not found", nil)
		return
	}
	common.SuccessResponse(c, gin.H{"name": name, "value": value}, nil)
}

// Set handles PUT /api/v1/options/:name
func (h *OptionHandler) Set(c *gin.Context) {
	name := c.Param("name")

	var req struct {
		Value    string `json:"value"`
		Autoload bool   `json:"autoload"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.options.Set(c.Request.Context(), name, req.Value, req.Autoload); err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"name": name, "value": req.Value}, nil)
}

// Delete handles DELETE /api/v1/options/:name
func (h *OptionHandler) Delete(c *gin.Context) {
	name := c.Param("name")

	if err := h.options.Delete(c.Request.Context(), name); err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": name}, nil)
}
