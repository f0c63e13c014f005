package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every API route onto the engine. All routes require an
// authenticated actor except the health check.
func RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc, contents *ContentHandler, meta *MetaHandler, options *OptionHandler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1", auth)

	c := v1.Group("/contents")
	{
		c.GET("", contents.List)
		c.POST("", contents.Create)
		c.GET("/:id", contents.Get)
		c.PATCH("/:id", contents.Update)
		c.DELETE("/:id", contents.Delete)
		c.PATCH("/:id/status", contents.UpdateStatus)
		c.PATCH("/:id/name", contents.UpdateName)
		c.PATCH("/:id/comment-status", contents.UpdateCommentStatus)
		c.POST("/:id/restore", contents.Restore)
		c.POST("/bulk/status", contents.BulkUpdateStatus)
		c.POST("/bulk/restore", contents.BulkRestore)
		c.POST("/bulk/delete", contents.BulkDelete)
	}

	m := v1.Group("/meta")
	{
		m.PUT("/entries/:id", meta.Update)
		m.DELETE("/entries/:id", meta.Delete)
		m.GET("/:ownerType/:ownerId", meta.List)
		m.POST("/:ownerType/:ownerId", meta.Create)
		m.POST("/:ownerType/:ownerId/bulk", meta.BulkCreate)
		m.GET("/:ownerType/:ownerId/:key", meta.GetByKey)
		m.PUT("/:ownerType/:ownerId/:key", meta.UpdateByKey)
	}

	o := v1.Group("/options")
	{
		o.GET("/:name", options.Get)
		o.PUT("/:name", options.Set)
		o.DELETE("/:name", options.Delete)
	}
}
