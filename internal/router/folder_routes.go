package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Psedro/IPVCNotes-VF/internal/handlers"
)

// FolderRoutes defines routes for folder management. The static /public
// segment must not collide with /:id, which gin resolves by priority.
func FolderRoutes(rg *gin.RouterGroup, h *handlers.FolderHandler) {
	folders := rg.Group("/pastas")
	{
		folders.GET("", h.List)
		folders.POST("/create", h.Create)
		folders.PUT("/update/:id", h.Update)
		folders.DELETE("/delete/:id", h.Delete)
		folders.GET("/public", h.ListPublic)
		folders.PUT("/publish/:id", h.Publish)
		folders.PUT("/unpublish/:id", h.Unpublish)
		folders.GET("/:id", h.Get)
	}
}
