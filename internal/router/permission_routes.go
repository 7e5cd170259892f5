package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Psedro/IPVCNotes-VF/internal/handlers"
)

// PermissionRoutes defines routes for the permission catalog.
func PermissionRoutes(rg *gin.RouterGroup, h *handlers.PermissionHandler) {
	permissions := rg.Group("/permissoes")
	{
		permissions.GET("", h.List)
		permissions.POST("/create", h.Create)
		permissions.DELETE("/delete/:id", h.Delete)
	}
}
