package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Psedro/IPVCNotes-VF/internal/handlers"
)

// ShareRoutes defines routes for the folder share registry.
func ShareRoutes(rg *gin.RouterGroup, h *handlers.ShareHandler) {
	shares := rg.Group("/partpastas")
	{
		shares.GET("/pasta/:pastaId", h.List)
		shares.POST("/create", h.Create)
		shares.PATCH("/update/:id", h.Update)
		shares.DELETE("/delete/:id", h.Delete)
	}
}
