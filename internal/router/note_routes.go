package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Psedro/IPVCNotes-VF/internal/handlers"
)

// NoteRoutes defines routes for notes within folders.
func NoteRoutes(rg *gin.RouterGroup, h *handlers.NoteHandler) {
	notes := rg.Group("/notas")
	{
		notes.GET("/pasta/:pastaId", h.ListByFolder)
		notes.POST("/create/:pastaId", h.Create)
		notes.GET("/:id", h.Get)
		notes.PUT("/:id", h.Update)
		notes.DELETE("/:id", h.Delete)
	}
}
