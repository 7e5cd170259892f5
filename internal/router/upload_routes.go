package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Psedro/IPVCNotes-VF/internal/handlers"
)

// UploadRoutes defines the attachment upload route.
func UploadRoutes(rg *gin.RouterGroup, h *handlers.UploadHandler) {
	rg.POST("/upload", h.Upload)
}
