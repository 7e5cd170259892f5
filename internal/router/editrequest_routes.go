package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Psedro/IPVCNotes-VF/internal/handlers"
)

// EditRequestRoutes defines routes for the edit-request workflow.
func EditRequestRoutes(rg *gin.RouterGroup, h *handlers.EditRequestHandler) {
	requests := rg.Group("/edit-requests")
	{
		requests.POST("/request/:pastaId", h.Request)
		requests.GET("/notifications", h.Notifications)
		requests.PUT("/respond/:requestId", h.Respond)
	}
}
