package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Psedro/IPVCNotes-VF/internal/handlers"
	"github.com/Psedro/IPVCNotes-VF/internal/middleware"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
)

// AuthRoutes defines the account routes. find-by-email needs a token,
// the other two do not.
func AuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler, tokenSecret string, users repositories.Users) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/find-by-email", middleware.AuthMiddleware(tokenSecret, users), h.FindByEmail)
	}
}
