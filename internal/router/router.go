package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Psedro/IPVCNotes-VF/internal/handlers"
	"github.com/Psedro/IPVCNotes-VF/internal/middleware"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
)

// Handlers bundles every handler the API mounts.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Folder      *handlers.FolderHandler
	Note        *handlers.NoteHandler
	Share       *handlers.ShareHandler
	Permission  *handlers.PermissionHandler
	EditRequest *handlers.EditRequestHandler
	Upload      *handlers.UploadHandler
}

// Setup mounts the API under /api. Everything except register and login
// sits behind the auth middleware.
func Setup(router *gin.Engine, h Handlers, tokenSecret string, users repositories.Users) {
	api := router.Group("/api")

	AuthRoutes(api, h.Auth, tokenSecret, users)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenSecret, users))

	FolderRoutes(protected, h.Folder)
	NoteRoutes(protected, h.Note)
	ShareRoutes(protected, h.Share)
	PermissionRoutes(protected, h.Permission)
	EditRequestRoutes(protected, h.EditRequest)
	UploadRoutes(protected, h.Upload)
}
