package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Psedro/IPVCNotes-VF/internal/access"
	"github.com/Psedro/IPVCNotes-VF/internal/models"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
	"github.com/Psedro/IPVCNotes-VF/internal/services"
)

// userHeader carries the acting user in tests, standing in for the JWT
// middleware.
const userHeader = "X-Test-User"

type apiFixture struct {
	mem   *repositories.Memory
	reg   repositories.Registry
	r     *gin.Engine
	owner *models.User
	guest *models.User
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := repositories.NewMemory()
	reg := mem.Registry()

	owner := &models.User{Nome: "Ana", Email: "ana@example.com", PasswordHash: "x"}
	guest := &models.User{Nome: "Bruno", Email: "bruno@example.com", PasswordHash: "x"}
	require.NoError(t, reg.Users.Create(context.Background(), owner))
	require.NoError(t, reg.Users.Create(context.Background(), guest))

	resolver := access.NewResolver(reg.Shares, reg.Permissions)
	shareService := services.NewShareService(reg, resolver)
	requestService := services.NewEditRequestService(reg.Folders, reg.EditRequests, mem.TxManager())

	folderHandler := NewFolderHandler(reg, resolver, mem.TxManager(), nil, nil)
	noteHandler := NewNoteHandler(reg.Notes, reg.Folders, resolver, nil)
	shareHandler := NewShareHandler(shareService, nil, nil)
	permissionHandler := NewPermissionHandler(reg.Permissions)
	requestHandler := NewEditRequestHandler(requestService, nil)

	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		if raw := c.GetHeader(userHeader); raw != "" {
			id, err := uuid.Parse(raw)
			require.NoError(t, err)
			c.Set("user_id", id)
		}
		c.Next()
	})

	pastas := api.Group("/pastas")
	pastas.GET("", folderHandler.List)
	pastas.POST("/create", folderHandler.Create)
	pastas.PUT("/update/:id", folderHandler.Update)
	pastas.DELETE("/delete/:id", folderHandler.Delete)
	pastas.GET("/public", folderHandler.ListPublic)
	pastas.PUT("/publish/:id", folderHandler.Publish)
	pastas.PUT("/unpublish/:id", folderHandler.Unpublish)
	pastas.GET("/:id", folderHandler.Get)

	notas := api.Group("/notas")
	notas.GET("/pasta/:pastaId", noteHandler.ListByFolder)
	notas.POST("/create/:pastaId", noteHandler.Create)
	notas.GET("/:id", noteHandler.Get)
	notas.PUT("/:id", noteHandler.Update)
	notas.DELETE("/:id", noteHandler.Delete)

	partilhas := api.Group("/partpastas")
	partilhas.GET("/pasta/:pastaId", shareHandler.List)
	partilhas.POST("/create", shareHandler.Create)
	partilhas.PATCH("/update/:id", shareHandler.Update)
	partilhas.DELETE("/delete/:id", shareHandler.Delete)

	permissoes := api.Group("/permissoes")
	permissoes.GET("", permissionHandler.List)
	permissoes.POST("/create", permissionHandler.Create)
	permissoes.DELETE("/delete/:id", permissionHandler.Delete)

	requests := api.Group("/edit-requests")
	requests.POST("/request/:pastaId", requestHandler.Request)
	requests.GET("/notifications", requestHandler.Notifications)
	requests.PUT("/respond/:requestId", requestHandler.Respond)

	return &apiFixture{mem: mem, reg: reg, r: r, owner: owner, guest: guest}
}

func (f *apiFixture) do(t *testing.T, method, path string, as *models.User, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != nil {
		req.Header.Set(userHeader, as.ID.String())
	}

	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	return w
}

func (f *apiFixture) folder(t *testing.T, owner *models.User, public bool) *models.Folder {
	t.Helper()
	folder := &models.Folder{Nome: "Projeto", OwnerID: owner.ID, IsPublic: public}
	require.NoError(t, f.reg.Folders.Create(context.Background(), folder))
	return folder
}

func (f *apiFixture) permission(t *testing.T, name string) *models.Permission {
	t.Helper()
	perm := &models.Permission{Nome: name}
	require.NoError(t, f.reg.Permissions.Create(context.Background(), perm))
	return perm
}

func (f *apiFixture) share(t *testing.T, folder *models.Folder, user *models.User, permName string) *models.FolderShare {
	t.Helper()
	perm, err := f.reg.Permissions.GetByName(context.Background(), permName)
	if err != nil {
		perm = f.permission(t, permName)
	}
	share := &models.FolderShare{FolderID: folder.ID, UserID: user.ID, PermissionID: perm.ID}
	require.NoError(t, f.reg.Shares.Create(context.Background(), share))
	return share
}

func (f *apiFixture) note(t *testing.T, folder *models.Folder, creator *models.User) *models.Note {
	t.Helper()
	note := &models.Note{FolderID: folder.ID, OwnerID: creator.ID, Titulo: "Apontamentos", Conteudo: "texto"}
	require.NoError(t, f.reg.Notes.Create(context.Background(), note))
	return note
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
