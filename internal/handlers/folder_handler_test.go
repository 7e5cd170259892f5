package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
)

func TestFolderCreateAndList(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/pastas/create", f.owner, map[string]string{"nome": "Estudos"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodPost, "/api/pastas/create", f.owner, map[string]string{"nome": "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/api/pastas", f.owner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]interface{}
	decodeBody(t, w, &list)
	require.Len(t, list, 1)
	require.Equal(t, "Estudos", list[0]["nome"])
	require.Equal(t, false, list[0]["isShared"])
}

func TestFolderListIncludesShared(t *testing.T) {
	f := newAPIFixture(t)
	mine := f.folder(t, f.guest, false)
	theirs := f.folder(t, f.owner, false)
	f.share(t, theirs, f.guest, "leitor")

	w := f.do(t, http.MethodGet, "/api/pastas", f.guest, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]interface{}
	decodeBody(t, w, &list)
	require.Len(t, list, 2)

	flags := map[string]bool{}
	for _, item := range list {
		flags[item["id"].(string)] = item["isShared"].(bool)
	}
	require.False(t, flags[mine.ID.String()])
	require.True(t, flags[theirs.ID.String()])
}

func TestFolderUpdateOwnerGate(t *testing.T) {
	f := newAPIFixture(t)
	folder := f.folder(t, f.owner, false)

	// Non-owners get the same 404 as a missing folder.
	w := f.do(t, http.MethodPut, "/api/pastas/update/"+folder.ID.String(), f.guest, map[string]string{"nome": "Novo"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPut, "/api/pastas/update/"+folder.ID.String(), f.owner, map[string]string{"nome": "Novo"})
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := f.reg.Folders.GetByID(context.Background(), folder.ID)
	require.NoError(t, err)
	require.Equal(t, "Novo", stored.Nome)
}

func TestFolderGetPermissions(t *testing.T) {
	f := newAPIFixture(t)
	folder := f.folder(t, f.owner, false)

	w := f.do(t, http.MethodGet, "/api/pastas/"+folder.ID.String(), f.owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	decodeBody(t, w, &body)
	require.Equal(t, "owner", body["userPermission"])

	// Strangers are refused on private folders.
	w = f.do(t, http.MethodGet, "/api/pastas/"+folder.ID.String(), f.guest, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// A reader share opens it up.
	f.share(t, folder, f.guest, "leitor")
	w = f.do(t, http.MethodGet, "/api/pastas/"+folder.ID.String(), f.guest, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &body)
	require.Equal(t, "reader", body["userPermission"])
}

func TestFolderGetPublic(t *testing.T) {
	f := newAPIFixture(t)
	folder := f.folder(t, f.owner, true)

	w := f.do(t, http.MethodGet, "/api/pastas/"+folder.ID.String(), f.guest, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	decodeBody(t, w, &body)
	require.Equal(t, "none", body["userPermission"])
}

func TestFolderPublishCycle(t *testing.T) {
	f := newAPIFixture(t)
	folder := f.folder(t, f.owner, false)

	w := f.do(t, http.MethodPut, "/api/pastas/publish/"+folder.ID.String(), f.guest, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPut, "/api/pastas/publish/"+folder.ID.String(), f.owner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/pastas/public?search=proj", f.guest, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	decodeBody(t, w, &list)
	require.Len(t, list, 1)

	w = f.do(t, http.MethodPut, "/api/pastas/unpublish/"+folder.ID.String(), f.owner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/pastas/public", f.guest, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &list)
	require.Empty(t, list)
}

func TestFolderDeleteCascades(t *testing.T) {
	f := newAPIFixture(t)
	folder := f.folder(t, f.owner, true)
	note := f.note(t, folder, f.owner)
	share := f.share(t, folder, f.guest, "leitor")

	w := f.do(t, http.MethodPost, "/api/edit-requests/request/"+folder.ID.String(), f.guest, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodDelete, "/api/pastas/delete/"+folder.ID.String(), f.owner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := f.reg.Folders.GetByID(context.Background(), folder.ID)
	require.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = f.reg.Notes.GetByID(context.Background(), note.ID)
	require.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = f.reg.Shares.GetByID(context.Background(), share.ID)
	require.ErrorIs(t, err, repositories.ErrNotFound)

	pending, err := f.reg.EditRequests.ListPendingByOwner(context.Background(), f.owner.ID)
	require.NoError(t, err)
	require.Empty(t, pending)
}
