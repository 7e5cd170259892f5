package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShareCreateEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	folder := f.folder(t, f.owner, false)
	perm := f.permission(t, "leitor")

	payload := map[string]string{
		"pastaId":      folder.ID.String(),
		"utilizadorId": f.guest.ID.String(),
		"permissaoId":  perm.ID.String(),
	}

	// Only the folder owner may grant access.
	w := f.do(t, http.MethodPost, "/api/partpastas/create", f.guest, payload)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, http.MethodPost, "/api/partpastas/create", f.owner, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate (pastaId, utilizadorId) conflicts.
	w = f.do(t, http.MethodPost, "/api/partpastas/create", f.owner, payload)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestShareCreateBadIDs(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/partpastas/create", f.owner, map[string]string{
		"pastaId":      "not-a-uuid",
		"utilizadorId": f.guest.ID.String(),
		"permissaoId":  "also-bad",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/partpastas/create", f.owner, map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShareListResolvesUsers(t *testing.T) {
	f := newAPIFixture(t)
	folder := f.folder(t, f.owner, false)
	f.share(t, folder, f.guest, "leitor")

	w := f.do(t, http.MethodGet, "/api/partpastas/pasta/"+folder.ID.String(), f.owner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]interface{}
	decodeBody(t, w, &list)
	require.Len(t, list, 1)

	user, ok := list[0]["utilizador"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "Bruno", user["nome"])
}

func TestShareUpdateAndDeleteEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	folder := f.folder(t, f.owner, false)
	share := f.share(t, folder, f.guest, "leitor")
	editor := f.permission(t, "editor")

	w := f.do(t, http.MethodPatch, "/api/partpastas/update/"+share.ID.String(), f.guest, map[string]string{"permissaoId": editor.ID.String()})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, http.MethodPatch, "/api/partpastas/update/"+share.ID.String(), f.owner, map[string]string{"permissaoId": editor.ID.String()})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodDelete, "/api/partpastas/delete/"+share.ID.String(), f.owner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodDelete, "/api/partpastas/delete/"+share.ID.String(), f.owner, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
