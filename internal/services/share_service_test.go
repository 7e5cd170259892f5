package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Psedro/IPVCNotes-VF/internal/access"
	"github.com/Psedro/IPVCNotes-VF/internal/models"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
)

type shareFixture struct {
	reg     repositories.Registry
	service *ShareService
	owner   *models.User
	guest   *models.User
	leitor  *models.Permission
	editor  *models.Permission
}

func newShareFixture(t *testing.T) *shareFixture {
	t.Helper()
	reg := repositories.NewMemory().Registry()

	owner := &models.User{Nome: "Ana", Email: "ana@example.com", PasswordHash: "x"}
	guest := &models.User{Nome: "Bruno", Email: "bruno@example.com", PasswordHash: "x"}
	require.NoError(t, reg.Users.Create(context.Background(), owner))
	require.NoError(t, reg.Users.Create(context.Background(), guest))

	leitor := &models.Permission{Nome: "leitor"}
	editor := &models.Permission{Nome: "editor"}
	require.NoError(t, reg.Permissions.Create(context.Background(), leitor))
	require.NoError(t, reg.Permissions.Create(context.Background(), editor))

	resolver := access.NewResolver(reg.Shares, reg.Permissions)
	return &shareFixture{
		reg:     reg,
		service: NewShareService(reg, resolver),
		owner:   owner,
		guest:   guest,
		leitor:  leitor,
		editor:  editor,
	}
}

func (f *shareFixture) folder(t *testing.T, public bool) *models.Folder {
	t.Helper()
	folder := &models.Folder{Nome: "Projeto", OwnerID: f.owner.ID, IsPublic: public}
	require.NoError(t, f.reg.Folders.Create(context.Background(), folder))
	return folder
}

func TestShareCreateOwnerOnly(t *testing.T) {
	f := newShareFixture(t)
	folder := f.folder(t, false)

	_, err := f.service.Create(context.Background(), f.guest.ID, folder.ID, f.guest.ID, f.leitor.ID)
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestShareCreateValidatesReferences(t *testing.T) {
	f := newShareFixture(t)
	folder := f.folder(t, false)

	_, err := f.service.Create(context.Background(), f.owner.ID, uuid.New(), f.guest.ID, f.leitor.ID)
	require.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = f.service.Create(context.Background(), f.owner.ID, folder.ID, uuid.New(), f.leitor.ID)
	require.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = f.service.Create(context.Background(), f.owner.ID, folder.ID, f.guest.ID, uuid.New())
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestShareCreateDuplicateConflicts(t *testing.T) {
	f := newShareFixture(t)
	folder := f.folder(t, false)

	first, err := f.service.Create(context.Background(), f.owner.ID, folder.ID, f.guest.ID, f.leitor.ID)
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), f.owner.ID, folder.ID, f.guest.ID, f.editor.ID)
	require.ErrorIs(t, err, repositories.ErrConflict)

	// The original share survives the conflicting attempt untouched.
	stored, err := f.reg.Shares.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	require.Equal(t, f.leitor.ID, stored.PermissionID)
}

func TestShareUpdatePermission(t *testing.T) {
	f := newShareFixture(t)
	folder := f.folder(t, false)
	share, err := f.service.Create(context.Background(), f.owner.ID, folder.ID, f.guest.ID, f.leitor.ID)
	require.NoError(t, err)

	_, err = f.service.UpdatePermission(context.Background(), f.guest.ID, share.ID, f.editor.ID)
	require.ErrorIs(t, err, ErrNotOwner)

	_, err = f.service.UpdatePermission(context.Background(), f.owner.ID, share.ID, uuid.New())
	require.ErrorIs(t, err, repositories.ErrNotFound)

	updated, err := f.service.UpdatePermission(context.Background(), f.owner.ID, share.ID, f.editor.ID)
	require.NoError(t, err)
	require.Equal(t, share.ID, updated.ID)
	require.Equal(t, f.editor.ID, updated.PermissionID)
}

func TestShareDelete(t *testing.T) {
	f := newShareFixture(t)
	folder := f.folder(t, false)
	share, err := f.service.Create(context.Background(), f.owner.ID, folder.ID, f.guest.ID, f.leitor.ID)
	require.NoError(t, err)

	_, err = f.service.Delete(context.Background(), f.guest.ID, share.ID)
	require.ErrorIs(t, err, ErrNotOwner)

	deleted, err := f.service.Delete(context.Background(), f.owner.ID, share.ID)
	require.NoError(t, err)
	require.Equal(t, share.ID, deleted.ID)

	_, err = f.reg.Shares.GetByID(context.Background(), share.ID)
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestShareListReadGate(t *testing.T) {
	f := newShareFixture(t)
	folder := f.folder(t, false)
	_, err := f.service.Create(context.Background(), f.owner.ID, folder.ID, f.guest.ID, f.leitor.ID)
	require.NoError(t, err)

	stranger := &models.User{Nome: "Carla", Email: "carla@example.com", PasswordHash: "x"}
	require.NoError(t, f.reg.Users.Create(context.Background(), stranger))

	_, err = f.service.List(context.Background(), folder.ID, stranger.ID)
	require.ErrorIs(t, err, ErrNotOwner)

	// A reader-level collaborator may see the share list.
	list, err := f.service.List(context.Background(), folder.ID, f.guest.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Bruno", list[0].User.Nome)
	require.Equal(t, "leitor", list[0].Permission.Nome)
}

func TestShareLevelDanglingPermission(t *testing.T) {
	f := newShareFixture(t)
	folder := f.folder(t, false)
	share, err := f.service.Create(context.Background(), f.owner.ID, folder.ID, f.guest.ID, f.editor.ID)
	require.NoError(t, err)

	require.Equal(t, access.LevelEditor, f.service.ShareLevel(context.Background(), share))

	require.NoError(t, f.reg.Permissions.Delete(context.Background(), f.editor.ID))
	require.Equal(t, access.LevelNone, f.service.ShareLevel(context.Background(), share))
}

func TestNormalizePermissionName(t *testing.T) {
	require.Equal(t, "editor", NormalizePermissionName("  EDITOR "))
	require.Equal(t, "leitor", NormalizePermissionName("Leitor"))
	require.Equal(t, "revisor", NormalizePermissionName("revisor"))
}
