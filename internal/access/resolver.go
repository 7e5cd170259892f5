package access

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Psedro/IPVCNotes-VF/internal/models"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
)

// Resolver derives effective permissions from ownership, the share
// registry and the public flag. It is consulted by every folder and note
// operation; it never mutates anything.
type Resolver struct {
	shares      repositories.Shares
	permissions repositories.Permissions
}

func NewResolver(shares repositories.Shares, permissions repositories.Permissions) *Resolver {
	return &Resolver{shares: shares, permissions: permissions}
}

// FolderLevel computes the caller's effective permission for a folder:
// owner short-circuits everything; otherwise the share's permission name
// is normalized; no share means LevelNone (which still reads public
// folders). A share whose permission row was deleted also resolves to
// LevelNone.
func (r *Resolver) FolderLevel(ctx context.Context, folder *models.Folder, userID uuid.UUID) (Level, error) {
	if folder.OwnerID == userID {
		return LevelOwner, nil
	}

	share, err := r.shares.GetByFolderAndUser(ctx, folder.ID, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return LevelNone, nil
	}
	if err != nil {
		return LevelNone, err
	}

	perm, err := r.permissions.GetByID(ctx, share.PermissionID)
	if errors.Is(err, repositories.ErrNotFound) {
		// Dangling share: the referenced permission was deleted.
		return LevelNone, nil
	}
	if err != nil {
		return LevelNone, err
	}

	return Normalize(perm.Nome), nil
}

// CanReadFolder applies the read-gate and reports the computed level so
// callers can echo it back to the client.
func (r *Resolver) CanReadFolder(ctx context.Context, folder *models.Folder, userID uuid.UUID) (Level, bool, error) {
	level, err := r.FolderLevel(ctx, folder, userID)
	if err != nil {
		return LevelNone, false, err
	}
	return level, level.CanRead(folder.IsPublic), nil
}

// CanWriteNotes reports whether the caller may create notes in the
// folder. Public visibility never grants writes.
func (r *Resolver) CanWriteNotes(ctx context.Context, folder *models.Folder, userID uuid.UUID) (bool, error) {
	level, err := r.FolderLevel(ctx, folder, userID)
	if err != nil {
		return false, err
	}
	return level.CanEditNotes(), nil
}

// CanEditNote reports whether the caller may edit an existing note: the
// note's creator always can, independent of the share registry.
func (r *Resolver) CanEditNote(ctx context.Context, note *models.Note, folder *models.Folder, userID uuid.UUID) (bool, error) {
	if note.OwnerID == userID {
		return true, nil
	}
	return r.CanWriteNotes(ctx, folder, userID)
}

// CanReadNote applies the note read-gate. folder may be nil when the
// note's folder no longer exists; only the creator may read it then.
func (r *Resolver) CanReadNote(ctx context.Context, note *models.Note, folder *models.Folder, userID uuid.UUID) (bool, error) {
	if note.OwnerID == userID {
		return true, nil
	}
	if folder == nil {
		return false, nil
	}
	level, err := r.FolderLevel(ctx, folder, userID)
	if err != nil {
		return false, err
	}
	return level.CanRead(folder.IsPublic), nil
}

// CanDeleteNote is narrower than CanEditNote on purpose: editor-level
// share holders may edit other users' notes but not delete them. folder
// may be nil.
func CanDeleteNote(note *models.Note, folder *models.Folder, userID uuid.UUID) bool {
	if note.OwnerID == userID {
		return true
	}
	return folder != nil && folder.OwnerID == userID
}
