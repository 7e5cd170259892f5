package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Psedro/IPVCNotes-VF/internal/access"
	"github.com/Psedro/IPVCNotes-VF/internal/models"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
)

// ShareService owns the share registry rules: only folder owners may
// mutate a folder's share list, duplicates for the same (folder, user)
// pair conflict, and every referenced id must exist.
type ShareService struct {
	folders     repositories.Folders
	shares      repositories.Shares
	permissions repositories.Permissions
	users       repositories.Users
	resolver    *access.Resolver
}

func NewShareService(reg repositories.Registry, resolver *access.Resolver) *ShareService {
	return &ShareService{
		folders:     reg.Folders,
		shares:      reg.Shares,
		permissions: reg.Permissions,
		users:       reg.Users,
		resolver:    resolver,
	}
}

// List returns a folder's shares with user and permission resolved. The
// caller needs read access to the folder.
func (s *ShareService) List(ctx context.Context, folderID, callerID uuid.UUID) ([]models.FolderShare, error) {
	folder, err := s.folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	_, ok, err := s.resolver.CanReadFolder(ctx, folder, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotOwner
	}
	return s.shares.ListByFolder(ctx, folderID)
}

// Create grants userID the given permission over the folder. Owner-only;
// a second share for the same (folder, user) pair fails with
// repositories.ErrConflict and leaves the original untouched.
func (s *ShareService) Create(ctx context.Context, callerID, folderID, userID, permissionID uuid.UUID) (*models.FolderShare, error) {
	folder, err := s.folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder.OwnerID != callerID {
		return nil, ErrNotOwner
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.permissions.GetByID(ctx, permissionID); err != nil {
		return nil, err
	}

	share := &models.FolderShare{
		FolderID:     folderID,
		UserID:       userID,
		PermissionID: permissionID,
	}
	if err := s.shares.Create(ctx, share); err != nil {
		return nil, err
	}
	return share, nil
}

// UpdatePermission changes an existing share's permission in place.
// Owner-only.
func (s *ShareService) UpdatePermission(ctx context.Context, callerID, shareID, permissionID uuid.UUID) (*models.FolderShare, error) {
	share, err := s.shares.GetByID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	folder, err := s.folders.GetByID(ctx, share.FolderID)
	if err != nil {
		return nil, err
	}
	if folder.OwnerID != callerID {
		return nil, ErrNotOwner
	}
	if _, err := s.permissions.GetByID(ctx, permissionID); err != nil {
		return nil, err
	}
	return s.shares.UpdatePermission(ctx, shareID, permissionID)
}

// Delete revokes a share. Owner-only.
func (s *ShareService) Delete(ctx context.Context, callerID, shareID uuid.UUID) (*models.FolderShare, error) {
	share, err := s.shares.GetByID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	folder, err := s.folders.GetByID(ctx, share.FolderID)
	if err != nil {
		return nil, err
	}
	if folder.OwnerID != callerID {
		return nil, ErrNotOwner
	}
	if err := s.shares.Delete(ctx, shareID); err != nil {
		return nil, err
	}
	return share, nil
}

// ShareLevel reports the normalized level a share currently grants, for
// cache updates after a mutation. A dangling permission yields none.
func (s *ShareService) ShareLevel(ctx context.Context, share *models.FolderShare) access.Level {
	perm, err := s.permissions.GetByID(ctx, share.PermissionID)
	if err != nil {
		return access.LevelNone
	}
	return access.Normalize(perm.Nome)
}

// NormalizePermissionName is the boundary normalization applied when
// permission catalog entries are created: trimmed and lowercased, so
// "EDITOR" and "editor" collapse into one row.
func NormalizePermissionName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
