// Package repositories defines the storage interfaces for every entity
// plus the transaction manager, with PostgreSQL (gorm) and in-memory
// implementations. Handlers and services depend on these interfaces only.
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Psedro/IPVCNotes-VF/internal/models"
)

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness constraint rejects a
	// write (duplicate email, duplicate (folder, user) share, ...).
	ErrConflict = errors.New("already exists")
)

type Users interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type Folders interface {
	Create(ctx context.Context, folder *models.Folder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Folder, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Folder, error)
	// ListPublic returns public folders, newest first, optionally
	// filtered by a case-insensitive name fragment.
	ListPublic(ctx context.Context, search string) ([]models.Folder, error)
	Update(ctx context.Context, folder *models.Folder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Notes interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error)
	// ListByFolder returns the folder's notes, most recently updated
	// first, with attachments loaded in order.
	ListByFolder(ctx context.Context, folderID uuid.UUID) ([]models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	// ReplaceAttachments swaps the note's attachment list wholesale.
	ReplaceAttachments(ctx context.Context, noteID uuid.UUID, anexos []models.Attachment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByFolder(ctx context.Context, folderID uuid.UUID) error
}

type Shares interface {
	Create(ctx context.Context, share *models.FolderShare) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FolderShare, error)
	GetByFolderAndUser(ctx context.Context, folderID, userID uuid.UUID) (*models.FolderShare, error)
	// ListByFolder resolves the user and permission of each share for
	// display.
	ListByFolder(ctx context.Context, folderID uuid.UUID) ([]models.FolderShare, error)
	// ListByUser resolves each share's folder and its owner, for the
	// "shared with me" listing.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.FolderShare, error)
	UpdatePermission(ctx context.Context, id, permissionID uuid.UUID) (*models.FolderShare, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByFolder(ctx context.Context, folderID uuid.UUID) error
}

type Permissions interface {
	Create(ctx context.Context, permission *models.Permission) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Permission, error)
	GetByName(ctx context.Context, name string) (*models.Permission, error)
	List(ctx context.Context) ([]models.Permission, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type EditRequests interface {
	Create(ctx context.Context, request *models.EditRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.EditRequest, error)
	// FindPending returns the pending request for (folder, requester),
	// or ErrNotFound.
	FindPending(ctx context.Context, folderID, requesterID uuid.UUID) (*models.EditRequest, error)
	// ListPendingByOwner returns pending requests addressed to the
	// owner, newest first, with requester and folder resolved.
	ListPendingByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.EditRequest, error)
	Update(ctx context.Context, request *models.EditRequest) error
	DeleteByFolder(ctx context.Context, folderID uuid.UUID) error
}

// Registry bundles one repository per entity, all bound to the same
// database handle (or the same transaction).
type Registry struct {
	Users        Users
	Folders      Folders
	Notes        Notes
	Shares       Shares
	Permissions  Permissions
	EditRequests EditRequests
}

// TxManager runs fn against a Registry whose repositories share one
// transaction. If fn returns an error every write inside it is rolled
// back.
type TxManager interface {
	Do(ctx context.Context, fn func(reg Registry) error) error
}
