package models

import (
	"time"

	"github.com/google/uuid"
)

type Folder struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Nome      string    `gorm:"size:150;not null" json:"nome"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"pastaDono"`
	IsPublic  bool      `gorm:"not null;default:false" json:"isPublic"`
	CreatedAt time.Time `json:"criacaoDt"`
	UpdatedAt time.Time `json:"-"`

	// Foreign key relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"dono,omitempty"`
}

// FolderShare grants one user a named permission level over one folder.
// The composite unique index is the only defense against concurrent
// duplicate grants: a second insert for the same (folder, user) pair must
// fail with a conflict instead of overwriting the first.
type FolderShare struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FolderID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_share_folder_user" json:"pastaId"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_share_folder_user" json:"utilizadorId"`
	PermissionID uuid.UUID `gorm:"type:uuid;not null" json:"permissaoId"`
	CreatedAt    time.Time `json:"partilhaDt"`
	UpdatedAt    time.Time `json:"-"`

	// Foreign key relationships
	Folder     Folder     `gorm:"foreignKey:FolderID" json:"pasta,omitempty"`
	User       User       `gorm:"foreignKey:UserID" json:"utilizador,omitempty"`
	Permission Permission `gorm:"foreignKey:PermissionID" json:"permissao,omitempty"`
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// EditRequest is a pending ask from a non-collaborator for edit access to
// a public folder. OwnerID is a snapshot of the folder owner at creation
// time. Resolved requests are terminal; historical accepted/rejected rows
// for the same (folder, requester) may accumulate, so there is no unique
// index here.
type EditRequest struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FolderID    uuid.UUID     `gorm:"type:uuid;not null;index:idx_request_folder_user" json:"pastaId"`
	RequesterID uuid.UUID     `gorm:"type:uuid;not null;index:idx_request_folder_user" json:"requesterId"`
	OwnerID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"ownerId"`
	Status      RequestStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`

	// Foreign key relationships
	Folder    Folder `gorm:"foreignKey:FolderID" json:"pasta,omitempty"`
	Requester User   `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
}
