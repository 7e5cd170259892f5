package events

import (
	"time"

	"github.com/google/uuid"
)

// AssetEvent describes a create/update/delete on a folder or note.
type AssetEvent struct {
	EventType string    `json:"eventType"`
	AssetType string    `json:"assetType"`
	AssetID   string    `json:"assetId"`
	OwnerID   string    `json:"ownerId"`
	ActionBy  string    `json:"actionBy"`
	Timestamp time.Time `json:"timestamp"`
}

// SharingEvent describes share grants, updates and revocations, plus the
// edit-request lifecycle.
type SharingEvent struct {
	EventType        string    `json:"eventType"`
	FolderID         string    `json:"folderId"`
	OwnerID          string    `json:"ownerId"`
	ActionBy         string    `json:"actionBy"`
	Timestamp        time.Time `json:"timestamp"`
	SharedWithUserID *string   `json:"sharedWithUserId,omitempty"`
	AccessLevel      *string   `json:"accessLevel,omitempty"`
	RequestStatus    *string   `json:"requestStatus,omitempty"`
}

// NewAssetEvent creates a new asset event.
func NewAssetEvent(eventType, assetType string, assetID, ownerID, actionBy uuid.UUID) *AssetEvent {
	return &AssetEvent{
		EventType: eventType,
		AssetType: assetType,
		AssetID:   assetID.String(),
		OwnerID:   ownerID.String(),
		ActionBy:  actionBy.String(),
		Timestamp: time.Now(),
	}
}

// NewSharingEvent creates a sharing event for a grant or revocation.
func NewSharingEvent(eventType string, folderID, ownerID, actionBy, sharedWith uuid.UUID, accessLevel string) *SharingEvent {
	sharedWithStr := sharedWith.String()
	return &SharingEvent{
		EventType:        eventType,
		FolderID:         folderID.String(),
		OwnerID:          ownerID.String(),
		ActionBy:         actionBy.String(),
		Timestamp:        time.Now(),
		SharedWithUserID: &sharedWithStr,
		AccessLevel:      &accessLevel,
	}
}

// NewEditRequestEvent creates a sharing event for the request workflow.
func NewEditRequestEvent(eventType string, folderID, ownerID, requesterID uuid.UUID, status string) *SharingEvent {
	requesterStr := requesterID.String()
	return &SharingEvent{
		EventType:        eventType,
		FolderID:         folderID.String(),
		OwnerID:          ownerID.String(),
		ActionBy:         requesterStr,
		Timestamp:        time.Now(),
		SharedWithUserID: &requesterStr,
		RequestStatus:    &status,
	}
}
