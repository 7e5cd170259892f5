package events

// Asset Event Types
const (
	FolderCreated     = "FOLDER_CREATED"
	FolderUpdated     = "FOLDER_UPDATED"
	FolderDeleted     = "FOLDER_DELETED"
	FolderPublished   = "FOLDER_PUBLISHED"
	FolderUnpublished = "FOLDER_UNPUBLISHED"

	NoteCreated = "NOTE_CREATED"
	NoteUpdated = "NOTE_UPDATED"
	NoteDeleted = "NOTE_DELETED"
)

// Sharing Event Types
const (
	FolderShared       = "FOLDER_SHARED"
	ShareUpdated       = "SHARE_UPDATED"
	FolderUnshared     = "FOLDER_UNSHARED"
	EditRequestCreated = "EDIT_REQUEST_CREATED"
	EditRequestClosed  = "EDIT_REQUEST_CLOSED"
)

// Kafka Topics
const (
	AssetChangesTopic    = "asset.changes"
	SharingActivityTopic = "sharing.activity"
)

// Asset Types
const (
	AssetTypeFolder = "folder"
	AssetTypeNote   = "note"
)
