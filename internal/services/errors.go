package services

import "errors"

var (
	// ErrNotOwner is returned when a caller other than the folder owner
	// attempts an owner-only operation.
	ErrNotOwner = errors.New("caller does not own the folder")
	// ErrFolderNotPublic rejects edit requests against private folders.
	ErrFolderNotPublic = errors.New("folder is not public")
	// ErrRequestPending rejects a second pending request for the same
	// (folder, requester) pair.
	ErrRequestPending = errors.New("request already pending")
	// ErrInvalidStatus rejects responses other than accepted/rejected.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrRequestResolved rejects transitions out of a terminal status.
	ErrRequestResolved = errors.New("request already resolved")
)
