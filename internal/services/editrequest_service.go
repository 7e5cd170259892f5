package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Psedro/IPVCNotes-VF/internal/models"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
)

// EditRequestService implements the pending → accepted/rejected workflow
// through which non-collaborators ask for edit access to public folders.
type EditRequestService struct {
	folders  repositories.Folders
	requests repositories.EditRequests
	tx       repositories.TxManager
}

func NewEditRequestService(folders repositories.Folders, requests repositories.EditRequests, tx repositories.TxManager) *EditRequestService {
	return &EditRequestService{folders: folders, requests: requests, tx: tx}
}

// Request files a pending edit request. The target folder must exist and
// be public, and the requester must not already have a pending request
// for it. The folder owner is snapshotted onto the request.
func (s *EditRequestService) Request(ctx context.Context, folderID, requesterID uuid.UUID) (*models.EditRequest, error) {
	folder, err := s.folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if !folder.IsPublic {
		return nil, ErrFolderNotPublic
	}

	if _, err := s.requests.FindPending(ctx, folderID, requesterID); err == nil {
		return nil, ErrRequestPending
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	request := &models.EditRequest{
		FolderID:    folderID,
		RequesterID: requesterID,
		OwnerID:     folder.OwnerID,
		Status:      models.RequestPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// Notifications returns the caller's pending requests (as folder owner),
// newest first, with requester and folder names resolved for display.
func (s *EditRequestService) Notifications(ctx context.Context, ownerID uuid.UUID) ([]models.EditRequest, error) {
	return s.requests.ListPendingByOwner(ctx, ownerID)
}

// Respond transitions a pending request to accepted or rejected. Only the
// owner snapshotted on the request may respond, and resolved requests are
// terminal. Acceptance grants an editor-level share as a side effect; the
// status flip and the share upsert run in one transaction so a failure
// leaves the request pending for a retry instead of half-applied.
func (s *EditRequestService) Respond(ctx context.Context, requestID, callerID uuid.UUID, status models.RequestStatus) (*models.EditRequest, error) {
	if status != models.RequestAccepted && status != models.RequestRejected {
		return nil, ErrInvalidStatus
	}

	var request *models.EditRequest
	err := s.tx.Do(ctx, func(reg repositories.Registry) error {
		var err error
		request, err = reg.EditRequests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if request.OwnerID != callerID {
			// Hide the request's existence from non-owners.
			return repositories.ErrNotFound
		}
		if request.Status != models.RequestPending {
			return ErrRequestResolved
		}

		request.Status = status
		if err := reg.EditRequests.Update(ctx, request); err != nil {
			return err
		}

		if status == models.RequestAccepted {
			return grantEditorShare(ctx, reg, request.FolderID, request.RequesterID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// grantEditorShare resolves the editor permission (legacy "admin" rows
// serve as a fallback for old data, and "editor" is created lazily if
// neither exists) and upserts the requester's share: an existing share is
// upgraded in place, otherwise a new one is created. Idempotent: exactly
// one share per (folder, requester) results.
func grantEditorShare(ctx context.Context, reg repositories.Registry, folderID, requesterID uuid.UUID) error {
	perm, err := reg.Permissions.GetByName(ctx, "editor")
	if errors.Is(err, repositories.ErrNotFound) {
		perm, err = reg.Permissions.GetByName(ctx, "admin")
	}
	if errors.Is(err, repositories.ErrNotFound) {
		perm = &models.Permission{Nome: "editor"}
		err = reg.Permissions.Create(ctx, perm)
	}
	if err != nil {
		return fmt.Errorf("resolving editor permission: %w", err)
	}

	share, err := reg.Shares.GetByFolderAndUser(ctx, folderID, requesterID)
	if err == nil {
		_, err = reg.Shares.UpdatePermission(ctx, share.ID, perm.ID)
		return err
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	return reg.Shares.Create(ctx, &models.FolderShare{
		FolderID:     folderID,
		UserID:       requesterID,
		PermissionID: perm.ID,
	})
}
