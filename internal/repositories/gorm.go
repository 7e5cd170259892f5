package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Psedro/IPVCNotes-VF/internal/models"
)

// NewGormRegistry binds one repository per entity to db. The handle may
// be a plain connection or a transaction.
func NewGormRegistry(db *gorm.DB) Registry {
	return Registry{
		Users:        &gormUsers{db: db},
		Folders:      &gormFolders{db: db},
		Notes:        &gormNotes{db: db},
		Shares:       &gormShares{db: db},
		Permissions:  &gormPermissions{db: db},
		EditRequests: &gormEditRequests{db: db},
	}
}

// NewGormTxManager returns a TxManager backed by database transactions.
func NewGormTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

type gormTxManager struct {
	db *gorm.DB
}

func (m *gormTxManager) Do(ctx context.Context, fn func(reg Registry) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormRegistry(tx))
	})
}

// wrapErr maps gorm errors onto the package sentinels. Requires the
// connection to be opened with TranslateError so unique-index violations
// surface as gorm.ErrDuplicatedKey.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

type gormUsers struct {
	db *gorm.DB
}

func (r *gormUsers) Create(ctx context.Context, user *models.User) error {
	return wrapErr(r.db.WithContext(ctx).Create(user).Error)
}

func (r *gormUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (r *gormUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

type gormFolders struct {
	db *gorm.DB
}

func (r *gormFolders) Create(ctx context.Context, folder *models.Folder) error {
	return wrapErr(r.db.WithContext(ctx).Create(folder).Error)
}

func (r *gormFolders) GetByID(ctx context.Context, id uuid.UUID) (*models.Folder, error) {
	var folder models.Folder
	if err := r.db.WithContext(ctx).Preload("Owner").First(&folder, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &folder, nil
}

func (r *gormFolders) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Folder, error) {
	var folders []models.Folder
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&folders).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return folders, nil
}

func (r *gormFolders) ListPublic(ctx context.Context, search string) ([]models.Folder, error) {
	q := r.db.WithContext(ctx).Preload("Owner").Where("is_public = ?", true)
	if search != "" {
		q = q.Where("nome ILIKE ?", "%"+search+"%")
	}
	var folders []models.Folder
	if err := q.Order("created_at DESC").Find(&folders).Error; err != nil {
		return nil, wrapErr(err)
	}
	return folders, nil
}

func (r *gormFolders) Update(ctx context.Context, folder *models.Folder) error {
	return wrapErr(r.db.WithContext(ctx).Save(folder).Error)
}

func (r *gormFolders) Delete(ctx context.Context, id uuid.UUID) error {
	return wrapErr(r.db.WithContext(ctx).Delete(&models.Folder{}, "id = ?", id).Error)
}

type gormNotes struct {
	db *gorm.DB
}

func orderedAnexos(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *gormNotes) Create(ctx context.Context, note *models.Note) error {
	return wrapErr(r.db.WithContext(ctx).Create(note).Error)
}

func (r *gormNotes) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	var note models.Note
	if err := r.db.WithContext(ctx).Preload("Anexos", orderedAnexos).First(&note, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &note, nil
}

func (r *gormNotes) ListByFolder(ctx context.Context, folderID uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	err := r.db.WithContext(ctx).
		Preload("Anexos", orderedAnexos).
		Where("folder_id = ?", folderID).
		Order("updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return notes, nil
}

func (r *gormNotes) Update(ctx context.Context, note *models.Note) error {
	return wrapErr(r.db.WithContext(ctx).Omit("Anexos").Save(note).Error)
}

func (r *gormNotes) ReplaceAttachments(ctx context.Context, noteID uuid.UUID, anexos []models.Attachment) error {
	return wrapErr(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", noteID).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		for i := range anexos {
			anexos[i].ID = uuid.New()
			anexos[i].NoteID = noteID
			anexos[i].Position = i
		}
		if len(anexos) == 0 {
			return nil
		}
		return tx.Create(&anexos).Error
	}))
}

func (r *gormNotes) Delete(ctx context.Context, id uuid.UUID) error {
	return wrapErr(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Note{}, "id = ?", id).Error
	}))
}

func (r *gormNotes) DeleteByFolder(ctx context.Context, folderID uuid.UUID) error {
	return wrapErr(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("note_id IN (?)",
			tx.Model(&models.Note{}).Select("id").Where("folder_id = ?", folderID),
		).Delete(&models.Attachment{}).Error
		if err != nil {
			return err
		}
		return tx.Where("folder_id = ?", folderID).Delete(&models.Note{}).Error
	}))
}

type gormShares struct {
	db *gorm.DB
}

func (r *gormShares) Create(ctx context.Context, share *models.FolderShare) error {
	return wrapErr(r.db.WithContext(ctx).Create(share).Error)
}

func (r *gormShares) GetByID(ctx context.Context, id uuid.UUID) (*models.FolderShare, error) {
	var share models.FolderShare
	if err := r.db.WithContext(ctx).First(&share, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &share, nil
}

func (r *gormShares) GetByFolderAndUser(ctx context.Context, folderID, userID uuid.UUID) (*models.FolderShare, error) {
	var share models.FolderShare
	err := r.db.WithContext(ctx).
		Where("folder_id = ? AND user_id = ?", folderID, userID).
		First(&share).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &share, nil
}

func (r *gormShares) ListByFolder(ctx context.Context, folderID uuid.UUID) ([]models.FolderShare, error) {
	var shares []models.FolderShare
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Permission").
		Where("folder_id = ?", folderID).
		Order("created_at ASC").
		Find(&shares).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return shares, nil
}

func (r *gormShares) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.FolderShare, error) {
	var shares []models.FolderShare
	err := r.db.WithContext(ctx).
		Preload("Folder").
		Preload("Folder.Owner").
		Where("user_id = ?", userID).
		Find(&shares).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return shares, nil
}

func (r *gormShares) UpdatePermission(ctx context.Context, id, permissionID uuid.UUID) (*models.FolderShare, error) {
	var share models.FolderShare
	if err := r.db.WithContext(ctx).First(&share, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	share.PermissionID = permissionID
	if err := r.db.WithContext(ctx).Save(&share).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &share, nil
}

func (r *gormShares) Delete(ctx context.Context, id uuid.UUID) error {
	return wrapErr(r.db.WithContext(ctx).Delete(&models.FolderShare{}, "id = ?", id).Error)
}

func (r *gormShares) DeleteByFolder(ctx context.Context, folderID uuid.UUID) error {
	return wrapErr(r.db.WithContext(ctx).Where("folder_id = ?", folderID).Delete(&models.FolderShare{}).Error)
}

type gormPermissions struct {
	db *gorm.DB
}

func (r *gormPermissions) Create(ctx context.Context, permission *models.Permission) error {
	return wrapErr(r.db.WithContext(ctx).Create(permission).Error)
}

func (r *gormPermissions) GetByID(ctx context.Context, id uuid.UUID) (*models.Permission, error) {
	var permission models.Permission
	if err := r.db.WithContext(ctx).First(&permission, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &permission, nil
}

func (r *gormPermissions) GetByName(ctx context.Context, name string) (*models.Permission, error) {
	var permission models.Permission
	if err := r.db.WithContext(ctx).First(&permission, "permissao = ?", name).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &permission, nil
}

func (r *gormPermissions) List(ctx context.Context) ([]models.Permission, error) {
	var permissions []models.Permission
	if err := r.db.WithContext(ctx).Order("permissao ASC").Find(&permissions).Error; err != nil {
		return nil, wrapErr(err)
	}
	return permissions, nil
}

func (r *gormPermissions) Delete(ctx context.Context, id uuid.UUID) error {
	// No cascade: shares referencing the deleted permission are left
	// dangling and resolve to "none".
	res := r.db.WithContext(ctx).Delete(&models.Permission{}, "id = ?", id)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormEditRequests struct {
	db *gorm.DB
}

func (r *gormEditRequests) Create(ctx context.Context, request *models.EditRequest) error {
	return wrapErr(r.db.WithContext(ctx).Create(request).Error)
}

func (r *gormEditRequests) GetByID(ctx context.Context, id uuid.UUID) (*models.EditRequest, error) {
	var request models.EditRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &request, nil
}

func (r *gormEditRequests) FindPending(ctx context.Context, folderID, requesterID uuid.UUID) (*models.EditRequest, error) {
	var request models.EditRequest
	err := r.db.WithContext(ctx).
		Where("folder_id = ? AND requester_id = ? AND status = ?", folderID, requesterID, models.RequestPending).
		First(&request).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &request, nil
}

func (r *gormEditRequests) ListPendingByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.EditRequest, error) {
	var requests []models.EditRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Folder").
		Where("owner_id = ? AND status = ?", ownerID, models.RequestPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return requests, nil
}

func (r *gormEditRequests) Update(ctx context.Context, request *models.EditRequest) error {
	return wrapErr(r.db.WithContext(ctx).Save(request).Error)
}

func (r *gormEditRequests) DeleteByFolder(ctx context.Context, folderID uuid.UUID) error {
	return wrapErr(r.db.WithContext(ctx).Where("folder_id = ?", folderID).Delete(&models.EditRequest{}).Error)
}
