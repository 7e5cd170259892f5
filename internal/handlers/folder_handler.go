package handlers

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Psedro/IPVCNotes-VF/internal/access"
	"github.com/Psedro/IPVCNotes-VF/internal/events"
	"github.com/Psedro/IPVCNotes-VF/internal/kafka"
	"github.com/Psedro/IPVCNotes-VF/internal/models"
	"github.com/Psedro/IPVCNotes-VF/internal/redis"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
	"github.com/Psedro/IPVCNotes-VF/pkg/logger"
	"github.com/Psedro/IPVCNotes-VF/pkg/responses"
)

type FolderHandler struct {
	reg      repositories.Registry
	resolver *access.Resolver
	tx       repositories.TxManager
	producer *kafka.Producer
	cache    *redis.Service
}

func NewFolderHandler(reg repositories.Registry, resolver *access.Resolver, tx repositories.TxManager, producer *kafka.Producer, cache *redis.Service) *FolderHandler {
	return &FolderHandler{
		reg:      reg,
		resolver: resolver,
		tx:       tx,
		producer: producer,
		cache:    cache,
	}
}

type folderWithFlag struct {
	models.Folder
	IsShared bool `json:"isShared"`
}

// List returns the caller's own folders merged with the ones shared with
// them, newest first, each carrying an isShared flag.
func (h *FolderHandler) List(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	mine, err := h.reg.Folders.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("listing own folders failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao listar pastas")
		return
	}

	shares, err := h.reg.Shares.ListByUser(c.Request.Context(), userID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("listing shared folders failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao listar pastas")
		return
	}

	all := make([]folderWithFlag, 0, len(mine)+len(shares))
	for _, folder := range mine {
		all = append(all, folderWithFlag{Folder: folder, IsShared: false})
	}
	for _, share := range shares {
		// A share may outlive its folder.
		folder, err := h.reg.Folders.GetByID(c.Request.Context(), share.FolderID)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			logger.Log.Error().Err(err).Msg("resolving shared folder failed")
			responses.Message(c, http.StatusInternalServerError, "Erro ao listar pastas")
			return
		}
		all = append(all, folderWithFlag{Folder: *folder, IsShared: true})
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	c.JSON(http.StatusOK, all)
}

// Create creates a folder owned by the caller.
func (h *FolderHandler) Create(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var req struct {
		Nome string `json:"nome"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Nome) == "" {
		responses.Message(c, http.StatusBadRequest, "O nome é obrigatório")
		return
	}

	folder := &models.Folder{Nome: strings.TrimSpace(req.Nome), OwnerID: userID}
	if err := h.reg.Folders.Create(c.Request.Context(), folder); err != nil {
		logger.Log.Error().Err(err).Msg("folder creation failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao criar pasta")
		return
	}

	h.publishAssetEvent(events.FolderCreated, folder, userID)
	h.cacheFolder(folder)

	c.JSON(http.StatusCreated, folder)
}

// Update renames a folder. Only the owner may, and a non-owner gets the
// same 404 as a missing folder.
func (h *FolderHandler) Update(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	folderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "ID inválido")
		return
	}

	var req struct {
		Nome string `json:"nome"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Nome) == "" {
		responses.Message(c, http.StatusBadRequest, "O nome é obrigatório")
		return
	}

	folder, err := h.ownedFolder(c, folderID, userID)
	if folder == nil {
		return
	}

	folder.Nome = strings.TrimSpace(req.Nome)
	if err := h.reg.Folders.Update(c.Request.Context(), folder); err != nil {
		logger.Log.Error().Err(err).Msg("folder update failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao atualizar pasta")
		return
	}

	h.publishAssetEvent(events.FolderUpdated, folder, userID)
	h.cacheFolder(folder)

	c.JSON(http.StatusOK, folder)
}

// Delete removes a folder and everything under it: notes, their
// attachments, shares and edit requests go in the same transaction.
func (h *FolderHandler) Delete(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	folderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "ID inválido")
		return
	}

	folder, err := h.ownedFolder(c, folderID, userID)
	if folder == nil {
		return
	}

	err = h.tx.Do(c.Request.Context(), func(reg repositories.Registry) error {
		if err := reg.Notes.DeleteByFolder(c.Request.Context(), folderID); err != nil {
			return err
		}
		if err := reg.Shares.DeleteByFolder(c.Request.Context(), folderID); err != nil {
			return err
		}
		if err := reg.EditRequests.DeleteByFolder(c.Request.Context(), folderID); err != nil {
			return err
		}
		return reg.Folders.Delete(c.Request.Context(), folderID)
	})
	if err != nil {
		logger.Log.Error().Err(err).Msg("folder cascade delete failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao eliminar pasta")
		return
	}

	h.publishAssetEvent(events.FolderDeleted, folder, userID)
	if h.cache != nil {
		if err := h.cache.InvalidateFolder(context.Background(), folderID); err != nil {
			logger.Log.Warn().Err(err).Msg("folder cache invalidation failed")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pasta eliminada com sucesso", "id": folderID})
}

// ListPublic returns all public folders, optionally filtered by a
// case-insensitive name search.
func (h *FolderHandler) ListPublic(c *gin.Context) {
	folders, err := h.reg.Folders.ListPublic(c.Request.Context(), c.Query("search"))
	if err != nil {
		logger.Log.Error().Err(err).Msg("listing public folders failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao listar pastas publicas")
		return
	}
	c.JSON(http.StatusOK, folders)
}

// Publish marks a folder public. Owner-only.
func (h *FolderHandler) Publish(c *gin.Context) {
	h.setPublic(c, true)
}

// Unpublish marks a folder private again. Owner-only.
func (h *FolderHandler) Unpublish(c *gin.Context) {
	h.setPublic(c, false)
}

func (h *FolderHandler) setPublic(c *gin.Context, public bool) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	folderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "ID inválido")
		return
	}

	folder, err := h.ownedFolder(c, folderID, userID)
	if folder == nil {
		return
	}

	folder.IsPublic = public
	if err := h.reg.Folders.Update(c.Request.Context(), folder); err != nil {
		logger.Log.Error().Err(err).Msg("folder publish toggle failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao publicar pasta")
		return
	}

	eventType := events.FolderPublished
	if !public {
		eventType = events.FolderUnpublished
	}
	h.publishAssetEvent(eventType, folder, userID)
	h.cacheFolder(folder)

	c.JSON(http.StatusOK, folder)
}

type folderWithPermission struct {
	models.Folder
	UserPermission access.Level `json:"userPermission"`
}

// Get returns the folder with the caller's computed permission. Private
// folders answer 403 to callers without any access.
func (h *FolderHandler) Get(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	folderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "ID inválido")
		return
	}

	folder := h.lookupFolder(c.Request.Context(), folderID)
	if folder == nil {
		responses.Message(c, http.StatusNotFound, "Pasta não encontrada")
		return
	}

	level, canRead, err := h.resolver.CanReadFolder(c.Request.Context(), folder, userID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("access resolution failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao obter pasta")
		return
	}
	if !canRead {
		responses.Message(c, http.StatusForbidden, "Acesso negado")
		return
	}

	c.JSON(http.StatusOK, folderWithPermission{Folder: *folder, UserPermission: level})
}

// lookupFolder reads through the metadata cache when one is wired.
func (h *FolderHandler) lookupFolder(ctx context.Context, folderID uuid.UUID) *models.Folder {
	if h.cache != nil {
		cached, err := h.cache.GetFolderMetadata(ctx, folderID)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("folder cache read failed")
		}
		if cached != nil {
			return cached
		}
	}

	folder, err := h.reg.Folders.GetByID(ctx, folderID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			logger.Log.Error().Err(err).Msg("folder lookup failed")
		}
		return nil
	}

	h.cacheFolder(folder)
	return folder
}

// ownedFolder resolves the folder and enforces ownership, writing the
// response on failure. Non-owners get the same answer as a missing id.
func (h *FolderHandler) ownedFolder(c *gin.Context, folderID, userID uuid.UUID) (*models.Folder, error) {
	folder, err := h.reg.Folders.GetByID(c.Request.Context(), folderID)
	if errors.Is(err, repositories.ErrNotFound) {
		responses.Message(c, http.StatusNotFound, "Pasta não encontrada ou sem permissão")
		return nil, err
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("folder lookup failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao obter pasta")
		return nil, err
	}
	if folder.OwnerID != userID {
		responses.Message(c, http.StatusNotFound, "Pasta não encontrada ou sem permissão")
		return nil, repositories.ErrNotFound
	}
	return folder, nil
}

func (h *FolderHandler) publishAssetEvent(eventType string, folder *models.Folder, actionBy uuid.UUID) {
	if h.producer == nil {
		return
	}
	event := events.NewAssetEvent(eventType, events.AssetTypeFolder, folder.ID, folder.OwnerID, actionBy)
	if err := h.producer.PublishAssetEvent(context.Background(), event); err != nil {
		logger.Log.Warn().Err(err).Str("eventType", eventType).Msg("asset event publish failed")
	}
}

func (h *FolderHandler) cacheFolder(folder *models.Folder) {
	if h.cache == nil {
		return
	}
	if err := h.cache.SetFolderMetadata(context.Background(), folder); err != nil {
		logger.Log.Warn().Err(err).Msg("folder cache write failed")
	}
}
