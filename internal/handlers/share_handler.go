package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Psedro/IPVCNotes-VF/internal/events"
	"github.com/Psedro/IPVCNotes-VF/internal/kafka"
	"github.com/Psedro/IPVCNotes-VF/internal/models"
	"github.com/Psedro/IPVCNotes-VF/internal/redis"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
	"github.com/Psedro/IPVCNotes-VF/internal/services"
	"github.com/Psedro/IPVCNotes-VF/pkg/logger"
	"github.com/Psedro/IPVCNotes-VF/pkg/responses"
)

type ShareHandler struct {
	service  *services.ShareService
	producer *kafka.Producer
	cache    *redis.Service
}

func NewShareHandler(service *services.ShareService, producer *kafka.Producer, cache *redis.Service) *ShareHandler {
	return &ShareHandler{service: service, producer: producer, cache: cache}
}

// List returns a folder's shares with user display fields resolved.
func (h *ShareHandler) List(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	folderID, err := uuid.Parse(c.Param("pastaId"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "ID inválido")
		return
	}

	shares, err := h.service.List(c.Request.Context(), folderID, userID)
	if err != nil {
		h.writeShareError(c, err, "Erro ao listar partilhas")
		return
	}

	c.JSON(http.StatusOK, shares)
}

// Create grants a user access to a folder.
func (h *ShareHandler) Create(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var req struct {
		PastaID      string `json:"pastaId"`
		UtilizadorID string `json:"utilizadorId"`
		PermissaoID  string `json:"permissaoId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PastaID == "" || req.UtilizadorID == "" || req.PermissaoID == "" {
		responses.Message(c, http.StatusBadRequest, "Campos incompletos")
		return
	}

	folderID, err1 := uuid.Parse(req.PastaID)
	targetID, err2 := uuid.Parse(req.UtilizadorID)
	permissionID, err3 := uuid.Parse(req.PermissaoID)
	if err1 != nil || err2 != nil || err3 != nil {
		responses.Message(c, http.StatusBadRequest, "IDs inválidos")
		return
	}

	share, err := h.service.Create(c.Request.Context(), userID, folderID, targetID, permissionID)
	if err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			responses.Message(c, http.StatusConflict, "Partilha já existe (pastaId + utilizadorId)")
			return
		}
		h.writeShareError(c, err, "Erro ao criar partilha")
		return
	}

	h.afterShareChange(events.FolderShared, share, userID, true)
	c.JSON(http.StatusCreated, share)
}

// Update changes a share's permission in place.
func (h *ShareHandler) Update(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	shareID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "ID inválido")
		return
	}

	var req struct {
		PermissaoID string `json:"permissaoId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PermissaoID == "" {
		responses.Message(c, http.StatusBadRequest, "permissaoId inválido")
		return
	}
	permissionID, err := uuid.Parse(req.PermissaoID)
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "permissaoId inválido")
		return
	}

	share, err := h.service.UpdatePermission(c.Request.Context(), userID, shareID, permissionID)
	if err != nil {
		h.writeShareError(c, err, "Erro ao atualizar partilha")
		return
	}

	h.afterShareChange(events.ShareUpdated, share, userID, true)
	c.JSON(http.StatusOK, share)
}

// Delete revokes a share.
func (h *ShareHandler) Delete(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	shareID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "ID inválido")
		return
	}

	share, err := h.service.Delete(c.Request.Context(), userID, shareID)
	if err != nil {
		h.writeShareError(c, err, "Erro ao eliminar partilha")
		return
	}

	h.afterShareChange(events.FolderUnshared, share, userID, false)
	c.JSON(http.StatusOK, gin.H{"message": "Partilha eliminada com sucesso", "id": share.ID})
}

func (h *ShareHandler) writeShareError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotOwner):
		responses.Message(c, http.StatusForbidden, "Sem permissão")
	case errors.Is(err, repositories.ErrNotFound):
		responses.Message(c, http.StatusNotFound, "Partilha não encontrada")
	default:
		logger.Log.Error().Err(err).Msg("share operation failed")
		responses.Message(c, http.StatusInternalServerError, fallback)
	}
}

// afterShareChange emits the sharing event and keeps the ACL cache in
// step with the mutation. Both are best-effort.
func (h *ShareHandler) afterShareChange(eventType string, share *models.FolderShare, actionBy uuid.UUID, granted bool) {
	if h.producer != nil {
		level := string(h.service.ShareLevel(context.Background(), share))
		event := events.NewSharingEvent(eventType, share.FolderID, actionBy, actionBy, share.UserID, level)
		if err := h.producer.PublishSharingEvent(context.Background(), event); err != nil {
			logger.Log.Warn().Err(err).Str("eventType", eventType).Msg("sharing event publish failed")
		}
	}

	if h.cache != nil {
		var err error
		if granted {
			level := string(h.service.ShareLevel(context.Background(), share))
			err = h.cache.AddFolderAccess(context.Background(), share.FolderID, share.UserID, level)
		} else {
			err = h.cache.RemoveFolderAccess(context.Background(), share.FolderID, share.UserID)
		}
		if err != nil {
			logger.Log.Warn().Err(err).Msg("folder ACL cache update failed")
		}
	}
}
