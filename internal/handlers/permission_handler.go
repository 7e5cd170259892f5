package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Psedro/IPVCNotes-VF/internal/models"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
	"github.com/Psedro/IPVCNotes-VF/internal/services"
	"github.com/Psedro/IPVCNotes-VF/pkg/logger"
	"github.com/Psedro/IPVCNotes-VF/pkg/responses"
)

type PermissionHandler struct {
	permissions repositories.Permissions
}

func NewPermissionHandler(permissions repositories.Permissions) *PermissionHandler {
	return &PermissionHandler{permissions: permissions}
}

// List returns the whole permission catalog.
func (h *PermissionHandler) List(c *gin.Context) {
	permissions, err := h.permissions.List(c.Request.Context())
	if err != nil {
		logger.Log.Error().Err(err).Msg("listing permissions failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao listar permissões")
		return
	}
	c.JSON(http.StatusOK, permissions)
}

// Create adds a catalog entry. Names are normalized to lowercase so
// "EDITOR" and "editor" collapse into one row.
func (h *PermissionHandler) Create(c *gin.Context) {
	var req struct {
		Permissao string `json:"permissao"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Permissao == "" {
		responses.Message(c, http.StatusBadRequest, "A permissão é obrigatória")
		return
	}

	name := services.NormalizePermissionName(req.Permissao)
	if name == "" {
		responses.Message(c, http.StatusBadRequest, "A permissão é obrigatória")
		return
	}

	permission := &models.Permission{Nome: name}
	if err := h.permissions.Create(c.Request.Context(), permission); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			responses.Message(c, http.StatusConflict, "Essa permissão já existe")
			return
		}
		logger.Log.Error().Err(err).Msg("permission creation failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao criar permissão")
		return
	}

	c.JSON(http.StatusCreated, permission)
}

// Delete removes a catalog entry. Shares referencing it keep their row
// but resolve to no permission from then on.
func (h *PermissionHandler) Delete(c *gin.Context) {
	permissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "ID inválido")
		return
	}

	if err := h.permissions.Delete(c.Request.Context(), permissionID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			responses.Message(c, http.StatusNotFound, "Permissão não encontrada")
			return
		}
		logger.Log.Error().Err(err).Msg("permission delete failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao eliminar permissão")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Permissão eliminada com sucesso", "id": permissionID})
}
