package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Psedro/IPVCNotes-VF/internal/access"
	"github.com/Psedro/IPVCNotes-VF/internal/events"
	"github.com/Psedro/IPVCNotes-VF/internal/kafka"
	"github.com/Psedro/IPVCNotes-VF/internal/models"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
	"github.com/Psedro/IPVCNotes-VF/pkg/logger"
	"github.com/Psedro/IPVCNotes-VF/pkg/responses"
)

type NoteHandler struct {
	notes    repositories.Notes
	folders  repositories.Folders
	resolver *access.Resolver
	producer *kafka.Producer
}

func NewNoteHandler(notes repositories.Notes, folders repositories.Folders, resolver *access.Resolver, producer *kafka.Producer) *NoteHandler {
	return &NoteHandler{
		notes:    notes,
		folders:  folders,
		resolver: resolver,
		producer: producer,
	}
}

// ListByFolder returns a folder's notes, most recently updated first.
// The caller needs read access to the folder.
func (h *NoteHandler) ListByFolder(c *gin.Context) {
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

	folder, err := h.folders.GetByID(c.Request.Context(), folderID)
	if errors.Is(err, repositories.ErrNotFound) {
		responses.Message(c, http.StatusNotFound, "Pasta não encontrada")
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("folder lookup failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao listar notas")
		return
	}

	_, canRead, err := h.resolver.CanReadFolder(c.Request.Context(), folder, userID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("access resolution failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao listar notas")
		return
	}
	if !canRead {
		responses.Message(c, http.StatusForbidden, "Sem permissão nesta pasta")
		return
	}

	notes, err := h.notes.ListByFolder(c.Request.Context(), folderID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("listing notes failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao listar notas")
		return
	}

	c.JSON(http.StatusOK, notes)
}

// Get returns one note. Access follows the folder; the creator keeps
// access even when the folder is gone.
func (h *NoteHandler) Get(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "ID inválido")
		return
	}

	note, err := h.notes.GetByID(c.Request.Context(), noteID)
	if errors.Is(err, repositories.ErrNotFound) {
		responses.Message(c, http.StatusNotFound, "Nota não encontrada")
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("note lookup failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao obter nota")
		return
	}

	folder := h.noteFolder(c.Request.Context(), note)
	canRead, err := h.resolver.CanReadNote(c.Request.Context(), note, folder, userID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("access resolution failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao obter nota")
		return
	}
	if !canRead {
		responses.Message(c, http.StatusForbidden, "Sem permissão")
		return
	}

	c.JSON(http.StatusOK, note)
}

// Create adds a note to a folder, recording the caller as creator.
func (h *NoteHandler) Create(c *gin.Context) {
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

	var req struct {
		Titulo   string `json:"titulo"`
		Conteudo string `json:"conteudo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Titulo) == "" {
		responses.Message(c, http.StatusBadRequest, "O título é obrigatório")
		return
	}

	folder, err := h.folders.GetByID(c.Request.Context(), folderID)
	if errors.Is(err, repositories.ErrNotFound) {
		responses.Message(c, http.StatusNotFound, "Pasta não encontrada")
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("folder lookup failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao criar nota")
		return
	}

	canWrite, err := h.resolver.CanWriteNotes(c.Request.Context(), folder, userID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("access resolution failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao criar nota")
		return
	}
	if !canWrite {
		responses.Message(c, http.StatusForbidden, "Sem permissão para editar")
		return
	}

	note := &models.Note{
		FolderID: folderID,
		OwnerID:  userID,
		Titulo:   strings.TrimSpace(req.Titulo),
		Conteudo: req.Conteudo,
	}
	if err := h.notes.Create(c.Request.Context(), note); err != nil {
		logger.Log.Error().Err(err).Msg("note creation failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao criar nota")
		return
	}

	h.publishNoteEvent(events.NoteCreated, note, userID)
	c.JSON(http.StatusCreated, note)
}

// Update rewrites a note's title, content and attachment list. Anexos
// are replaced wholesale when present in the payload.
func (h *NoteHandler) Update(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "ID inválido")
		return
	}

	var req struct {
		Titulo   string              `json:"titulo"`
		Conteudo string              `json:"conteudo"`
		Anexos   []models.Attachment `json:"anexos"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Titulo) == "" {
		responses.Message(c, http.StatusBadRequest, "O título é obrigatório")
		return
	}

	note, err := h.notes.GetByID(c.Request.Context(), noteID)
	if errors.Is(err, repositories.ErrNotFound) {
		responses.Message(c, http.StatusNotFound, "Nota não encontrada")
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("note lookup failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao atualizar nota")
		return
	}

	folder, err := h.folders.GetByID(c.Request.Context(), note.FolderID)
	if errors.Is(err, repositories.ErrNotFound) {
		responses.Message(c, http.StatusNotFound, "Pasta não encontrada")
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("folder lookup failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao atualizar nota")
		return
	}

	canEdit, err := h.resolver.CanEditNote(c.Request.Context(), note, folder, userID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("access resolution failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao atualizar nota")
		return
	}
	if !canEdit {
		responses.Message(c, http.StatusForbidden, "Sem permissão para editar")
		return
	}

	note.Titulo = strings.TrimSpace(req.Titulo)
	note.Conteudo = req.Conteudo
	if err := h.notes.Update(c.Request.Context(), note); err != nil {
		logger.Log.Error().Err(err).Msg("note update failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao atualizar nota")
		return
	}

	if req.Anexos != nil {
		if err := h.notes.ReplaceAttachments(c.Request.Context(), note.ID, req.Anexos); err != nil {
			logger.Log.Error().Err(err).Msg("attachment replace failed")
			responses.Message(c, http.StatusInternalServerError, "Erro ao atualizar nota")
			return
		}
	}

	updated, err := h.notes.GetByID(c.Request.Context(), note.ID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("note reload failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao atualizar nota")
		return
	}

	h.publishNoteEvent(events.NoteUpdated, updated, userID)
	c.JSON(http.StatusOK, updated)
}

// Delete removes a note. Only the creator or the folder owner may.
func (h *NoteHandler) Delete(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "ID inválido")
		return
	}

	note, err := h.notes.GetByID(c.Request.Context(), noteID)
	if errors.Is(err, repositories.ErrNotFound) {
		responses.Message(c, http.StatusNotFound, "Nota não encontrada")
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("note lookup failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao eliminar nota")
		return
	}

	folder := h.noteFolder(c.Request.Context(), note)
	if !access.CanDeleteNote(note, folder, userID) {
		responses.Message(c, http.StatusForbidden, "Sem permissão para eliminar esta nota")
		return
	}

	if err := h.notes.Delete(c.Request.Context(), noteID); err != nil {
		logger.Log.Error().Err(err).Msg("note delete failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao eliminar nota")
		return
	}

	h.publishNoteEvent(events.NoteDeleted, note, userID)
	c.JSON(http.StatusOK, gin.H{"message": "Nota eliminada com sucesso"})
}

// noteFolder resolves the note's folder, tolerating a missing one.
func (h *NoteHandler) noteFolder(ctx context.Context, note *models.Note) *models.Folder {
	folder, err := h.folders.GetByID(ctx, note.FolderID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			logger.Log.Error().Err(err).Msg("folder lookup failed")
		}
		return nil
	}
	return folder
}

func (h *NoteHandler) publishNoteEvent(eventType string, note *models.Note, actionBy uuid.UUID) {
	if h.producer == nil {
		return
	}
	event := events.NewAssetEvent(eventType, events.AssetTypeNote, note.ID, note.OwnerID, actionBy)
	if err := h.producer.PublishAssetEvent(context.Background(), event); err != nil {
		logger.Log.Warn().Err(err).Str("eventType", eventType).Msg("asset event publish failed")
	}
}
