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
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
	"github.com/Psedro/IPVCNotes-VF/internal/services"
	"github.com/Psedro/IPVCNotes-VF/pkg/logger"
	"github.com/Psedro/IPVCNotes-VF/pkg/responses"
)

type EditRequestHandler struct {
	service  *services.EditRequestService
	producer *kafka.Producer
}

func NewEditRequestHandler(service *services.EditRequestService, producer *kafka.Producer) *EditRequestHandler {
	return &EditRequestHandler{service: service, producer: producer}
}

// Request files an edit request against a public folder.
func (h *EditRequestHandler) Request(c *gin.Context) {
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

	request, err := h.service.Request(c.Request.Context(), folderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			responses.Message(c, http.StatusNotFound, "Pasta não encontrada")
		case errors.Is(err, services.ErrFolderNotPublic):
			responses.Message(c, http.StatusForbidden, "A pasta não é pública")
		case errors.Is(err, services.ErrRequestPending):
			responses.Message(c, http.StatusBadRequest, "Pedido já pendente")
		default:
			logger.Log.Error().Err(err).Msg("edit request creation failed")
			responses.Message(c, http.StatusInternalServerError, "Erro ao criar pedido")
		}
		return
	}

	h.publishRequestEvent(events.EditRequestCreated, request)
	c.JSON(http.StatusCreated, request)
}

// Notifications lists the caller's pending requests as folder owner.
func (h *EditRequestHandler) Notifications(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	requests, err := h.service.Notifications(c.Request.Context(), userID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("listing notifications failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao listar notificações")
		return
	}

	c.JSON(http.StatusOK, requests)
}

// Respond accepts or rejects a pending request.
func (h *EditRequestHandler) Respond(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		responses.Message(c, http.StatusUnauthorized, "Não autenticado")
		return
	}

	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "ID inválido")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Message(c, http.StatusBadRequest, "Estado inválido")
		return
	}

	request, err := h.service.Respond(c.Request.Context(), requestID, userID, models.RequestStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			responses.Message(c, http.StatusBadRequest, "Estado inválido")
		case errors.Is(err, repositories.ErrNotFound):
			responses.Message(c, http.StatusNotFound, "Pedido não encontrado")
		case errors.Is(err, services.ErrRequestResolved):
			responses.Message(c, http.StatusConflict, "Pedido já resolvido")
		default:
			logger.Log.Error().Err(err).Msg("edit request response failed")
			responses.Message(c, http.StatusInternalServerError, "Erro ao responder ao pedido")
		}
		return
	}

	h.publishRequestEvent(events.EditRequestClosed, request)
	c.JSON(http.StatusOK, request)
}

func (h *EditRequestHandler) publishRequestEvent(eventType string, request *models.EditRequest) {
	if h.producer == nil {
		return
	}
	event := events.NewEditRequestEvent(eventType, request.FolderID, request.OwnerID, request.RequesterID, string(request.Status))
	if err := h.producer.PublishSharingEvent(context.Background(), event); err != nil {
		logger.Log.Warn().Err(err).Str("eventType", eventType).Msg("sharing event publish failed")
	}
}
