package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Psedro/IPVCNotes-VF/internal/storage"
	"github.com/Psedro/IPVCNotes-VF/pkg/logger"
	"github.com/Psedro/IPVCNotes-VF/pkg/responses"
)

type UploadHandler struct {
	store storage.BlobStore
}

func NewUploadHandler(store storage.BlobStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload accepts a multipart "file" field and answers with the stored
// blob's URL plus the metadata the frontend keeps on the note.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "Nenhum ficheiro enviado")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Log.Error().Err(err).Msg("opening upload failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao fazer upload")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.store.Save(c.Request.Context(), fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		logger.Log.Error().Err(err).Msg("storing upload failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao fazer upload")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":  url,
		"nome": fileHeader.Filename,
		"tipo": contentType,
		"size": fileHeader.Size,
	})
}
