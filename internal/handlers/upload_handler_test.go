package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Psedro/IPVCNotes-VF/internal/storage"
)

func newUploadRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewDiskStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/upload", NewUploadHandler(store).Upload)
	return r
}

func TestUploadStoresFile(t *testing.T) {
	r := newUploadRouter(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "relatorio.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 conteudo"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		URL  string `json:"url"`
		Nome string `json:"nome"`
		Size int64  `json:"size"`
	}
	decodeBody(t, w, &body)
	require.Equal(t, "relatorio.pdf", body.Nome)
	require.Contains(t, body.URL, "/uploads/")
	require.Equal(t, int64(len("%PDF-1.4 conteudo")), body.Size)
}

func TestUploadMissingFile(t *testing.T) {
	r := newUploadRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Nenhum ficheiro enviado")
}
