package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, repositories.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := repositories.NewMemory().Registry()
	h := NewAuthHandler(reg.Users, "test-secret")

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/find-by-email", h.FindByEmail)
	return r, reg
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"nome":     "Ana",
		"email":    "ana@example.com",
		"password": "secreta123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotContains(t, w.Body.String(), "secreta123")

	w = postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "secreta123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
		User  struct {
			Nome string `json:"nome"`
		} `json:"user"`
	}
	decodeBody(t, w, &body)
	require.NotEmpty(t, body.Token)
	require.Equal(t, "Ana", body.User.Nome)
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/auth/register", map[string]string{"email": "ana@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	payload := map[string]string{"nome": "Ana", "email": "ana@example.com", "password": "secreta123"}
	w := postJSON(t, r, "/api/auth/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/register", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Email já registado")
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"nome": "Ana", "email": "ana@example.com", "password": "secreta123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Wrong password and unknown email answer identically.
	w = postJSON(t, r, "/api/auth/login", map[string]string{"email": "ana@example.com", "password": "errada"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w2 := postJSON(t, r, "/api/auth/login", map[string]string{"email": "ninguem@example.com", "password": "errada"})
	require.Equal(t, http.StatusBadRequest, w2.Code)
	require.Equal(t, w.Body.String(), w2.Body.String())
}

func TestFindByEmail(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"nome": "Ana", "email": "ana@example.com", "password": "secreta123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/find-by-email", map[string]string{"email": "ana@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Ana")
	require.NotContains(t, w.Body.String(), "passwordHash")

	w = postJSON(t, r, "/api/auth/find-by-email", map[string]string{"email": "ninguem@example.com"})
	require.Equal(t, http.StatusNotFound, w.Code)
}
