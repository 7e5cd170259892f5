package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Psedro/IPVCNotes-VF/internal/auth"
	"github.com/Psedro/IPVCNotes-VF/internal/models"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
	"github.com/Psedro/IPVCNotes-VF/pkg/logger"
	"github.com/Psedro/IPVCNotes-VF/pkg/responses"
)

type AuthHandler struct {
	users       repositories.Users
	tokenSecret string
}

func NewAuthHandler(users repositories.Users, tokenSecret string) *AuthHandler {
	return &AuthHandler{users: users, tokenSecret: tokenSecret}
}

// Register creates an account and answers with the public profile.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Nome     string `json:"nome"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Nome == "" || req.Email == "" || req.Password == "" {
		responses.Message(c, http.StatusBadRequest, "Campos incompletos")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Log.Error().Err(err).Msg("password hashing failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao registar utilizador")
		return
	}

	user := &models.User{Nome: req.Nome, Email: req.Email, PasswordHash: hash}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			responses.Message(c, http.StatusBadRequest, "Email já registado")
			return
		}
		logger.Log.Error().Err(err).Msg("user creation failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao registar utilizador")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID,
		"nome":  user.Nome,
		"email": user.Email,
	})
}

// Login checks credentials and issues a week-long token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Message(c, http.StatusBadRequest, "Campos incompletos")
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// Same answer for unknown email and wrong password.
		responses.Message(c, http.StatusBadRequest, "Credenciais inválidas")
		return
	}
	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		responses.Message(c, http.StatusBadRequest, "Credenciais inválidas")
		return
	}

	token, err := auth.GenerateToken(user.ID, h.tokenSecret, auth.TokenTTL)
	if err != nil {
		logger.Log.Error().Err(err).Msg("token generation failed")
		responses.Message(c, http.StatusInternalServerError, "Erro ao autenticar")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"nome":  user.Nome,
			"email": user.Email,
		},
	})
}

// FindByEmail resolves another account's public profile, used by the
// share dialog.
func (h *AuthHandler) FindByEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Message(c, http.StatusBadRequest, "Campos incompletos")
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			responses.Message(c, http.StatusNotFound, "Utilizador não encontrado")
			return
		}
		responses.Message(c, http.StatusInternalServerError, "Erro ao procurar utilizador")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"nome":  user.Nome,
		"email": user.Email,
	})
}
