package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Psedro/IPVCNotes-VF/internal/auth"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
	"github.com/Psedro/IPVCNotes-VF/pkg/logger"
	"github.com/Psedro/IPVCNotes-VF/pkg/responses"
)

// AuthMiddleware validates the Bearer token and resolves the caller to an
// existing user before letting the request through. The user id lands in
// the context under "user_id".
func AuthMiddleware(secret string, users repositories.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.Message(c, http.StatusUnauthorized, "Token em falta")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ValidateToken(tokenString, secret)
		if err != nil {
			logger.Log.Debug().Err(err).Msg("token validation failed")
			responses.Message(c, http.StatusUnauthorized, "Token inválido")
			c.Abort()
			return
		}

		// A token may outlive its account.
		if _, err := users.GetByID(c.Request.Context(), claims.UserID); err != nil {
			responses.Message(c, http.StatusUnauthorized, "Utilizador não encontrado")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
