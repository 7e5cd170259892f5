package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CurrentUserID pulls the authenticated user id set by the auth
// middleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
