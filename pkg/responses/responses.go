package responses

import "github.com/gin-gonic/gin"

// Message answers with the {"message": ...} envelope the frontend expects
// for errors and confirmations.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// JSON answers with the payload as-is.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}
