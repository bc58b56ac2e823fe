package utils

import "github.com/gin-gonic/gin"

// Message writes the {"message": ...} body used by the JSON endpoints.
func Message(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"message": message})
}
