package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends the service's success envelope. Every auction and bid
// endpoint responds with the same {status, message, data} shape so clients
// parse one format.
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends the error envelope. The message carries the mapped,
// client-facing text; the error field keeps the wrapped detail.
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}
