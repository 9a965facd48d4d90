package server

import (
	"time"

	"github.com/gin-gonic/gin"

	handler "github.com/notionstudy21-cmd/AuctionHub/services/auction/handler"
	"github.com/notionstudy21-cmd/AuctionHub/utils"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// IdentityMiddleware lifts the authenticated user id out of the X-User-ID
// header. The gateway in front of this service verifies the token and
// forwards the id; handlers that need an identity reject requests where
// the header was absent.
func IdentityMiddleware(c *gin.Context) {
	if userID := c.GetHeader("X-User-ID"); userID != "" {
		c.Set(handler.UserIDKey, userID)
	}
	c.Next()
}
