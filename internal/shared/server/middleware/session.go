package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const sessionIDKey = "sessionId"

// SessionID stores the caller's Session-Id header in context when present.
// Session-scoped provider overrides and request logs key off this value.
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader("Session-Id")); id != "" {
			c.Set(sessionIDKey, id)
		}
		c.Next()
	}
}

// SessionIDFromContext fetches the session ID set by SessionID middleware.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
