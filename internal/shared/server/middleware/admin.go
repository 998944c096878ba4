package middleware

import (
	"crypto/hmac"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-checker/internal/shared/auth"
	"ats-checker/internal/shared/server/respond"
)

const adminSubjectKey = "adminSubject"

// AdminAuth guards runtime configuration endpoints. Callers authenticate
// with either the X-API-Key header or a Bearer token carrying an admin role.
func AdminAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		if key := strings.TrimSpace(c.GetHeader("X-API-Key")); key != "" {
			if apiKey == "" || !hmac.Equal([]byte(key), []byte(apiKey)) {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid API key", nil)
				return
			}
			c.Set(adminSubjectKey, "api-key")
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing credentials", nil)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		claims, err := auth.VerifyJWT(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		if claims.Role != auth.RoleAdmin {
			respond.Error(c, http.StatusForbidden, "forbidden", "admin role required", nil)
			return
		}
		c.Set(adminSubjectKey, claims.Sub)
		c.Next()
	}
}

// AdminSubjectFromContext fetches the admin identity set by AdminAuth.
func AdminSubjectFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(adminSubjectKey)
	if sub, ok := val.(string); ok {
		return sub
	}
	return ""
}
