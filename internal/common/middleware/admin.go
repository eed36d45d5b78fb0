package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminOnly allows only the configured admin accounts past. It must run
// after TelegramInitData, which establishes the caller's identity.
func AdminOnly(adminIDs []int64) gin.HandlerFunc {
	allowed := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		allowed[id] = struct{}{}
	}
	return func(c *gin.Context) {
		user, ok := TelegramUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}
		if _, ok := allowed[user.ID]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Forbidden: admin access required"})
			return
		}
		c.Next()
	}
}
