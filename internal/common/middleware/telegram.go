package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"
)

const userContextKey = "telegram_user"

// TelegramInitData authenticates mini-app requests by validating the
// init_data header against the bot token. The webapp reads identity from
// Telegram itself, never from the bot conversation.
func TelegramInitData(botToken string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		initDataQuery := c.GetHeader("init_data")
		if initDataQuery == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized: Telegram Init Data required"})
			return
		}

		if err := initdata.Validate(initDataQuery, botToken, ttl); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": fmt.Sprintf("Invalid init data: %v", err)})
			return
		}

		parsedData, err := initdata.Parse(initDataQuery)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("Failed to parse init data: %v", err)})
			return
		}

		c.Set(userContextKey, parsedData.User)
		c.Next()
	}
}

// TelegramUser returns the authenticated mini-app user from the context.
func TelegramUser(c *gin.Context) (initdata.User, bool) {
	v, exists := c.Get(userContextKey)
	if !exists {
		return initdata.User{}, false
	}
	u, ok := v.(initdata.User)
	return u, ok
}
