package middlewares

import (
	"net/http"
	"strings"

	"foodcart/utils"

	"github.com/gin-gonic/gin"
)

// ใช้ตรวจ token แล้วเก็บ userId ไว้ใน context
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
			return
		}

		userID, err := utils.ParseToken(strings.TrimPrefix(h, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		utils.SetCurrentUserID(c, userID)
		c.Next()
	}
}
