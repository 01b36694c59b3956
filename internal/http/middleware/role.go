package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireSysAdmin gates the system resources to active administrators.
// Auth must run earlier in the chain.
func RequireSysAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if SessionUserID(c) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": http.StatusUnauthorized, "message": "authentication required"},
			})
			return
		}
		if !SessionIsSysAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"code": http.StatusForbidden, "message": "administrator access required"},
			})
			return
		}
		c.Next()
	}
}
