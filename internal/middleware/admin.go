package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminOnly permits the request only when the authenticated identity carries
// an elevated role. Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required (Auth must run first)",
			})
			return
		}
		if !claims.Role.IsElevated() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin resources access denied",
			})
			return
		}
		c.Next()
	}
}
