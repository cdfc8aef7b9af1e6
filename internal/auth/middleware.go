package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// EditMiddleware guards mutating routes. Reads stay open; anything that
// writes requires a valid edit capability token.
func EditMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c.Request)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		if err := ParseEditToken(token, jwtSecret); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
