package delivery

import (
	"net/http"
	"strings"

	authdomain "journaly-backend/internal/auth/domain"
	"journaly-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		token := parts[1]
		user, err := authUsecase.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user's ID set by AuthMiddleware.
func CurrentUserID(c *gin.Context) (string, bool) {
	user, exists := c.Get("user")
	if !exists {
		return "", false
	}
	userData, ok := user.(*authdomain.User)
	if !ok {
		return "", false
	}
	return userData.ID, true
}
