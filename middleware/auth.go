package middleware

import (
	"strings"

	"github.com/hassanjrao/translation-management/helper"
	"github.com/hassanjrao/translation-management/services"

	"github.com/gin-gonic/gin"
)

var httpHelper = &helper.HTTPHelper{}

// AuthMiddleware authenticates requests with an opaque bearer token.
// Missing, malformed and unknown tokens all get the same 401 body.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpHelper.SendUnauthorizedError(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			httpHelper.SendUnauthorizedError(c)
			c.Abort()
			return
		}

		user, err := authService.ValidateToken(tokenString)
		if err != nil {
			httpHelper.SendUnauthorizedError(c)
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("bearer_token", tokenString)

		c.Next()
	}
}
