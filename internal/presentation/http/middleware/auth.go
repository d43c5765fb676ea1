package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/response"
	"github.com/agriconnect/agriconnect-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles.
// Admins pass every role gate.
func RequireRole(roles ...enum.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("user_role")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		role, ok := roleValue.(enum.Role)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		if role == enum.RoleAdmin {
			c.Next()
			return
		}

		for _, required := range roles {
			if role == required {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}
