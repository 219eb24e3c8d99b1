package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reviewhub/reviewhub/internal/models"
	"github.com/reviewhub/reviewhub/internal/utils"
	"github.com/reviewhub/reviewhub/pkg/response"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthRequired resolves the caller's identity from the bearer token and puts
// it into the request context. The three failure causes map to distinct
// machine codes: missing or malformed header, expired token, and
// structurally invalid token.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, response.NewUnauthenticated("authorization header required"))
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Error(c, response.NewUnauthenticated("invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1], utils.TokenKindAccess)
		if err != nil {
			if err == utils.ErrTokenExpired {
				response.Error(c, response.NewTokenExpired("token expired"))
			} else {
				response.Error(c, response.NewTokenInvalid("invalid token"))
			}
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, models.GlobalRole(claims.Role))

		c.Next()
	}
}

// RoleRequired gates a route on the caller's account-level role. Project-role
// checks need a membership lookup and live in the services instead.
func RoleRequired(allowed ...models.GlobalRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}
		response.Error(c, response.NewForbidden("insufficient role"))
		c.Abort()
	}
}

// GetUserID gets the current user ID from context.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetEmail gets the current user email from context.
func GetEmail(c *gin.Context) string {
	if email, exists := c.Get(ContextEmail); exists {
		return email.(string)
	}
	return ""
}

// GetRole gets the current user's account-level role from context.
func GetRole(c *gin.Context) models.GlobalRole {
	if role, exists := c.Get(ContextRole); exists {
		return role.(models.GlobalRole)
	}
	return ""
}
