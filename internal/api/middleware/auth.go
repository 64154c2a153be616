package middleware

import (
	"Airwave/internal/pkg/consts"
	"Airwave/internal/pkg/redis"
	"Airwave/internal/pkg/response"
	"Airwave/internal/pkg/security"
	"Airwave/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, service.Unauthorized, "missing or malformed token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, service.Unauthorized, "missing or malformed token")
			c.Abort()
			return
		}

		// 已注销的 Token 直接拒绝
		value, err := redis.GetValue(c.Request.Context(), consts.TokenDenyPrefix+signature)
		if err != nil {
			response.Fail(c, service.InternalServerError, "unexpected error")
			c.Abort()
			return
		}
		if value != "" {
			response.Fail(c, service.Unauthorized, "token invalid or expired")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, service.Unauthorized, "token invalid or expired")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("roles", claims.Roles)
		c.Set("token", tokenString)

		c.Next()
	}
}
