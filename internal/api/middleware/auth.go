package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/schoolbooks/internal/auth"
	"github.com/d60-Lab/schoolbooks/pkg/response"
)

// JWT 校验 Bearer token，把用户ID写入上下文
func JWT(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			// websocket 握手无法带自定义 Header，放行 query 参数
			token = c.Query("token")
		}
		if token == "" {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		userID, err := tokens.Parse(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}
