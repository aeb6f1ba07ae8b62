package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/pkg/jwt"
	"github.com/MidhunThomas45/LMSv2024Project/internal/pkg/response"
)

const (
	UserIDKey = "userID"
	RoleKey   = "role"
)

// Auth JWT 认证中间件，角色随 token 一起写入上下文
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AuthError(c, "请提供认证信息")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			response.AuthError(c, "认证格式错误")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err != nil {
			response.AuthError(c, "认证失败或已过期")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// RequireLibrarian 馆员专属接口，角色来自 token，不再查库
func RequireLibrarian() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != model.RoleLibrarian {
			response.PermissionError(c, "需要图书管理员权限")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStudent 学生专属接口（订阅、租借、购买）
func RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != model.RoleStudent {
			response.PermissionError(c, "该操作仅对学生开放")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(int64)
	return id, ok
}

// GetRole 从上下文获取角色，未认证时返回空串
func GetRole(c *gin.Context) string {
	role, exists := c.Get(RoleKey)
	if !exists {
		return ""
	}
	r, _ := role.(string)
	return r
}
