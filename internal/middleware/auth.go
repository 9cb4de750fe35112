package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/config"
)

// AuthMiddleware 认证中间件
// 如果提供了有效的 JWT token，则使用其中的用户身份；否则生成临时用户ID。
// 原始 Bearer token 始终存入上下文，供后端客户端按请求转发
func AuthMiddleware(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 尝试从 Authorization 获取 Bearer Token
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			c.Set("session_token", token)

			claims, err := parseToken(token, cfg.JWTSecret)
			if err == nil {
				if sub, _ := claims.GetSubject(); sub != "" {
					c.Set("user_id", sub)
				}
				if orgID, ok := claims["org_id"].(string); ok && orgID != "" {
					c.Set("org_id", orgID)
				}
				if _, exists := c.Get("user_id"); exists {
					c.Next()
					return
				}
			}
			// Token 无效，继续尝试其他方式
		}

		// 从 Header 获取用户ID（兼容旧版）
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			// 生成临时用户ID
			userID = uuid.New().String()
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// parseToken 校验 HMAC 签名的 JWT 并返回 claims
func parseToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// RequireAuth 要求有效认证的中间件
// 必须提供有效的 JWT token，否则返回 401
func RequireAuth(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{
				"code":    -1,
				"message": "Missing Authorization header",
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(401, gin.H{
				"code":    -1,
				"message": "Invalid Authorization header format",
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := parseToken(token, cfg.JWTSecret)
		if err != nil {
			c.JSON(401, gin.H{
				"code":    -1,
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("session_token", token)
		if sub, _ := claims.GetSubject(); sub != "" {
			c.Set("user_id", sub)
		}
		if orgID, ok := claims["org_id"].(string); ok && orgID != "" {
			c.Set("org_id", orgID)
		}
		c.Next()
	}
}

// GetUserID 从上下文获取当前用户ID
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}

// GetOrgID 从上下文获取当前组织ID
func GetOrgID(c *gin.Context) string {
	if orgID, exists := c.Get("org_id"); exists {
		if id, ok := orgID.(string); ok {
			return id
		}
	}
	return ""
}
