package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/backend"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/completion"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/polling"
)

// Response 统一响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// success 成功响应
func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

// created 创建成功响应
func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "created", Data: data})
}

// badRequest 请求体校验失败响应
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{Code: -1, Message: err.Error()})
}

// errorResponse 通用错误响应
func errorResponse(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Response{Code: -1, Message: err.Error()})
}

// chatErrorResponse 聊天链路的错误映射
// AI 生成失败与普通失败区分开：前者表示会话和用户消息可能已持久化，
// 客户端不应回滚已展示的用户消息
func chatErrorResponse(c *gin.Context, err error) {
	if errors.Is(err, backend.ErrAIGeneration) {
		c.JSON(http.StatusBadGateway, Response{Code: -1, Message: "AI reply generation failed"})
		return
	}
	if errors.Is(err, polling.ErrTimeout) {
		c.JSON(http.StatusGatewayTimeout, Response{Code: -1, Message: "Timed out waiting for AI reply"})
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, Response{Code: -1, Message: apiErr.Message})
		return
	}

	errorResponse(c, err)
}

// aiErrorResponse AI 补全链路的错误映射
// 缺少 API key 算配置错误（500）；429 单独透出让客户端提示稍后重试；
// 其余上游状态原样透传
func aiErrorResponse(c *gin.Context, err error) {
	if errors.Is(err, completion.ErrMissingAPIKey) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI service is not configured"})
		return
	}

	var upstream *completion.UpstreamError
	if errors.As(err, &upstream) {
		if upstream.RateLimited {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded. Please try again later.",
				"details": upstream.Message,
			})
			return
		}
		c.JSON(upstream.Status, gin.H{
			"error":   "AI generation failed",
			"details": upstream.Message,
		})
		return
	}

	if errors.Is(err, completion.ErrEmptyCompletion) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "AI generation failed",
			"details": "the AI service returned an empty response",
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// getUserID 获取用户ID
func getUserID(c *gin.Context) string {
	if id, exists := c.Get("user_id"); exists {
		if userID, ok := id.(string); ok {
			return userID
		}
	}
	return ""
}

// requestContext 构建下游调用的上下文
// 把中间件解析出的会话令牌带上，后端客户端逐次调用时优先使用它
func requestContext(c *gin.Context) (ctx context.Context) {
	ctx = c.Request.Context()
	if token, exists := c.Get("session_token"); exists {
		if t, ok := token.(string); ok && t != "" {
			ctx = backend.WithSessionToken(ctx, t)
		}
	}
	return ctx
}
