package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/handler"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/middleware"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.AuthMiddleware(&svc.Config.Auth))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Chat 聊天
		chats := v1.Group("/chats")
		{
			chats.POST("", h.Chat.CreateChat)
			chats.GET("/:id", h.Chat.GetChat)
			chats.POST("/:id/messages", h.Chat.SendMessage)
			chats.GET("/:id/reply", h.Chat.AwaitReply)
		}

		// Session 会话摘要（历史面板）
		sessions := v1.Group("/sessions")
		{
			sessions.GET("", h.Session.ListSessions)
			sessions.PUT("", h.Session.SaveSession)
			sessions.DELETE("/:id", h.Session.RemoveSession)
		}

		// AI 生成与文本辅助
		ai := v1.Group("/ai")
		{
			ai.POST("/generate-document", h.Generate.GenerateDocument)
			ai.POST("/enhance", h.Suggest.Enhance)
			ai.POST("/suggestions", h.Suggest.Suggestions)
			ai.POST("/ticket-suggestions", h.Suggest.TicketSuggestions)
			ai.POST("/summarize", h.Suggest.Summarize)
		}
	}

	return r
}
