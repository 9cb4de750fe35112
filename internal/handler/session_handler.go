package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/model"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service"
)

// SessionHandler 会话摘要处理器（历史面板）
type SessionHandler struct {
	svc *service.Services
}

// NewSessionHandler 创建会话摘要处理器
func NewSessionHandler(svc *service.Services) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// ListSessions 列出当前用户的会话摘要
func (h *SessionHandler) ListSessions(c *gin.Context) {
	summaries, err := h.svc.Sessions.List(c.Request.Context(), getUserID(c))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"sessions": summaries})
}

// saveSessionBody 保存摘要请求体
type saveSessionBody struct {
	ID    string `json:"id" binding:"required"`
	Title string `json:"title"`
}

// SaveSession 写入或更新摘要
func (h *SessionHandler) SaveSession(c *gin.Context) {
	var body saveSessionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	summary := &model.ChatSummary{ID: body.ID, Title: body.Title}
	if err := h.svc.Sessions.Upsert(c.Request.Context(), getUserID(c), summary); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, summary)
}

// RemoveSession 删除摘要
func (h *SessionHandler) RemoveSession(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Sessions.Remove(c.Request.Context(), getUserID(c), id); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"removed": id})
}
