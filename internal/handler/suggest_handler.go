package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/model"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service"
)

// SuggestHandler 文本辅助处理器
type SuggestHandler struct {
	svc *service.Services
}

// NewSuggestHandler 创建文本辅助处理器
func NewSuggestHandler(svc *service.Services) *SuggestHandler {
	return &SuggestHandler{svc: svc}
}

// enhanceBody 文本增强请求体
type enhanceBody struct {
	Text string `json:"text" binding:"required"`
}

// Enhance 返回 3 个改写
func (h *SuggestHandler) Enhance(c *gin.Context) {
	var body enhanceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	suggestions, err := h.svc.Suggest.Enhance(c.Request.Context(), body.Text)
	if err != nil {
		aiErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// suggestionsBody 回复建议请求体
type suggestionsBody struct {
	Messages []*model.ChatMessage `json:"messages" binding:"required"`
}

// Suggestions 基于对话返回 3 个回复选项
func (h *SuggestHandler) Suggestions(c *gin.Context) {
	var body suggestionsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	suggestions, err := h.svc.Suggest.ReplySuggestions(c.Request.Context(), body.Messages)
	if err != nil {
		aiErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// ticketSuggestionsBody 工单回复建议请求体
type ticketSuggestionsBody struct {
	TicketContext string `json:"ticketContext" binding:"required"`
	Locale        string `json:"locale"`
}

// TicketSuggestions 基于工单上下文返回 4 个回复选项，按 locale 的语言生成
func (h *SuggestHandler) TicketSuggestions(c *gin.Context) {
	var body ticketSuggestionsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	suggestions, err := h.svc.Suggest.TicketReplySuggestions(c.Request.Context(), body.TicketContext, body.Locale)
	if err != nil {
		aiErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// summarizeBody 总结请求体
// current 与 refinementRequest 同时非空时为修订模式
type summarizeBody struct {
	Messages          []*model.ChatMessage `json:"messages"`
	Current           string               `json:"current"`
	RefinementRequest string               `json:"refinementRequest"`
}

// Summarize 总结对话或修订已有总结
func (h *SuggestHandler) Summarize(c *gin.Context) {
	var body summarizeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var summary string
	var err error
	if body.Current != "" && body.RefinementRequest != "" {
		summary, err = h.svc.Suggest.RefineSummary(c.Request.Context(), body.Current, body.RefinementRequest)
	} else {
		if len(body.Messages) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "messages are required"})
			return
		}
		summary, err = h.svc.Suggest.Summarize(c.Request.Context(), body.Messages)
	}
	if err != nil {
		aiErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
