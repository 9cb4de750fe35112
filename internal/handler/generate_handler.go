package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/generate"
)

// GenerateHandler 文档生成处理器
type GenerateHandler struct {
	svc *service.Services
}

// NewGenerateHandler 创建文档生成处理器
func NewGenerateHandler(svc *service.Services) *GenerateHandler {
	return &GenerateHandler{svc: svc}
}

// GenerateDocument 生成或改稿
// currentDoc 与 refinementRequest 同时非空时为改稿模式，否则为初次生成；
// 成功返回 {"document": ...}，失败返回 {"error", "details"}
func (h *GenerateHandler) GenerateDocument(c *gin.Context) {
	var req generate.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	mode, err := generate.Resolve(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	document, err := h.svc.Generate.GenerateDocument(c.Request.Context(), mode)
	if err != nil {
		aiErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": document})
}
