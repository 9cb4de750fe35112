package handler

import (
	"io"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/backend"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/chat"
)

// ChatHandler 聊天处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建聊天处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// CreateChat 创建会话
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req chat.StartChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	chatRecord, err := h.svc.Chat.StartChat(requestContext(c), getUserID(c), &req)
	if err != nil {
		chatErrorResponse(c, err)
		return
	}

	created(c, chatRecord)
}

// GetChat 获取会话消息历史
func (h *ChatHandler) GetChat(c *gin.Context) {
	id := c.Param("id")

	chatRecord, err := h.svc.Chat.GetChat(requestContext(c), id)
	if err != nil {
		chatErrorResponse(c, err)
		return
	}

	success(c, chatRecord)
}

// sendMessageBody 发送消息的 JSON 请求体
type sendMessageBody struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage 发送用户消息
// 带附件时请求体为 multipart，否则为 JSON；
// 响应的 reply 为 null 表示需要调用轮询端点等待 AI 回复
func (h *ChatHandler) SendMessage(c *gin.Context) {
	id := c.Param("id")

	req, err := h.parseSendMessage(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	reply, err := h.svc.Chat.SendMessage(requestContext(c), getUserID(c), id, req)
	if err != nil {
		chatErrorResponse(c, err)
		return
	}

	success(c, gin.H{"reply": reply})
}

// parseSendMessage 解析 JSON 或 multipart 的消息体
func (h *ChatHandler) parseSendMessage(c *gin.Context) (*chat.SendMessageRequest, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var body sendMessageBody
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		return &chat.SendMessageRequest{Content: body.Content}, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	req := &chat.SendMessageRequest{}
	if values := form.Value["content"]; len(values) > 0 {
		req.Content = values[0]
	}
	for _, fileHeader := range form.File["attachments"] {
		att, err := readAttachment(fileHeader)
		if err != nil {
			return nil, err
		}
		req.Attachments = append(req.Attachments, att)
	}
	return req, nil
}

// readAttachment 读取上传的附件内容
func readAttachment(fh *multipart.FileHeader) (backend.Attachment, error) {
	file, err := fh.Open()
	if err != nil {
		return backend.Attachment{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return backend.Attachment{}, err
	}

	return backend.Attachment{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// AwaitReply 轮询等待 AI 回复
// known 参数携带调用方已知的消息 ID（逗号分隔或重复参数）
func (h *ChatHandler) AwaitReply(c *gin.Context) {
	id := c.Param("id")

	var knownIDs []string
	for _, value := range c.QueryArray("known") {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				knownIDs = append(knownIDs, trimmed)
			}
		}
	}

	reply, err := h.svc.Chat.AwaitReply(requestContext(c), id, knownIDs)
	if err != nil {
		chatErrorResponse(c, err)
		return
	}

	success(c, gin.H{"reply": reply})
}
