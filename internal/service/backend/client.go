// Package backend 封装远程工单/聊天后端的访问
// 将远程服务的消息和会话形态规范化为本地 model 表示
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/config"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/model"
)

// ErrAIGeneration AI 回复生成失败
// 会话和用户消息此时可能已在远端持久化，调用方不应回滚本地用户消息
var ErrAIGeneration = errors.New("AI reply generation failed")

// aiGenerationFailureText 远端 AI 生成失败的错误文案
// 远端未提供结构化错误码，只能匹配文案；集中在这里以便后续替换
const aiGenerationFailureText = "failed to generate ai response"

// APIError 远程后端的 HTTP 错误
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

type tokenContextKey struct{}

// WithSessionToken 将会话令牌放入上下文
// 客户端每次调用时优先使用该令牌（令牌可能在会话中轮换）
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// SessionTokenFrom 从上下文取会话令牌
func SessionTokenFrom(ctx context.Context) string {
	if token, ok := ctx.Value(tokenContextKey{}).(string); ok {
		return token
	}
	return ""
}

// Client 远程后端客户端
type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

// NewClient 创建后端客户端
func NewClient(cfg *config.BackendConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		http:     &http.Client{Timeout: timeout},
	}
}

// CreateChatRequest 创建会话请求
type CreateChatRequest struct {
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Context map[string]string `json:"context,omitempty"`
}

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Content     string
	Attachments []Attachment
}

// Attachment 消息附件
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ========== 远程线格式 ==========

type wireMessage struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type wireChat struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Messages  []wireMessage     `json:"messages"`
	Context   map[string]string `json:"context"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type wireError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// normalizeChat 规范化远程会话
func normalizeChat(w *wireChat) *model.Chat {
	chat := &model.Chat{
		ID:        w.ID,
		Title:     w.Title,
		Context:   w.Context,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
		Messages:  make([]*model.ChatMessage, 0, len(w.Messages)),
	}
	for _, m := range w.Messages {
		chat.Messages = append(chat.Messages, normalizeMessage(&m, w.ID))
	}
	return chat
}

// normalizeMessage 规范化远程消息，chat_id 缺失时回填
func normalizeMessage(w *wireMessage, chatID string) *model.ChatMessage {
	id := w.ChatID
	if id == "" {
		id = chatID
	}
	return &model.ChatMessage{
		ID:        w.ID,
		ChatID:    id,
		Role:      w.Role,
		Content:   w.Content,
		CreatedAt: w.CreatedAt,
	}
}

// CreateChat 创建会话
// 远端失败文案指示 AI 生成失败时返回 ErrAIGeneration，
// 其余失败返回 *APIError
func (c *Client) CreateChat(ctx context.Context, req *CreateChatRequest) (*model.Chat, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chats", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(ctx, httpReq)

	var chat wireChat
	if err := c.do(httpReq, &chat); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && isAIGenerationFailure(apiErr.Message) {
			return nil, fmt.Errorf("create chat: %w", ErrAIGeneration)
		}
		return nil, err
	}

	return normalizeChat(&chat), nil
}

// GetChat 获取会话全部消息历史，也是轮询的基础原语
func (c *Client) GetChat(ctx context.Context, chatID string) (*model.Chat, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/chats/"+chatID, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(ctx, httpReq)

	var chat wireChat
	if err := c.do(httpReq, &chat); err != nil {
		return nil, err
	}

	return normalizeChat(&chat), nil
}

// SendMessage 发送用户消息
// 后端同步返回了 AI 回复时返回该消息；返回 (nil, nil) 表示调用方需要轮询
func (c *Client) SendMessage(ctx context.Context, chatID string, req *SendMessageRequest) (*model.ChatMessage, error) {
	var httpReq *http.Request
	var err error

	if len(req.Attachments) > 0 {
		httpReq, err = c.newMultipartRequest(ctx, chatID, req)
	} else {
		httpReq, err = c.newJSONMessageRequest(ctx, chatID, req)
	}
	if err != nil {
		return nil, err
	}
	c.authorize(ctx, httpReq)

	var resp struct {
		Reply *wireMessage `json:"reply"`
	}
	if err := c.do(httpReq, &resp); err != nil {
		return nil, err
	}

	if resp.Reply == nil || resp.Reply.ID == "" {
		return nil, nil
	}
	return normalizeMessage(resp.Reply, chatID), nil
}

func (c *Client) newJSONMessageRequest(ctx context.Context, chatID string, req *SendMessageRequest) (*http.Request, error) {
	body, err := json.Marshal(map[string]string{"content": req.Content})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chats/"+chatID+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

func (c *Client) newMultipartRequest(ctx context.Context, chatID string, req *SendMessageRequest) (*http.Request, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("content", req.Content); err != nil {
		return nil, err
	}
	for _, att := range req.Attachments {
		part, err := writer.CreateFormFile("attachments", att.FileName)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(att.Data); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chats/"+chatID+"/messages", &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	return httpReq, nil
}

// authorize 解析本次调用的 Bearer 凭证
// 优先使用上下文中的会话令牌，回退到静态配置令牌；
// 令牌可能在会话中轮换，所以每次调用都重新解析
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	token := SessionTokenFrom(ctx)
	if token == "" {
		token = c.apiToken
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// do 执行请求并解码响应
// 空响应体按空对象处理而不是报错
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Status:  resp.StatusCode,
			Message: parseErrorMessage(body),
		}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		// 畸形响应体按空对象处理
		return nil
	}
	return nil
}

// parseErrorMessage 从错误响应体提取消息
func parseErrorMessage(body []byte) string {
	var we wireError
	if err := json.Unmarshal(body, &we); err == nil {
		if we.Message != "" {
			return we.Message
		}
		if we.Error != "" {
			return we.Error
		}
	}
	return strings.TrimSpace(string(body))
}

// isAIGenerationFailure 判断失败文案是否指示 AI 生成失败
func isAIGenerationFailure(message string) bool {
	return strings.Contains(strings.ToLower(message), aiGenerationFailureText)
}
