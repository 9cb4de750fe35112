// Package chat 聊天编排
// 用户文本先经远程后端创建或追加，后端没有同步返回 AI 回复时交给轮询器，
// 会话摘要随活动更新
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/model"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/backend"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/polling"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/service/session"
)

const defaultTitleLimit = 40

// Service 聊天服务
type Service struct {
	backend  *backend.Client
	poller   *polling.Poller
	sessions *session.Manager
}

// NewService 创建聊天服务
func NewService(client *backend.Client, poller *polling.Poller, sessions *session.Manager) *Service {
	return &Service{backend: client, poller: poller, sessions: sessions}
}

// StartChatRequest 创建会话请求
type StartChatRequest struct {
	Title   string            `json:"title"`
	Message string            `json:"message" binding:"required"`
	Context map[string]string `json:"context"`
}

// StartChat 创建会话
// backend.ErrAIGeneration 原样透出：此时会话和用户消息可能已在远端持久化，
// 调用方不应回滚已展示的用户消息
func (s *Service) StartChat(ctx context.Context, userID string, req *StartChatRequest) (*model.Chat, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultTitle(req.Message)
	}

	chat, err := s.backend.CreateChat(ctx, &backend.CreateChatRequest{
		Title:   title,
		Message: req.Message,
		Context: req.Context,
	})
	if err != nil {
		return nil, err
	}

	s.touchSummary(ctx, userID, chat.ID, chat.Title)
	return chat, nil
}

// GetChat 获取会话全部消息
func (s *Service) GetChat(ctx context.Context, chatID string) (*model.Chat, error) {
	return s.backend.GetChat(ctx, chatID)
}

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Content     string
	Attachments []backend.Attachment
}

// SendMessage 发送用户消息
// 返回的 reply 为 nil 表示后端没有同步生成回复，调用方需要轮询
func (s *Service) SendMessage(ctx context.Context, userID, chatID string, req *SendMessageRequest) (*model.ChatMessage, error) {
	reply, err := s.backend.SendMessage(ctx, chatID, &backend.SendMessageRequest{
		Content:     req.Content,
		Attachments: req.Attachments,
	})
	if err != nil {
		return nil, err
	}

	s.touchSummary(ctx, userID, chatID, "")
	return reply, nil
}

// AwaitReply 等待 AI 回复
// knownIDs 是调用方已知的消息 ID；超时返回 polling.ErrTimeout
func (s *Service) AwaitReply(ctx context.Context, chatID string, knownIDs []string) (*model.ChatMessage, error) {
	known := make(map[string]struct{}, len(knownIDs))
	for _, id := range knownIDs {
		known[id] = struct{}{}
	}
	return s.poller.WaitForReply(ctx, chatID, known)
}

// touchSummary 更新会话摘要
// 摘要是历史面板缓存，更新失败只记录不阻断主流程
func (s *Service) touchSummary(ctx context.Context, userID, chatID, title string) {
	if s.sessions == nil || userID == "" || chatID == "" {
		return
	}

	summary := &model.ChatSummary{
		ID:        chatID,
		Title:     title,
		UpdatedAt: time.Now(),
	}
	if title == "" {
		if existing, err := s.sessions.List(ctx, userID); err == nil {
			for _, e := range existing {
				if e.ID == chatID {
					summary.Title = e.Title
					break
				}
			}
		}
	}

	_ = s.sessions.Upsert(ctx, userID, summary)
}

// defaultTitle 从首条消息生成默认标题
func defaultTitle(message string) string {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "New request"
	}

	runes := []rune(trimmed)
	if len(runes) <= defaultTitleLimit {
		return trimmed
	}
	return fmt.Sprintf("%s...", string(runes[:defaultTitleLimit]))
}
