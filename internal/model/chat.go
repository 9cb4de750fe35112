package model

import "time"

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Chat 聊天会话（远程后端的规范化形态）
// 创建后 Context 不再变更，消息序列只追加
type Chat struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Messages  []*ChatMessage    `json:"messages"`
	Context   map[string]string `json:"context,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ChatMessage 聊天消息，创建后不可变
type ChatMessage struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
