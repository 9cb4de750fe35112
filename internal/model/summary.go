package model

import "time"

// ChatSummary 会话摘要
// 历史面板的缓存条目，ID 与远程 Chat 的 ID 对应；
// 与权威 Chat 记录之间不保证强一致
type ChatSummary struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"user_id" gorm:"index;size:36"`
	Title     string    `json:"title" gorm:"size:255"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (ChatSummary) TableName() string {
	return "chat_summaries"
}
