// Package polling 在后端未同步返回 AI 回复时，定时拉取会话直到新助手消息出现
package polling

import (
	"context"
	"errors"
	"time"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/config"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/model"
)

// ErrTimeout 达到尝试上限仍未出现新的助手消息
var ErrTimeout = errors.New("timed out waiting for AI reply")

// ChatFetcher 会话拉取原语
type ChatFetcher interface {
	GetChat(ctx context.Context, chatID string) (*model.Chat, error)
}

// Poller 回复轮询器
type Poller struct {
	fetcher     ChatFetcher
	interval    time.Duration
	maxAttempts int
}

// NewPoller 创建轮询器
func NewPoller(fetcher ChatFetcher, cfg *config.PollingConfig) *Poller {
	interval := 2 * time.Second
	maxAttempts := 15
	if cfg != nil {
		if cfg.IntervalSeconds > 0 {
			interval = time.Duration(cfg.IntervalSeconds) * time.Second
		}
		if cfg.MaxAttempts > 0 {
			maxAttempts = cfg.MaxAttempts
		}
	}
	return &Poller{
		fetcher:     fetcher,
		interval:    interval,
		maxAttempts: maxAttempts,
	}
}

// WaitForReply 等待新的助手消息
// known 是调用方已知的消息 ID 集合；每轮拉取会话后按顺序扫描，
// 取第一条不在 known 中的助手消息返回。
// 拉取的瞬时错误吞掉重试，只有尝试上限会以 ErrTimeout 终止；
// ctx 取消在每次等待和拉取前检查，调用方可随时停止轮询。
func (p *Poller) WaitForReply(ctx context.Context, chatID string, known map[string]struct{}) (*model.ChatMessage, error) {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}

		chat, err := p.fetcher.GetChat(ctx, chatID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// 瞬时错误：继续下一轮
			timer.Reset(p.interval)
			continue
		}

		if msg := firstUnseenAssistant(chat.Messages, known); msg != nil {
			return msg, nil
		}

		timer.Reset(p.interval)
	}

	return nil, ErrTimeout
}

// firstUnseenAssistant 取第一条未见过的助手消息
// 一轮响应中出现多条未见消息时只取第一条，后续消息留待下次拉取
func firstUnseenAssistant(messages []*model.ChatMessage, known map[string]struct{}) *model.ChatMessage {
	for _, msg := range messages {
		if msg.Role != model.RoleAssistant {
			continue
		}
		if _, seen := known[msg.ID]; seen {
			continue
		}
		return msg
	}
	return nil
}
