// Package session 维护每个用户的会话摘要列表（历史面板缓存）
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/model"
	"github.com/Kuldeepkant26/Silo-main-sub001/internal/repository"
)

const (
	// 摘要列表在存储中的过期时间（24小时）
	summaryTTL = 24 * time.Hour
	// 存储 key 前缀
	summaryKeyPrefix = "silo:sessions:"
)

// Manager 会话摘要管理器
// 摘要写入注入的 Store（带 TTL），并镜像到数据库供历史面板跨缓存周期使用；
// 存储中的数据损坏或缺失时按空列表处理
type Manager struct {
	store Store
	repo  *repository.SummaryRepository
}

// NewManager 创建摘要管理器
// repo 可以为 nil（无数据库镜像）
func NewManager(store Store, repo *repository.SummaryRepository) *Manager {
	return &Manager{store: store, repo: repo}
}

// List 获取用户的摘要列表，按更新时间倒序
func (m *Manager) List(ctx context.Context, userID string) ([]*model.ChatSummary, error) {
	summaries := m.loadFromStore(ctx, userID)

	if len(summaries) == 0 && m.repo != nil {
		fromDB, err := m.repo.ListByUser(userID)
		if err == nil && len(fromDB) > 0 {
			summaries = fromDB
			m.saveToStore(ctx, userID, summaries)
		}
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

// Upsert 写入或更新摘要
// 摘要 ID 必须对应某个远程会话 ID，空 ID 拒绝
func (m *Manager) Upsert(ctx context.Context, userID string, summary *model.ChatSummary) error {
	if summary.ID == "" {
		return errors.New("summary id is required")
	}

	summary.UserID = userID
	if summary.UpdatedAt.IsZero() {
		summary.UpdatedAt = time.Now()
	}

	summaries := m.loadFromStore(ctx, userID)
	replaced := false
	for i, s := range summaries {
		if s.ID == summary.ID {
			summaries[i] = summary
			replaced = true
			break
		}
	}
	if !replaced {
		summaries = append(summaries, summary)
	}
	m.saveToStore(ctx, userID, summaries)

	if m.repo != nil {
		if err := m.repo.Upsert(summary); err != nil {
			log.Printf("Warning: failed to persist summary: %v", err)
		}
	}

	return nil
}

// Remove 删除摘要
func (m *Manager) Remove(ctx context.Context, userID, chatID string) error {
	summaries := m.loadFromStore(ctx, userID)
	kept := summaries[:0]
	for _, s := range summaries {
		if s.ID != chatID {
			kept = append(kept, s)
		}
	}
	m.saveToStore(ctx, userID, kept)

	if m.repo != nil {
		if err := m.repo.Delete(userID, chatID); err != nil {
			log.Printf("Warning: failed to delete summary: %v", err)
		}
	}

	return nil
}

// loadFromStore 从存储加载摘要列表
// 缺失或损坏的数据按空列表处理
func (m *Manager) loadFromStore(ctx context.Context, userID string) []*model.ChatSummary {
	data, err := m.store.Get(ctx, summaryKeyPrefix+userID)
	if err != nil {
		return []*model.ChatSummary{}
	}

	var summaries []*model.ChatSummary
	if err := json.Unmarshal([]byte(data), &summaries); err != nil {
		return []*model.ChatSummary{}
	}
	return summaries
}

// saveToStore 保存摘要列表到存储
func (m *Manager) saveToStore(ctx context.Context, userID string, summaries []*model.ChatSummary) {
	data, err := json.Marshal(summaries)
	if err != nil {
		return
	}
	if err := m.store.Set(ctx, summaryKeyPrefix+userID, string(data), summaryTTL); err != nil {
		log.Printf("Warning: failed to save summaries to store: %v", err)
	}
}
