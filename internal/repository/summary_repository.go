package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Kuldeepkant26/Silo-main-sub001/internal/model"
)

// SummaryRepository 会话摘要数据访问
type SummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository 创建会话摘要仓库
func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Upsert 写入或更新摘要
func (r *SummaryRepository) Upsert(summary *model.ChatSummary) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "updated_at"}),
	}).Create(summary).Error
}

// ListByUser 列出用户的摘要，按更新时间倒序
func (r *SummaryRepository) ListByUser(userID string) ([]*model.ChatSummary, error) {
	var summaries []*model.ChatSummary
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&summaries).Error
	return summaries, err
}

// Delete 删除摘要
func (r *SummaryRepository) Delete(userID, chatID string) error {
	return r.db.Delete(&model.ChatSummary{}, "id = ? AND user_id = ?", chatID, userID).Error
}
