package repository

import (
	"time"

	"github.com/jlousky/youtube-search-recommendation/internal/model"
	"gorm.io/gorm"
)

type InteractionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

// Record 追加一条交互记录
func (r *InteractionRepository) Record(interaction *model.Interaction) error {
	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now()
	}
	return r.db.Create(interaction).Error
}

// ListRecent 获取最近的交互记录
func (r *InteractionRepository) ListRecent(limit int) ([]*model.Interaction, error) {
	var records []*model.Interaction
	err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}

// Stats 统计各行为次数和高频交互频道
func (r *InteractionRepository) Stats() (*model.InteractionStats, error) {
	stats := &model.InteractionStats{}

	// 1. 各行为计数
	err := r.db.Raw(`
		SELECT action, COUNT(*) as count
		FROM user_interactions
		GROUP BY action
		ORDER BY count DESC
	`).Scan(&stats.ActionCounts).Error
	if err != nil {
		return nil, err
	}

	// 2. 正向交互最多的频道
	err = r.db.Raw(`
		SELECT channel, COUNT(*) as count
		FROM user_interactions
		WHERE action IN ('clicked', 'liked', 'watched') AND channel <> ''
		GROUP BY channel
		ORDER BY count DESC
		LIMIT 10
	`).Scan(&stats.TopChannels).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// DeleteOld 清理超过指定天数的交互记录
func (r *InteractionRepository) DeleteOld(days int) (int64, error) {
	result := r.db.Exec(`
		DELETE FROM user_interactions
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`, days)
	return result.RowsAffected, result.Error
}
