package model

import (
	"time"
)

// Video 视频模型（来自 YouTube Data API，对核心逻辑只读）
type Video struct {
	VideoID      string   `json:"video_id"`
	Title        string   `json:"title"`
	Channel      string   `json:"channel"`
	ChannelID    string   `json:"channel_id,omitempty"`
	Description  string   `json:"description"`
	PublishedAt  string   `json:"published_at"` // RFC3339，可能为空
	Thumbnail    string   `json:"thumbnail,omitempty"`
	URL          string   `json:"url"`
	Duration     string   `json:"duration"` // ISO 8601 时长，如 PT5M30S
	ViewCount    int64    `json:"view_count"`
	LikeCount    int64    `json:"like_count"`
	CommentCount int64    `json:"comment_count"`
	CategoryID   string   `json:"category_id,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// 交互行为类型
const (
	ActionClicked = "clicked"
	ActionLiked   = "liked"
	ActionWatched = "watched"
)

// IsLearnable 判断该行为是否触发偏好学习（其他行为只记录不学习）
func IsLearnable(action string) bool {
	switch action {
	case ActionClicked, ActionLiked, ActionWatched:
		return true
	}
	return false
}

// Interaction 用户交互记录（只追加，不修改）
type Interaction struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	VideoID   string    `json:"video_id"`
	Action    string    `json:"action"`
	Query     string    `json:"query,omitempty"`
	Channel   string    `json:"channel"`
	Category  string    `json:"category"`
	Duration  int       `json:"duration"` // 秒，入库前已解析
	ViewCount int64     `json:"view_count"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName 指定表名
func (Interaction) TableName() string {
	return "user_interactions"
}

// SearchLog 搜索日志
type SearchLog struct {
	ID             int       `json:"id" gorm:"primaryKey"`
	Query          string    `json:"query"`
	ResultsCount   int       `json:"results_count"`
	ClickedVideoID string    `json:"clicked_video_id,omitempty"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}

// TrendingKeyword 热搜关键词
type TrendingKeyword struct {
	Keyword        string    `json:"keyword" gorm:"primaryKey"`
	Count          int       `json:"count"`
	LastSearchedAt time.Time `json:"last_searched_at"`
}

// ActionStat 交互行为统计
type ActionStat struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// ChannelStat 高频交互频道统计
type ChannelStat struct {
	Channel string `json:"channel"`
	Count   int    `json:"count"`
}

// InteractionStats 交互统计汇总
type InteractionStats struct {
	ActionCounts []ActionStat  `json:"action_counts"`
	TopChannels  []ChannelStat `json:"top_channels"`
}
