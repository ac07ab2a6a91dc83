package service

import (
	"context"

	"github.com/jlousky/youtube-search-recommendation/internal/model"
)

// VideoSource 外部视频源接口
type VideoSource interface {
	// Search 按上游相关性排序返回候选视频
	Search(ctx context.Context, query string, maxResults int, order string) ([]model.Video, error)
	// GetVideo 获取单个视频详情，不存在时返回 nil
	GetVideo(ctx context.Context, videoID string) (*model.Video, error)
}

// PreferenceStore 偏好存储接口
type PreferenceStore interface {
	Get() (*model.Preferences, error)
	Update(prefs *model.Preferences) error
}

// InteractionStore 交互日志存储接口
type InteractionStore interface {
	Record(interaction *model.Interaction) error
}

// SearchLogStore 搜索日志存储接口
type SearchLogStore interface {
	Record(entry *model.SearchLog) error
}
