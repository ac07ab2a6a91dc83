package model

import "time"

// PreferenceRow 偏好键值存储行，值为 JSON 编码
type PreferenceRow struct {
	ID              int       `gorm:"primaryKey"`
	PreferenceKey   string    `gorm:"uniqueIndex"`
	PreferenceValue string
	UpdatedAt       time.Time
}

// TableName 指定表名
func (PreferenceRow) TableName() string {
	return "user_preferences"
}

// 偏好相关常量
const (
	MaxPreferredChannels = 50    // 偏好频道上限，超出后淘汰最早加入的
	MaxPreferredKeywords = 100   // 偏好关键词上限，满了以后不再追加
	DefaultMaxDuration   = 7200  // 默认最长时长：2 小时
	DurationCeiling      = 14400 // 最长时长硬上限：4 小时
	DefaultMaxAgeDays    = 365   // 默认最大视频年龄：1 年
)

// 偏好键名，与存储表 preference_key 一致
const (
	KeyPreferredChannels   = "preferred_channels"
	KeyPreferredCategories = "preferred_categories"
	KeyPreferredKeywords   = "preferred_keywords"
	KeyDislikedKeywords    = "disliked_keywords"
	KeyExcludeChannels     = "exclude_channels"
	KeyMinDuration         = "min_duration"
	KeyMaxDuration         = "max_duration"
	KeyMinViews            = "min_views"
	KeyMaxAgeDays          = "max_age_days"
	KeyPreferredLanguages  = "preferred_languages"
)

// Preferences 用户偏好集合
// 每个键都有默认值：存储中缺失的键读取时返回默认值，永远不会"不存在"。
type Preferences struct {
	PreferredChannels   []string `json:"preferred_channels"`
	PreferredCategories []string `json:"preferred_categories"`
	PreferredKeywords   []string `json:"preferred_keywords"`
	DislikedKeywords    []string `json:"disliked_keywords"`
	ExcludeChannels     []string `json:"exclude_channels"`
	MinDuration         int      `json:"min_duration"` // 秒
	MaxDuration         int      `json:"max_duration"` // 秒
	MinViews            int64    `json:"min_views"`
	MaxAgeDays          int      `json:"max_age_days"`
	// 预留字段，暂不参与打分
	PreferredLanguages []string `json:"preferred_languages"`
}

// DefaultPreferences 返回带默认值的偏好集合
func DefaultPreferences() *Preferences {
	return &Preferences{
		PreferredChannels:   []string{},
		PreferredCategories: []string{},
		PreferredKeywords:   []string{},
		DislikedKeywords:    []string{},
		ExcludeChannels:     []string{},
		MinDuration:         0,
		MaxDuration:         DefaultMaxDuration,
		MinViews:            0,
		MaxAgeDays:          DefaultMaxAgeDays,
		PreferredLanguages:  []string{"en"},
	}
}

// Normalize 收敛越界的数值偏好
// min_duration 不低于 0，max_duration 不超过硬上限，容量上限超出时淘汰最早的条目。
func (p *Preferences) Normalize() {
	if p.MinDuration < 0 {
		p.MinDuration = 0
	}
	if p.MaxDuration > DurationCeiling {
		p.MaxDuration = DurationCeiling
	}
	if p.MaxAgeDays < 0 {
		p.MaxAgeDays = 0
	}
	if p.MinViews < 0 {
		p.MinViews = 0
	}
	if len(p.PreferredChannels) > MaxPreferredChannels {
		p.PreferredChannels = p.PreferredChannels[len(p.PreferredChannels)-MaxPreferredChannels:]
	}
	if len(p.PreferredKeywords) > MaxPreferredKeywords {
		p.PreferredKeywords = p.PreferredKeywords[:MaxPreferredKeywords]
	}
}
