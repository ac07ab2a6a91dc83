package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jlousky/youtube-search-recommendation/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidPreference 偏好更新内容非法（未知键或值类型不匹配）
var ErrInvalidPreference = errors.New("无效的偏好更新")

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get 读取偏好集合：默认值叠加存储中的覆盖项
// 存储中缺失的键读为默认值；值损坏的键跳过，不中断整次读取。
func (r *PreferenceRepository) Get() (*model.Preferences, error) {
	var rows []model.PreferenceRow
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("读取偏好失败: %w", err)
	}

	prefs := model.DefaultPreferences()
	for _, row := range rows {
		if err := applyValue(prefs, row.PreferenceKey, []byte(row.PreferenceValue)); err != nil {
			// 单个键损坏不影响整体
			continue
		}
	}
	prefs.Normalize()
	return prefs, nil
}

// Update 全量写回偏好集合
func (r *PreferenceRepository) Update(prefs *model.Preferences) error {
	prefs.Normalize()
	for _, key := range preferenceKeys {
		value, err := marshalValue(prefs, key)
		if err != nil {
			return err
		}
		if err := r.upsert(key, value); err != nil {
			return fmt.Errorf("写入偏好 %s 失败: %w", key, err)
		}
	}
	return nil
}

// UpdatePartial 按键局部更新，只写入调用方提供的键
// 返回更新后的完整偏好集合。未知键或类型不匹配返回错误。
func (r *PreferenceRepository) UpdatePartial(partial map[string]json.RawMessage) (*model.Preferences, error) {
	prefs, err := r.Get()
	if err != nil {
		return nil, err
	}

	for key, raw := range partial {
		if !isKnownKey(key) {
			return nil, fmt.Errorf("%w: 未知偏好键 %s", ErrInvalidPreference, key)
		}
		if err := applyValue(prefs, key, raw); err != nil {
			return nil, fmt.Errorf("%w: 键 %s 的值无效: %v", ErrInvalidPreference, key, err)
		}
	}
	prefs.Normalize()

	for key := range partial {
		value, err := marshalValue(prefs, key)
		if err != nil {
			return nil, err
		}
		if err := r.upsert(key, value); err != nil {
			return nil, fmt.Errorf("写入偏好 %s 失败: %w", key, err)
		}
	}
	return prefs, nil
}

// Reset 清空所有覆盖项，恢复默认值
func (r *PreferenceRepository) Reset() error {
	return r.db.Exec(`DELETE FROM user_preferences`).Error
}

func (r *PreferenceRepository) upsert(key string, value []byte) error {
	row := model.PreferenceRow{
		PreferenceKey:   key,
		PreferenceValue: string(value),
		UpdatedAt:       time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "preference_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"preference_value", "updated_at"}),
	}).Create(&row).Error
}

var preferenceKeys = []string{
	model.KeyPreferredChannels,
	model.KeyPreferredCategories,
	model.KeyPreferredKeywords,
	model.KeyDislikedKeywords,
	model.KeyExcludeChannels,
	model.KeyMinDuration,
	model.KeyMaxDuration,
	model.KeyMinViews,
	model.KeyMaxAgeDays,
	model.KeyPreferredLanguages,
}

func isKnownKey(key string) bool {
	for _, k := range preferenceKeys {
		if k == key {
			return true
		}
	}
	return false
}

// applyValue 将 JSON 值解码到对应的偏好字段
func applyValue(prefs *model.Preferences, key string, raw []byte) error {
	switch key {
	case model.KeyPreferredChannels:
		return json.Unmarshal(raw, &prefs.PreferredChannels)
	case model.KeyPreferredCategories:
		return json.Unmarshal(raw, &prefs.PreferredCategories)
	case model.KeyPreferredKeywords:
		return json.Unmarshal(raw, &prefs.PreferredKeywords)
	case model.KeyDislikedKeywords:
		return json.Unmarshal(raw, &prefs.DislikedKeywords)
	case model.KeyExcludeChannels:
		return json.Unmarshal(raw, &prefs.ExcludeChannels)
	case model.KeyMinDuration:
		return json.Unmarshal(raw, &prefs.MinDuration)
	case model.KeyMaxDuration:
		return json.Unmarshal(raw, &prefs.MaxDuration)
	case model.KeyMinViews:
		return json.Unmarshal(raw, &prefs.MinViews)
	case model.KeyMaxAgeDays:
		return json.Unmarshal(raw, &prefs.MaxAgeDays)
	case model.KeyPreferredLanguages:
		return json.Unmarshal(raw, &prefs.PreferredLanguages)
	}
	return fmt.Errorf("未知偏好键: %s", key)
}

// marshalValue 将偏好字段编码为 JSON 值
func marshalValue(prefs *model.Preferences, key string) ([]byte, error) {
	var v interface{}
	switch key {
	case model.KeyPreferredChannels:
		v = prefs.PreferredChannels
	case model.KeyPreferredCategories:
		v = prefs.PreferredCategories
	case model.KeyPreferredKeywords:
		v = prefs.PreferredKeywords
	case model.KeyDislikedKeywords:
		v = prefs.DislikedKeywords
	case model.KeyExcludeChannels:
		v = prefs.ExcludeChannels
	case model.KeyMinDuration:
		v = prefs.MinDuration
	case model.KeyMaxDuration:
		v = prefs.MaxDuration
	case model.KeyMinViews:
		v = prefs.MinViews
	case model.KeyMaxAgeDays:
		v = prefs.MaxAgeDays
	case model.KeyPreferredLanguages:
		v = prefs.PreferredLanguages
	default:
		return nil, fmt.Errorf("未知偏好键: %s", key)
	}
	return json.Marshal(v)
}
