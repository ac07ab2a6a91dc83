package service

import (
	"fmt"
	"strings"

	"github.com/jlousky/youtube-search-recommendation/internal/model"
	"github.com/jlousky/youtube-search-recommendation/internal/utils"
)

// stopWords 关键词提取时跳过的高频英文词
var stopWords = map[string]bool{
	"this": true, "that": true, "with": true, "have": true, "will": true,
	"from": true, "they": true, "know": true, "want": true, "been": true,
	"good": true, "much": true, "some": true, "time": true, "very": true,
	"when": true, "come": true, "here": true, "just": true, "like": true,
	"long": true, "make": true, "many": true, "over": true, "such": true,
	"take": true, "than": true, "them": true, "well": true, "were": true,
}

// Learner 偏好学习引擎
// 从正向交互中增量调整偏好，每次调整一小步，从不直接跳到观测值。
type Learner struct {
	prefs        PreferenceStore
	interactions InteractionStore
}

// NewLearner 创建偏好学习引擎
func NewLearner(prefs PreferenceStore, interactions InteractionStore) *Learner {
	return &Learner{
		prefs:        prefs,
		interactions: interactions,
	}
}

// RecordInteraction 记录交互并触发偏好学习
// 交互记录对任何行为都追加；学习只对 clicked/liked/watched 生效。
func (l *Learner) RecordInteraction(video *model.Video, action, query string) error {
	duration := utils.ParseDuration(video.Duration)

	// 1. 追加交互日志
	interaction := &model.Interaction{
		VideoID:   video.VideoID,
		Action:    action,
		Query:     query,
		Channel:   video.Channel,
		Category:  video.CategoryID,
		Duration:  duration,
		ViewCount: video.ViewCount,
	}
	if err := l.interactions.Record(interaction); err != nil {
		return fmt.Errorf("记录交互失败: %w", err)
	}

	// 2. 非学习行为只记录，不调整偏好
	if !model.IsLearnable(action) {
		return nil
	}

	prefs, err := l.prefs.Get()
	if err != nil {
		return err
	}

	// 3. 四条规则各自独立判断行为类型，互不排斥
	l.learnChannel(prefs, video, action)
	l.learnCategory(prefs, video, action)
	l.learnDuration(prefs, duration, action)
	l.learnKeywords(prefs, video, action)

	// 4. 整体写回
	return l.prefs.Update(prefs)
}

// learnChannel 频道亲和：任何正向交互都追加频道，超过上限淘汰最早加入的
func (l *Learner) learnChannel(prefs *model.Preferences, video *model.Video, action string) {
	if video.Channel == "" {
		return
	}
	if containsString(prefs.PreferredChannels, video.Channel) {
		return
	}
	prefs.PreferredChannels = append(prefs.PreferredChannels, video.Channel)
	if len(prefs.PreferredChannels) > model.MaxPreferredChannels {
		prefs.PreferredChannels = prefs.PreferredChannels[len(prefs.PreferredChannels)-model.MaxPreferredChannels:]
	}
}

// learnCategory 分类亲和：点击或点赞时追加，无上限
func (l *Learner) learnCategory(prefs *model.Preferences, video *model.Video, action string) {
	if action != model.ActionClicked && action != model.ActionLiked {
		return
	}
	if video.CategoryID == "" {
		return
	}
	if !containsString(prefs.PreferredCategories, video.CategoryID) {
		prefs.PreferredCategories = append(prefs.PreferredCategories, video.CategoryID)
	}
}

// learnDuration 时长漂移：看完或点赞的视频超出偏好区间时，边界单步移动
// min 每次 -60 秒（下限 0），max 每次 +300 秒（上限 4 小时）。
func (l *Learner) learnDuration(prefs *model.Preferences, duration int, action string) {
	if action != model.ActionWatched && action != model.ActionLiked {
		return
	}
	if duration <= 0 {
		return
	}
	if duration < prefs.MinDuration {
		prefs.MinDuration = prefs.MinDuration - 60
		if prefs.MinDuration < 0 {
			prefs.MinDuration = 0
		}
	}
	if duration > prefs.MaxDuration {
		prefs.MaxDuration = prefs.MaxDuration + 300
		if prefs.MaxDuration > model.DurationCeiling {
			prefs.MaxDuration = model.DurationCeiling
		}
	}
}

// learnKeywords 关键词提取：点击或点赞的视频标题分词后追加
// 去掉两端标点，保留长度大于 3 的词，跳过高频词，容量满后不再追加。
func (l *Learner) learnKeywords(prefs *model.Preferences, video *model.Video, action string) {
	if action != model.ActionClicked && action != model.ActionLiked {
		return
	}
	if video.Title == "" {
		return
	}

	for _, word := range strings.Fields(strings.ToLower(video.Title)) {
		word = strings.Trim(word, ".,!?()[]")
		if len(word) <= 3 {
			continue
		}
		if stopWords[word] {
			continue
		}
		if containsString(prefs.PreferredKeywords, word) {
			continue
		}
		if len(prefs.PreferredKeywords) >= model.MaxPreferredKeywords {
			break
		}
		prefs.PreferredKeywords = append(prefs.PreferredKeywords, word)
	}
}
