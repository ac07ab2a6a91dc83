package service

import (
	"math"
	"sort"
	"strings"

	"github.com/jlousky/youtube-search-recommendation/internal/model"
	"github.com/jlousky/youtube-search-recommendation/internal/utils"
)

// Ranker 个性化过滤与排序引擎
// 无内部状态，偏好和查询词都由调用方传入。
type Ranker struct{}

// NewRanker 创建排序引擎
func NewRanker() *Ranker {
	return &Ranker{}
}

// Filter 按偏好过滤候选视频，保持输入顺序，任一条件命中即排除
func (r *Ranker) Filter(videos []model.Video, prefs *model.Preferences) []model.Video {
	filtered := make([]model.Video, 0, len(videos))
	for _, video := range videos {
		if r.excluded(&video, prefs) {
			continue
		}
		filtered = append(filtered, video)
	}
	return filtered
}

// excluded 判断视频是否被任一过滤条件排除
func (r *Ranker) excluded(video *model.Video, prefs *model.Preferences) bool {
	// 1. 频道黑名单
	if containsString(prefs.ExcludeChannels, video.Channel) {
		return true
	}

	// 2. 时长范围
	duration := utils.ParseDuration(video.Duration)
	if duration < prefs.MinDuration || duration > prefs.MaxDuration {
		return true
	}

	// 3. 最低播放量
	if video.ViewCount < prefs.MinViews {
		return true
	}

	// 4. 最大年龄（发布时间缺失视为不算太旧，放行）
	if utils.IsVideoTooOld(video.PublishedAt, prefs.MaxAgeDays) {
		return true
	}

	// 5. 反感关键词（标题或描述命中即排除，不区分大小写）
	titleLower := strings.ToLower(video.Title)
	descLower := strings.ToLower(video.Description)
	for _, keyword := range prefs.DislikedKeywords {
		kw := strings.ToLower(keyword)
		if strings.Contains(titleLower, kw) || strings.Contains(descLower, kw) {
			return true
		}
	}

	return false
}

// scoredVideo 打分结果，index 是输入序号，用作并列分数的决定性排序依据
type scoredVideo struct {
	index int
	score float64
	video model.Video
}

// Rank 按偏好打分并降序排序
// 稳定排序：分数相同的视频保持输入顺序（即上游相关性顺序）。
func (r *Ranker) Rank(videos []model.Video, prefs *model.Preferences, query string) []model.Video {
	scored := make([]scoredVideo, len(videos))
	for i, video := range videos {
		scored[i] = scoredVideo{
			index: i,
			score: r.Score(&video, prefs, query),
			video: video,
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].index < scored[j].index
	})

	ranked := make([]model.Video, len(scored))
	for i, sv := range scored {
		ranked[i] = sv.video
	}
	return ranked
}

// Score 计算单个视频的偏好分数，各项独立累加
func (r *Ranker) Score(video *model.Video, prefs *model.Preferences, query string) float64 {
	// 基础分（上游已按相关性排序）
	score := 1.0

	// 偏好频道加分
	if containsString(prefs.PreferredChannels, video.Channel) {
		score += 2.0
	}

	// 偏好分类加分
	if containsString(prefs.PreferredCategories, video.CategoryID) {
		score += 1.5
	}

	titleLower := strings.ToLower(video.Title)
	descLower := strings.ToLower(video.Description)

	// 偏好关键词加分
	keywordMatches := 0
	for _, keyword := range prefs.PreferredKeywords {
		kw := strings.ToLower(keyword)
		if strings.Contains(titleLower, kw) || strings.Contains(descLower, kw) {
			keywordMatches++
		}
	}
	score += float64(keywordMatches) * 0.5

	// 查询词覆盖率加分
	queryWords := strings.Fields(strings.ToLower(query))
	if len(queryWords) > 0 {
		queryMatches := 0
		for _, word := range queryWords {
			if strings.Contains(titleLower, word) {
				queryMatches++
			}
		}
		score += float64(queryMatches) / float64(len(queryWords)) * 2.0
	}

	// 播放量加分（对数刻度，防止头部视频碾压）
	if video.ViewCount > 0 {
		score += math.Log10(float64(video.ViewCount)) * 0.1
	}

	// 点赞率加分（比值很小，放大 100 倍）
	if video.LikeCount > 0 && video.ViewCount > 0 {
		score += float64(video.LikeCount) / float64(video.ViewCount) * 100
	}

	// 新鲜度加分：30 天内线性衰减，超过 30 天不加不减，年龄未知不加分
	if ageDays := utils.VideoAgeDays(video.PublishedAt); ageDays >= 0 {
		score += math.Max(0, float64(30-ageDays)/30) * 0.5
	}

	// 时长落在偏好区间内加分
	duration := utils.ParseDuration(video.Duration)
	if duration >= prefs.MinDuration && duration <= prefs.MaxDuration {
		score += 0.3
	}

	return score
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
