package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/jlousky/youtube-search-recommendation/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVideo(id string) model.Video {
	return model.Video{
		VideoID:  id,
		Title:    "some title " + id,
		Channel:  "channel-" + id,
		Duration: "PT10M",
	}
}

func TestFilterExcludeChannel(t *testing.T) {
	r := NewRanker()
	prefs := model.DefaultPreferences()
	prefs.ExcludeChannels = []string{"channel-b"}

	videos := []model.Video{testVideo("a"), testVideo("b"), testVideo("c")}
	filtered := r.Filter(videos, prefs)

	require.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].VideoID)
	assert.Equal(t, "c", filtered[1].VideoID)
}

func TestFilterDurationRange(t *testing.T) {
	r := NewRanker()
	prefs := model.DefaultPreferences()
	prefs.MinDuration = 300
	prefs.MaxDuration = 1200

	short := testVideo("short")
	short.Duration = "PT2M"
	fit := testVideo("fit")
	fit.Duration = "PT10M"
	long := testVideo("long")
	long.Duration = "PT1H"

	filtered := r.Filter([]model.Video{short, fit, long}, prefs)
	require.Len(t, filtered, 1)
	assert.Equal(t, "fit", filtered[0].VideoID)
}

func TestFilterMinViews(t *testing.T) {
	r := NewRanker()
	prefs := model.DefaultPreferences()
	prefs.MinViews = 1000

	low := testVideo("low")
	low.ViewCount = 10
	high := testVideo("high")
	high.ViewCount = 5000

	filtered := r.Filter([]model.Video{low, high}, prefs)
	require.Len(t, filtered, 1)
	assert.Equal(t, "high", filtered[0].VideoID)
}

func TestFilterMaxAge(t *testing.T) {
	r := NewRanker()
	prefs := model.DefaultPreferences()
	prefs.MaxAgeDays = 30

	old := testVideo("old")
	old.PublishedAt = time.Now().Add(-60 * 24 * time.Hour).Format(time.RFC3339)
	fresh := testVideo("fresh")
	fresh.PublishedAt = time.Now().Add(-5 * 24 * time.Hour).Format(time.RFC3339)
	// 发布时间缺失的视频不算太旧，放行
	unknown := testVideo("unknown")

	filtered := r.Filter([]model.Video{old, fresh, unknown}, prefs)
	require.Len(t, filtered, 2)
	assert.Equal(t, "fresh", filtered[0].VideoID)
	assert.Equal(t, "unknown", filtered[1].VideoID)
}

func TestFilterDislikedKeywords(t *testing.T) {
	r := NewRanker()
	prefs := model.DefaultPreferences()
	prefs.DislikedKeywords = []string{"Clickbait"}

	inTitle := testVideo("t")
	inTitle.Title = "ultimate CLICKBAIT compilation"
	inDesc := testVideo("d")
	inDesc.Description = "pure clickbait content"
	clean := testVideo("clean")

	filtered := r.Filter([]model.Video{inTitle, inDesc, clean}, prefs)
	require.Len(t, filtered, 1)
	assert.Equal(t, "clean", filtered[0].VideoID)
}

func TestFilterIdempotent(t *testing.T) {
	r := NewRanker()
	prefs := model.DefaultPreferences()
	prefs.ExcludeChannels = []string{"channel-b"}
	prefs.MinViews = 5

	videos := make([]model.Video, 0, 10)
	for i := 0; i < 10; i++ {
		v := testVideo(fmt.Sprintf("v%d", i))
		v.ViewCount = int64(i * 3)
		videos = append(videos, v)
	}

	once := r.Filter(videos, prefs)
	twice := r.Filter(once, prefs)
	assert.Equal(t, once, twice)
}

func TestFilterExclusionMonotonic(t *testing.T) {
	r := NewRanker()
	videos := []model.Video{testVideo("a"), testVideo("b"), testVideo("c")}

	prefs := model.DefaultPreferences()
	before := len(r.Filter(videos, prefs))

	// 逐个加入黑名单，过滤后的集合只会变小不会变大
	for _, ch := range []string{"channel-a", "channel-b", "channel-x"} {
		prefs.ExcludeChannels = append(prefs.ExcludeChannels, ch)
		after := len(r.Filter(videos, prefs))
		assert.LessOrEqual(t, after, before)
		before = after
	}
}

func TestScoreBaseline(t *testing.T) {
	r := NewRanker()
	prefs := model.DefaultPreferences()

	// 无任何匹配项：基础分 1.0 + 时长在默认区间内 0.3
	v := model.Video{VideoID: "v", Title: "plain", Duration: "PT10M"}
	assert.InDelta(t, 1.3, r.Score(&v, prefs, ""), 1e-9)
}

func TestScoreContributions(t *testing.T) {
	r := NewRanker()
	prefs := model.DefaultPreferences()
	prefs.PreferredChannels = []string{"GoodChannel"}
	prefs.PreferredCategories = []string{"27"}
	prefs.PreferredKeywords = []string{"golang", "tutorial"}

	v := model.Video{
		VideoID:    "v",
		Title:      "golang tutorial for beginners",
		Channel:    "GoodChannel",
		CategoryID: "27",
		Duration:   "PT10M",
	}

	// 1.0 基础 + 2.0 频道 + 1.5 分类 + 2×0.5 关键词 + 2.0 查询全覆盖 + 0.3 时长
	got := r.Score(&v, prefs, "golang tutorial")
	assert.InDelta(t, 7.8, got, 1e-9)
}

func TestScoreQueryCoverage(t *testing.T) {
	r := NewRanker()
	prefs := model.DefaultPreferences()

	v := model.Video{VideoID: "v", Title: "learn golang fast", Duration: "PT10M"}

	// 两个查询词命中一个：1.0 + 0.5×2.0 + 0.3
	got := r.Score(&v, prefs, "golang cooking")
	assert.InDelta(t, 2.3, got, 1e-9)
}

func TestScoreViewCountMonotonic(t *testing.T) {
	r := NewRanker()
	prefs := model.DefaultPreferences()

	low := model.Video{VideoID: "low", Title: "same", Duration: "PT10M", ViewCount: 1000}
	high := low
	high.VideoID = "high"
	high.ViewCount = 1000000

	assert.GreaterOrEqual(t, r.Score(&high, prefs, ""), r.Score(&low, prefs, ""))
}

func TestRankOrdering(t *testing.T) {
	r := NewRanker()
	prefs := model.DefaultPreferences()
	prefs.PreferredChannels = []string{"GoodChannel"}

	plain := testVideo("plain")
	boosted := testVideo("boosted")
	boosted.Channel = "GoodChannel"

	ranked := r.Rank([]model.Video{plain, boosted}, prefs, "")
	require.Len(t, ranked, 2)
	assert.Equal(t, "boosted", ranked[0].VideoID)
	assert.Equal(t, "plain", ranked[1].VideoID)
}

func TestRankStableOnTies(t *testing.T) {
	r := NewRanker()
	prefs := model.DefaultPreferences()

	// 分数完全相同的视频保持输入顺序
	videos := make([]model.Video, 0, 5)
	for i := 0; i < 5; i++ {
		v := model.Video{
			VideoID:  fmt.Sprintf("v%d", i),
			Title:    "identical title",
			Duration: "PT10M",
		}
		videos = append(videos, v)
	}

	ranked := r.Rank(videos, prefs, "")
	require.Len(t, ranked, 5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, fmt.Sprintf("v%d", i), ranked[i].VideoID)
	}
}
