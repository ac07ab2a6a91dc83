package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jlousky/youtube-search-recommendation/internal/model"
	"github.com/jlousky/youtube-search-recommendation/internal/utils"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultMaxResults 默认返回结果数
	DefaultMaxResults = 25
	// maxFetchResults 上游单次请求的候选数上限
	maxFetchResults = 50
)

// trendingQueries 热门聚合使用的固定宽泛查询
var trendingQueries = []string{
	"trending today",
	"popular videos",
	"viral videos",
	"latest trending",
}

// fallbackQueries 没有任何偏好时推荐使用的通用主题
var fallbackQueries = []string{
	"educational",
	"entertainment",
	"technology",
	"music",
}

// SearchService 个性化搜索服务
// 流程固定：取候选 → 过滤 → 排序 → 截断 → 记日志。
type SearchService struct {
	source     VideoSource
	prefs      PreferenceStore
	searchLogs SearchLogStore
	ranker     *Ranker
	cache      *utils.SearchCache[[]model.Video]
	sf         singleflight.Group
}

// NewSearchService 创建搜索服务
func NewSearchService(source VideoSource, prefs PreferenceStore, searchLogs SearchLogStore) *SearchService {
	return &SearchService{
		source:     source,
		prefs:      prefs,
		searchLogs: searchLogs,
		ranker:     NewRanker(),
		// 缓存的是上游原始候选集，过滤和排序每次重做，偏好变更立即生效
		cache: utils.NewSearchCache[[]model.Video](1000, 10*time.Minute),
	}
}

// Search 个性化搜索
// 上游失败原样返回给调用方，不做本地恢复。
func (s *SearchService) Search(ctx context.Context, query string, maxResults int) ([]model.Video, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	// 1. 多取一倍候选供过滤消耗
	fetchCount := maxResults * 2
	if fetchCount > maxFetchResults {
		fetchCount = maxFetchResults
	}
	raw, err := s.fetchCandidates(ctx, query, fetchCount)
	if err != nil {
		return nil, err
	}

	// 2. 读取当前偏好
	prefs, err := s.prefs.Get()
	if err != nil {
		return nil, err
	}

	// 3. 过滤 + 排序
	ranked := s.ranker.Rank(s.ranker.Filter(raw, prefs), prefs, query)

	// 4. 截断
	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}

	// 5. 记录搜索日志
	if err := s.searchLogs.Record(&model.SearchLog{
		Query:        query,
		ResultsCount: len(ranked),
	}); err != nil {
		return nil, fmt.Errorf("记录搜索日志失败: %w", err)
	}

	log.Printf("[SearchService] 搜索 %q 返回 %d 条个性化结果", query, len(ranked))
	return ranked, nil
}

// fetchCandidates 获取上游候选集，singleflight 合并并发的相同请求
func (s *SearchService) fetchCandidates(ctx context.Context, query string, count int) ([]model.Video, error) {
	key := fmt.Sprintf("%s:%d", query, count)
	if cached, found := s.cache.Get(key); found {
		return cached, nil
	}

	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		videos, err := s.source.Search(ctx, query, count, "relevance")
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, videos)
		return videos, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]model.Video), nil
}

// SearchByChannel 按频道搜索，包装成频道限定查询后委托给 Search
func (s *SearchService) SearchByChannel(ctx context.Context, channelName string, maxResults int) ([]model.Video, error) {
	return s.Search(ctx, "channel:"+channelName, maxResults)
}

// queryOutcome 聚合操作中单个子查询的结果：成功或跳过
type queryOutcome struct {
	query  string
	videos []model.Video
	err    error
}

// runQueries 依次执行子查询并收集结果，单个失败记为跳过
func (s *SearchService) runQueries(ctx context.Context, queries []string, perQuery int) []queryOutcome {
	outcomes := make([]queryOutcome, 0, len(queries))
	for _, query := range queries {
		videos, err := s.Search(ctx, query, perQuery)
		outcomes = append(outcomes, queryOutcome{query: query, videos: videos, err: err})
	}
	return outcomes
}

// mergeOutcomes 合并子查询结果：跳过失败项，按 video_id 去重（保留先出现的），截断
func mergeOutcomes(outcomes []queryOutcome, maxResults int) []model.Video {
	seen := make(map[string]bool)
	merged := make([]model.Video, 0, maxResults)
	for _, outcome := range outcomes {
		if outcome.err != nil {
			log.Printf("[SearchService] 子查询 %q 失败，跳过: %v", outcome.query, outcome.err)
			continue
		}
		for _, video := range outcome.videos {
			if seen[video.VideoID] {
				continue
			}
			seen[video.VideoID] = true
			merged = append(merged, video)
		}
	}
	if len(merged) > maxResults {
		merged = merged[:maxResults]
	}
	return merged
}

// GetTrending 个性化热门视频
// 所有子查询都失败时返回空列表而不是错误。
func (s *SearchService) GetTrending(ctx context.Context, maxResults int) ([]model.Video, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	perQuery := maxResults / len(trendingQueries)
	if perQuery < 1 {
		perQuery = 1
	}

	outcomes := s.runQueries(ctx, trendingQueries, perQuery)
	return mergeOutcomes(outcomes, maxResults), nil
}

// GetRecommendations 基于偏好的推荐
// 查询列表来自前 10 个偏好关键词和前 5 个偏好频道；两者都为空时用通用主题兜底。
func (s *SearchService) GetRecommendations(ctx context.Context, maxResults int) ([]model.Video, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	prefs, err := s.prefs.Get()
	if err != nil {
		return nil, err
	}

	var queries []string
	keywords := prefs.PreferredKeywords
	if len(keywords) > 10 {
		keywords = keywords[:10]
	}
	queries = append(queries, keywords...)

	channels := prefs.PreferredChannels
	if len(channels) > 5 {
		channels = channels[:5]
	}
	for _, channel := range channels {
		queries = append(queries, "channel:"+channel)
	}

	if len(queries) == 0 {
		queries = fallbackQueries
	}

	perQuery := maxResults / len(queries)
	if perQuery < 1 {
		perQuery = 1
	}

	outcomes := s.runQueries(ctx, queries, perQuery)
	return mergeOutcomes(outcomes, maxResults), nil
}
