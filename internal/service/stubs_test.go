package service

import (
	"context"
	"fmt"

	"github.com/jlousky/youtube-search-recommendation/internal/model"
)

// stubSource 固定结果的视频源
type stubSource struct {
	results map[string][]model.Video
	errs    map[string]error
	calls   []string
}

func newStubSource() *stubSource {
	return &stubSource{
		results: make(map[string][]model.Video),
		errs:    make(map[string]error),
	}
}

func (s *stubSource) Search(ctx context.Context, query string, maxResults int, order string) ([]model.Video, error) {
	s.calls = append(s.calls, query)
	if err, ok := s.errs[query]; ok {
		return nil, err
	}
	videos := s.results[query]
	if len(videos) > maxResults {
		videos = videos[:maxResults]
	}
	return videos, nil
}

func (s *stubSource) GetVideo(ctx context.Context, videoID string) (*model.Video, error) {
	for _, videos := range s.results {
		for _, v := range videos {
			if v.VideoID == videoID {
				return &v, nil
			}
		}
	}
	return nil, nil
}

// memPrefStore 内存偏好存储，Get 返回副本避免测试间共享状态
type memPrefStore struct {
	prefs   *model.Preferences
	getErr  error
	updates int
}

func newMemPrefStore() *memPrefStore {
	return &memPrefStore{prefs: model.DefaultPreferences()}
}

func (s *memPrefStore) Get() (*model.Preferences, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return clonePrefs(s.prefs), nil
}

func (s *memPrefStore) Update(prefs *model.Preferences) error {
	s.prefs = clonePrefs(prefs)
	s.updates++
	return nil
}

func clonePrefs(p *model.Preferences) *model.Preferences {
	c := *p
	c.PreferredChannels = append([]string{}, p.PreferredChannels...)
	c.PreferredCategories = append([]string{}, p.PreferredCategories...)
	c.PreferredKeywords = append([]string{}, p.PreferredKeywords...)
	c.DislikedKeywords = append([]string{}, p.DislikedKeywords...)
	c.ExcludeChannels = append([]string{}, p.ExcludeChannels...)
	c.PreferredLanguages = append([]string{}, p.PreferredLanguages...)
	return &c
}

// memInteractionStore 内存交互日志
type memInteractionStore struct {
	records   []*model.Interaction
	recordErr error
}

func (s *memInteractionStore) Record(interaction *model.Interaction) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.records = append(s.records, interaction)
	return nil
}

// memSearchLogStore 内存搜索日志
type memSearchLogStore struct {
	entries []*model.SearchLog
}

func (s *memSearchLogStore) Record(entry *model.SearchLog) error {
	s.entries = append(s.entries, entry)
	return nil
}

// makeVideos 生成 n 个带前缀的视频
func makeVideos(prefix string, n int) []model.Video {
	videos := make([]model.Video, 0, n)
	for i := 0; i < n; i++ {
		videos = append(videos, model.Video{
			VideoID:  fmt.Sprintf("%s-%d", prefix, i),
			Title:    fmt.Sprintf("%s video %d", prefix, i),
			Channel:  prefix,
			Duration: "PT10M",
		})
	}
	return videos
}
