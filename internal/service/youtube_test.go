package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jlousky/youtube-search-recommendation/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchJSON = `{
	"items": [
		{"id": {"videoId": "vid1"}, "snippet": {"title": "First Video", "channelTitle": "ChannelOne", "channelId": "UC1", "description": "desc one", "publishedAt": "2026-08-01T00:00:00Z"}},
		{"id": {"videoId": "vid2"}, "snippet": {"title": "Second Video", "channelTitle": "ChannelTwo", "channelId": "UC2", "description": "desc two", "publishedAt": "2026-08-02T00:00:00Z"}}
	]
}`

const videosJSON = `{
	"items": [
		{
			"id": "vid1",
			"snippet": {"title": "First Video", "channelTitle": "ChannelOne", "categoryId": "27"},
			"statistics": {"viewCount": "12345", "likeCount": "678", "commentCount": "90"},
			"contentDetails": {"duration": "PT5M30S"}
		}
	]
}`

func newTestYouTubeClient(handler http.HandlerFunc) (*YouTubeClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewYouTubeClient(&config.Config{
		YouTubeAPIKey: "test-key",
		YouTubeAPIURL: server.URL,
	})
	return client, server
}

func TestYouTubeSearch(t *testing.T) {
	client, server := newTestYouTubeClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search":
			assert.Equal(t, "golang", r.URL.Query().Get("q"))
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			w.Write([]byte(searchJSON))
		case "/videos":
			w.Write([]byte(videosJSON))
		default:
			http.NotFound(w, r)
		}
	})
	defer server.Close()

	videos, err := client.Search(context.Background(), "golang", 10, "relevance")
	require.NoError(t, err)
	require.Len(t, videos, 2)

	// vid1 的统计信息已合并
	assert.Equal(t, "vid1", videos[0].VideoID)
	assert.Equal(t, "ChannelOne", videos[0].Channel)
	assert.Equal(t, int64(12345), videos[0].ViewCount)
	assert.Equal(t, int64(678), videos[0].LikeCount)
	assert.Equal(t, "27", videos[0].CategoryID)
	assert.Equal(t, "PT5M30S", videos[0].Duration)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid1", videos[0].URL)

	// vid2 不在统计响应里，保留兜底时长
	assert.Equal(t, "PT0M0S", videos[1].Duration)
	assert.Equal(t, int64(0), videos[1].ViewCount)
}

func TestYouTubeSearchStatsFailureTolerated(t *testing.T) {
	client, server := newTestYouTubeClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search":
			w.Write([]byte(searchJSON))
		default:
			// 统计接口挂掉不影响搜索结果本身
			http.Error(w, "quota exceeded", http.StatusForbidden)
		}
	})
	defer server.Close()

	videos, err := client.Search(context.Background(), "golang", 10, "relevance")
	require.NoError(t, err)
	assert.Len(t, videos, 2)
	assert.Equal(t, "PT0M0S", videos[0].Duration)
}

func TestYouTubeSearchUpstreamError(t *testing.T) {
	client, server := newTestYouTubeClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	})
	defer server.Close()

	_, err := client.Search(context.Background(), "golang", 10, "relevance")
	require.Error(t, err)
}

func TestYouTubeGetVideo(t *testing.T) {
	client, server := newTestYouTubeClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "vid1", r.URL.Query().Get("id"))
		w.Write([]byte(videosJSON))
	})
	defer server.Close()

	video, err := client.GetVideo(context.Background(), "vid1")
	require.NoError(t, err)
	require.NotNil(t, video)
	assert.Equal(t, "vid1", video.VideoID)
	assert.Equal(t, "First Video", video.Title)
	assert.Equal(t, "PT5M30S", video.Duration)
	assert.Equal(t, int64(12345), video.ViewCount)
}

func TestYouTubeGetVideoNotFound(t *testing.T) {
	client, server := newTestYouTubeClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": []}`))
	})
	defer server.Close()

	video, err := client.GetVideo(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, video)
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, int64(12345), parseCount("12345"))
	assert.Equal(t, int64(0), parseCount(""))
	assert.Equal(t, int64(0), parseCount("abc"))
}

func TestTruncateDescription(t *testing.T) {
	short := "short description"
	assert.Equal(t, short, truncateDescription(short))

	long := strings.Repeat("中", 250)
	truncated := truncateDescription(long)
	assert.Equal(t, strings.Repeat("中", 200)+"...", truncated)
}
