package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jlousky/youtube-search-recommendation/internal/config"
	"github.com/jlousky/youtube-search-recommendation/internal/model"
	"github.com/jlousky/youtube-search-recommendation/internal/utils"
)

// YouTubeClient YouTube Data API v3 客户端
type YouTubeClient struct {
	apiKey  string
	baseURL string
	client  *utils.HTTPClient
}

// NewYouTubeClient 创建 YouTube API 客户端
func NewYouTubeClient(cfg *config.Config) *YouTubeClient {
	return &YouTubeClient{
		apiKey:  cfg.YouTubeAPIKey,
		baseURL: cfg.YouTubeAPIURL,
		client:  utils.NewHTTPClient(15 * time.Second),
	}
}

type ytThumbnails struct {
	Medium struct {
		URL string `json:"url"`
	} `json:"medium"`
	Maxres struct {
		URL string `json:"url"`
	} `json:"maxres"`
}

type ytSnippet struct {
	Title        string       `json:"title"`
	ChannelID    string       `json:"channelId"`
	ChannelTitle string       `json:"channelTitle"`
	Description  string       `json:"description"`
	PublishedAt  string       `json:"publishedAt"`
	Thumbnails   ytThumbnails `json:"thumbnails"`
	CategoryID   string       `json:"categoryId"`
	Tags         []string     `json:"tags"`
}

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet ytSnippet `json:"snippet"`
	} `json:"items"`
}

type ytVideoItem struct {
	ID         string    `json:"id"`
	Snippet    ytSnippet `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

type ytVideosResponse struct {
	Items []ytVideoItem `json:"items"`
}

// Search 搜索视频并补全统计信息
func (c *YouTubeClient) Search(ctx context.Context, query string, maxResults int, order string) ([]model.Video, error) {
	params := url.Values{}
	params.Set("part", "id,snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("order", order)
	params.Set("key", c.apiKey)

	var result ytSearchResponse
	if err := c.client.GetJSON(ctx, c.baseURL+"/search?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("YouTube 搜索请求失败: %w", err)
	}

	videos := make([]model.Video, 0, len(result.Items))
	videoIDs := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		videoIDs = append(videoIDs, item.ID.VideoID)
		videos = append(videos, model.Video{
			VideoID:     item.ID.VideoID,
			Title:       item.Snippet.Title,
			Channel:     item.Snippet.ChannelTitle,
			ChannelID:   item.Snippet.ChannelID,
			Description: truncateDescription(item.Snippet.Description),
			PublishedAt: item.Snippet.PublishedAt,
			Thumbnail:   item.Snippet.Thumbnails.Medium.URL,
			URL:         watchURL(item.ID.VideoID),
			Duration:    "PT0M0S",
		})
	}

	// 补全播放量、点赞等统计字段（失败不影响搜索结果本身）
	if len(videoIDs) > 0 {
		if err := c.addStatistics(ctx, videos, videoIDs); err != nil {
			log.Printf("[YouTube] 补全视频统计信息失败: %v", err)
		}
	}

	return videos, nil
}

// GetVideo 获取单个视频的完整详情，不存在时返回 nil
func (c *YouTubeClient) GetVideo(ctx context.Context, videoID string) (*model.Video, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", videoID)
	params.Set("key", c.apiKey)

	var result ytVideosResponse
	if err := c.client.GetJSON(ctx, c.baseURL+"/videos?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("获取视频详情失败: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, nil
	}

	item := result.Items[0]
	video := &model.Video{
		VideoID:      videoID,
		Title:        item.Snippet.Title,
		Channel:      item.Snippet.ChannelTitle,
		ChannelID:    item.Snippet.ChannelID,
		Description:  item.Snippet.Description,
		PublishedAt:  item.Snippet.PublishedAt,
		Thumbnail:    item.Snippet.Thumbnails.Maxres.URL,
		URL:          watchURL(videoID),
		Duration:     item.ContentDetails.Duration,
		ViewCount:    parseCount(item.Statistics.ViewCount),
		LikeCount:    parseCount(item.Statistics.LikeCount),
		CommentCount: parseCount(item.Statistics.CommentCount),
		CategoryID:   item.Snippet.CategoryID,
		Tags:         item.Snippet.Tags,
	}
	if video.Duration == "" {
		video.Duration = "PT0M0S"
	}
	return video, nil
}

// addStatistics 批量查询统计信息并合并到搜索结果
func (c *YouTubeClient) addStatistics(ctx context.Context, videos []model.Video, videoIDs []string) error {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", strings.Join(videoIDs, ","))
	params.Set("key", c.apiKey)

	var result ytVideosResponse
	if err := c.client.GetJSON(ctx, c.baseURL+"/videos?"+params.Encode(), &result); err != nil {
		return err
	}

	statsMap := make(map[string]ytVideoItem, len(result.Items))
	for _, item := range result.Items {
		statsMap[item.ID] = item
	}

	for i := range videos {
		item, ok := statsMap[videos[i].VideoID]
		if !ok {
			continue
		}
		videos[i].ViewCount = parseCount(item.Statistics.ViewCount)
		videos[i].LikeCount = parseCount(item.Statistics.LikeCount)
		videos[i].CommentCount = parseCount(item.Statistics.CommentCount)
		videos[i].CategoryID = item.Snippet.CategoryID
		if item.ContentDetails.Duration != "" {
			videos[i].Duration = item.ContentDetails.Duration
		}
	}
	return nil
}

// parseCount YouTube API 的统计值是字符串，解析失败按 0 处理
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// truncateDescription 搜索结果的描述截断到 200 字符
func truncateDescription(desc string) string {
	runes := []rune(desc)
	if len(runes) > 200 {
		return string(runes[:200]) + "..."
	}
	return desc
}
