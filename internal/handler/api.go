package handler

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jlousky/youtube-search-recommendation/internal/model"
	"github.com/jlousky/youtube-search-recommendation/internal/repository"
	"github.com/jlousky/youtube-search-recommendation/internal/service"
	"github.com/jlousky/youtube-search-recommendation/internal/utils"
)

// maxResultsParam 解析 max_results 查询参数，越界时回退默认值
func maxResultsParam(c *gin.Context) int {
	maxResults, err := strconv.Atoi(c.DefaultQuery("max_results", "25"))
	if err != nil || maxResults < 1 || maxResults > 50 {
		return service.DefaultMaxResults
	}
	return maxResults
}

// SearchAPI 个性化搜索
// GET /api/search?q=xxx&max_results=25
func (h *Handler) SearchAPI(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		utils.BadRequest(c, "搜索关键词不能为空")
		return
	}

	videos, err := h.SearchService.Search(c.Request.Context(), query, maxResultsParam(c))
	if err != nil {
		log.Printf("[SearchAPI] 搜索失败: %v", err)
		utils.InternalServerError(c, "搜索失败")
		return
	}

	utils.Success(c, gin.H{
		"query":  query,
		"videos": videos,
		"total":  len(videos),
	})
}

// VideoDetail 视频详情
// GET /api/videos/:id
func (h *Handler) VideoDetail(c *gin.Context) {
	videoID := c.Param("id")

	video, err := h.YouTube.GetVideo(c.Request.Context(), videoID)
	if err != nil {
		log.Printf("[VideoDetail] 获取视频详情失败: %v", err)
		utils.InternalServerError(c, "获取视频详情失败")
		return
	}
	if video == nil {
		utils.NotFound(c, "视频不存在")
		return
	}

	utils.Success(c, video)
}

// GetPreferences 读取完整偏好集合
// GET /api/preferences
func (h *Handler) GetPreferences(c *gin.Context) {
	prefs, err := h.Repos.Preference.Get()
	if err != nil {
		log.Printf("[GetPreferences] 读取偏好失败: %v", err)
		utils.InternalServerError(c, "读取偏好失败")
		return
	}
	utils.Success(c, prefs)
}

// UpdatePreferences 按键局部更新偏好
// POST /api/preferences
func (h *Handler) UpdatePreferences(c *gin.Context) {
	var partial map[string]json.RawMessage
	if err := c.ShouldBindJSON(&partial); err != nil {
		utils.BadRequest(c, "无效的请求数据")
		return
	}
	if len(partial) == 0 {
		utils.BadRequest(c, "未提供任何偏好键")
		return
	}

	prefs, err := h.Repos.Preference.UpdatePartial(partial)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidPreference) {
			utils.BadRequest(c, err.Error())
			return
		}
		log.Printf("[UpdatePreferences] 更新偏好失败: %v", err)
		utils.InternalServerError(c, "更新偏好失败")
		return
	}

	utils.SuccessWithMessage(c, "偏好已更新", prefs)
}

// ResetPreferences 恢复默认偏好
// POST /api/preferences/reset
func (h *Handler) ResetPreferences(c *gin.Context) {
	if err := h.Repos.Preference.Reset(); err != nil {
		log.Printf("[ResetPreferences] 重置偏好失败: %v", err)
		utils.InternalServerError(c, "重置偏好失败")
		return
	}
	utils.SuccessWithMessage(c, "偏好已重置", model.DefaultPreferences())
}

// InteractionReq 交互上报请求
type InteractionReq struct {
	VideoID string `json:"video_id" binding:"required"`
	Action  string `json:"action" binding:"required"`
	Query   string `json:"query"`
}

// RecordInteraction 上报交互并触发偏好学习
// POST /api/interactions
func (h *Handler) RecordInteraction(c *gin.Context) {
	var req InteractionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "video_id 和 action 不能为空")
		return
	}

	video, err := h.YouTube.GetVideo(c.Request.Context(), req.VideoID)
	if err != nil {
		log.Printf("[RecordInteraction] 获取视频详情失败: %v", err)
		utils.InternalServerError(c, "获取视频详情失败")
		return
	}
	if video == nil {
		utils.NotFound(c, "视频不存在")
		return
	}

	if err := h.Learner.RecordInteraction(video, req.Action, req.Query); err != nil {
		log.Printf("[RecordInteraction] 记录交互失败: %v", err)
		utils.InternalServerError(c, "记录交互失败")
		return
	}

	utils.SuccessWithMessage(c, "交互已记录", gin.H{
		"video_id": req.VideoID,
		"action":   req.Action,
		"learned":  model.IsLearnable(req.Action),
	})
}

// Trending 个性化热门
// GET /api/trending?max_results=25
func (h *Handler) Trending(c *gin.Context) {
	videos, err := h.SearchService.GetTrending(c.Request.Context(), maxResultsParam(c))
	if err != nil {
		log.Printf("[Trending] 获取热门失败: %v", err)
		utils.InternalServerError(c, "获取热门失败")
		return
	}
	utils.Success(c, gin.H{"videos": videos, "total": len(videos)})
}

// Recommendations 基于偏好的推荐
// GET /api/recommendations?max_results=25
func (h *Handler) Recommendations(c *gin.Context) {
	videos, err := h.SearchService.GetRecommendations(c.Request.Context(), maxResultsParam(c))
	if err != nil {
		log.Printf("[Recommendations] 获取推荐失败: %v", err)
		utils.InternalServerError(c, "获取推荐失败")
		return
	}
	utils.Success(c, gin.H{"videos": videos, "total": len(videos)})
}

// ChannelSearch 按频道搜索
// GET /api/channel/:name?max_results=25
func (h *Handler) ChannelSearch(c *gin.Context) {
	channelName := strings.TrimSpace(c.Param("name"))
	if channelName == "" {
		utils.BadRequest(c, "频道名不能为空")
		return
	}

	videos, err := h.SearchService.SearchByChannel(c.Request.Context(), channelName, maxResultsParam(c))
	if err != nil {
		log.Printf("[ChannelSearch] 频道搜索失败: %v", err)
		utils.InternalServerError(c, "频道搜索失败")
		return
	}
	utils.Success(c, gin.H{"channel": channelName, "videos": videos, "total": len(videos)})
}

// SearchHistory 最近搜索记录
// GET /api/history?limit=50
func (h *Handler) SearchHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		limit = 50
	}

	logs, err := h.Repos.SearchLog.ListRecent(limit)
	if err != nil {
		log.Printf("[SearchHistory] 获取搜索记录失败: %v", err)
		utils.InternalServerError(c, "获取搜索记录失败")
		return
	}
	utils.Success(c, logs)
}

// InteractionStats 交互统计
// GET /api/stats
func (h *Handler) InteractionStats(c *gin.Context) {
	stats, err := h.Repos.Interaction.Stats()
	if err != nil {
		log.Printf("[InteractionStats] 获取统计失败: %v", err)
		utils.InternalServerError(c, "获取统计失败")
		return
	}
	utils.Success(c, stats)
}

// TrendingKeywords 热搜关键词
// GET /api/trending-keywords?hours=24&limit=10
func (h *Handler) TrendingKeywords(c *gin.Context) {
	hours, err := strconv.Atoi(c.DefaultQuery("hours", "24"))
	if err != nil {
		hours = 24
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	keywords, err := h.Repos.SearchLog.GetTrending(hours, limit)
	if err != nil {
		log.Printf("[TrendingKeywords] 获取热搜关键词失败: %v", err)
		utils.InternalServerError(c, "获取热搜关键词失败")
		return
	}
	utils.Success(c, keywords)
}
