package service

import (
	"log"
	"time"

	"github.com/jlousky/youtube-search-recommendation/internal/repository"
)

// 日志保留天数
const (
	searchLogRetentionDays   = 90
	interactionRetentionDays = 180
	keywordRetentionDays     = 30
)

// CleanupService 清理服务
type CleanupService struct {
	repos *repository.Repositories
}

// NewCleanupService 创建清理服务
func NewCleanupService(repos *repository.Repositories) *CleanupService {
	return &CleanupService{repos: repos}
}

// Start 启动定时清理任务
func (s *CleanupService) Start() {
	ticker := time.NewTicker(24 * time.Hour)

	// 启动时先运行一次
	go s.runCleanup()

	go func() {
		for range ticker.C {
			s.runCleanup()
		}
	}()
}

func (s *CleanupService) runCleanup() {
	log.Println("[CleanupService] 开始清理过期数据...")

	// 1. 清理过期搜索日志
	affected, err := s.repos.SearchLog.DeleteOldLogs(searchLogRetentionDays)
	if err != nil {
		log.Printf("[CleanupService] 清理搜索日志失败: %v", err)
	} else if affected > 0 {
		log.Printf("[CleanupService] 已清理 %d 条过期搜索日志", affected)
	}

	// 2. 清理长期未被搜索的热搜关键词
	cleanedKeywords, err := s.repos.SearchLog.DeleteOldKeywords(keywordRetentionDays)
	if err != nil {
		log.Printf("[CleanupService] 清理旧热搜关键词失败: %v", err)
	} else if cleanedKeywords > 0 {
		log.Printf("[CleanupService] 已清理 %d 条超过 %d 天未搜索的热搜关键词", cleanedKeywords, keywordRetentionDays)
	}

	// 3. 清理过期交互记录（偏好已经吸收过这些交互，原始记录只用于统计）
	cleanedInteractions, err := s.repos.Interaction.DeleteOld(interactionRetentionDays)
	if err != nil {
		log.Printf("[CleanupService] 清理交互记录失败: %v", err)
	} else if cleanedInteractions > 0 {
		log.Printf("[CleanupService] 已清理 %d 条过期交互记录", cleanedInteractions)
	}
}
