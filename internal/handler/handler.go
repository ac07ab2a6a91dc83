package handler

import (
	"github.com/jlousky/youtube-search-recommendation/internal/config"
	"github.com/jlousky/youtube-search-recommendation/internal/repository"
	"github.com/jlousky/youtube-search-recommendation/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos         *repository.Repositories
	Config        *config.Config
	YouTube       service.VideoSource
	SearchService *service.SearchService
	Learner       *service.Learner
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	// 创建 YouTube 客户端
	youtube := service.NewYouTubeClient(cfg)

	// 创建搜索服务和偏好学习引擎
	searchService := service.NewSearchService(youtube, repos.Preference, repos.SearchLog)
	learner := service.NewLearner(repos.Preference, repos.Interaction)

	return &Handler{
		Repos:         repos,
		Config:        cfg,
		YouTube:       youtube,
		SearchService: searchService,
		Learner:       learner,
	}
}
