package router

import (
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/jlousky/youtube-search-recommendation/internal/handler"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 页面 ====================
	r.GET("/", h.Home)

	// ==================== JSON API ====================
	api := r.Group("/api")
	{
		api.GET("/search", h.SearchAPI)
		api.GET("/videos/:id", h.VideoDetail)
		api.GET("/channel/:name", h.ChannelSearch)
		api.GET("/trending", h.Trending)
		api.GET("/recommendations", h.Recommendations)

		// 偏好管理
		api.GET("/preferences", h.GetPreferences)
		api.POST("/preferences", h.UpdatePreferences)
		api.POST("/preferences/reset", h.ResetPreferences)

		// 交互上报与统计
		api.POST("/interactions", h.RecordInteraction)
		api.GET("/history", h.SearchHistory)
		api.GET("/stats", h.InteractionStats)
		api.GET("/trending-keywords", h.TrendingKeywords)
	}
}

// LoadTemplates 使用 multitemplate 加载模板
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	partials, err := filepath.Glob(templatesDir + "/partials/*.html")
	if err != nil {
		panic(err)
	}

	// 组装模板文件列表
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, view)
		return files
	}

	// 模板函数
	funcMap := template.FuncMap{
		"default": func(defaultValue, value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				if v == "" {
					return defaultValue
				}
			case nil:
				return defaultValue
			}
			return value
		},
	}

	pages := []string{"home"}
	for _, page := range pages {
		viewPath := templatesDir + "/pages/" + page + ".html"
		r.AddFromFilesFuncs(page+".html", funcMap, assemble(viewPath)...)
	}

	return r
}
