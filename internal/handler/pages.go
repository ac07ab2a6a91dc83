package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home 搜索首页
func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"SiteName": h.Config.SiteName,
	})
}
