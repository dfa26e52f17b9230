package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ping answers liveness probes without touching the database.
func (a *API) Ping(c *gin.Context) {
	respondOK(c, gin.H{"message": "pong"})
}

// HealthCheck 提供部署平台与监控系统使用的健康检查端点。
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "database unreachable",
		})
		return
	}

	respondOK(c, gin.H{"status": "ok", "database": "up"})
}

// DashboardStats 返回后台首页的各类计数
func (a *API) DashboardStats(c *gin.Context) {
	stats, err := a.dashboard.Stats()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, stats)
}
