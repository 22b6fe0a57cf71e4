package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kng194/kng-rnd/config"
	"github.com/kng194/kng-rnd/internal/api/handler"
	"github.com/kng194/kng-rnd/internal/api/middleware"
	"github.com/kng194/kng-rnd/pkg/redis"
	"github.com/kng194/kng-rnd/pkg/response"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil：此时 AI 助手不限流
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		v1.GET("/dashboard", h.Project.Dashboard)

		// 项目模块
		projects := v1.Group("/projects")
		{
			projects.POST("", h.Project.Create)
			projects.GET("/:id", h.Project.Detail)
			projects.PUT("/:id/status", h.Project.UpdateStatus)
			projects.POST("/:id/logs", h.Project.AddLog)
			projects.GET("/:id/export", h.Project.Export)
			projects.GET("/:id/calendar.ics", h.Project.Calendar)
		}

		// 材料库
		v1.GET("/materials", h.Material.List)

		// 成员模块
		crews := v1.Group("/crews")
		{
			crews.GET("", h.Crew.List)
			crews.GET("/form-defaults", h.Crew.FormDefaults)
			crews.GET("/:id", h.Crew.Get)
			crews.POST("", h.Crew.Create)
			crews.PUT("/:id", h.Crew.Update)
			crews.DELETE("/:id", h.Crew.Delete)
			crews.POST("/photo", h.Crew.UploadPhoto)
		}

		// AI 助手
		assistant := v1.Group("/assistant")
		{
			assistant.POST("/ask",
				middleware.RateLimit(rdb, cfg.Chat.RateLimit, cfg.Chat.RateWindow, logger),
				h.Assistant.Ask,
			)
			assistant.GET("/last", h.Assistant.Last)
		}
	}

	// 未实现的页面统一返回占位提示
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, 10006, "Halaman sedang dikembangkan")
	})

	return r
}
