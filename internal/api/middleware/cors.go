package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// 仪表盘前端需要发送与读取的自定义头
const (
	corsAllowHeaders  = "Content-Type, " + chatSessionHeader + ", " + requestIDHeader
	corsExposeHeaders = "Content-Disposition, " + requestIDHeader + ", Retry-After"
)

// CORS 仅放行配置中的仪表盘前端来源（server.cors.allow_origins）。
// 导出下载依赖 Content-Disposition 取文件名，因此需要 Expose。
func CORS(allowOrigins []string) gin.HandlerFunc {
	origins := make(map[string]bool, len(allowOrigins))
	for _, o := range allowOrigins {
		origins[strings.TrimRight(o, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origins[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
			c.Header("Access-Control-Expose-Headers", corsExposeHeaders)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
