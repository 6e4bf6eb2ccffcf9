package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"plantya-platform/internal/core/config"
	"plantya-platform/internal/core/server"
	mdw "plantya-platform/internal/transport/http/middleware"
	resp "plantya-platform/internal/transport/http/response"
)

// base 两个 engine 共用的中间件链与 /health、/metrics
func base(l *zap.Logger, db *gorm.DB, h config.HTTP) *gin.Engine {
	r := server.NewRouter(l)
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(h.RateLimitRPS), h.RateLimitBurst),
		mdw.ConcurrencyLimit(h.MaxConcurrent),
		mdw.MaxBodyBytes(int64(h.MaxBodyMB)<<20),
		mdw.Timeout(time.Duration(h.HandlerTimeoutSec)*time.Second),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)
	r.NoRoute(func(c *gin.Context) {
		resp.Abort(c, http.StatusNotFound, resp.CodeRouteNotFound, "no route for "+c.Request.Method+" "+c.Request.URL.Path)
	})

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			l.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": 0})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
