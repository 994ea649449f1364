package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jengzang/pace-analyzer/internal/config"
	"github.com/jengzang/pace-analyzer/internal/handler"
	"github.com/jengzang/pace-analyzer/internal/metrics"
	"github.com/jengzang/pace-analyzer/internal/middleware"
	"github.com/jengzang/pace-analyzer/internal/service"
)

// Deps are the collaborators the router wires into handlers
type Deps struct {
	Runs     *service.RunService
	Profiles *service.ProfileService
	Metrics  *metrics.Metrics
	Logger   logrus.FieldLogger
}

// SetupRouter 设置路由. Background goroutines started here stop with ctx.
func SetupRouter(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Pace Analyzer API is running",
		})
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	runHandler := handler.NewRunHandler(deps.Runs, cfg.MaxUploadBytes)
	profileHandler := handler.NewProfileHandler(deps.Profiles)
	limiter := middleware.NewRateLimiter(ctx, cfg.RateLimit, cfg.RateWindow)

	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.JWTSecret))
	{
		runs := api.Group("/runs")
		{
			runs.POST("/analyze", middleware.RateLimit(limiter), runHandler.Analyze)
			runs.GET("", runHandler.ListRuns)
			runs.GET("/:id", runHandler.GetRun)
			runs.DELETE("/:id", runHandler.DeleteRun)
		}

		profile := api.Group("/profile")
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
		}
	}

	return r
}
