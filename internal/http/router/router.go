package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"radbytes.org/pulse/internal/http/dto"
	"radbytes.org/pulse/internal/http/handler"
	"radbytes.org/pulse/internal/service"
)

type RouterConfig struct {
	// ExposeMetrics mounts /metrics on the API router. The worker serves its own.
	ExposeMetrics bool
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) error {
	if err := dto.RegisterValidators(); err != nil {
		return err
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if cfg.ExposeMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		UserRouter(v1.Group("/users"),
			handler.NewUserHandler(services.Users()),
			handler.NewChatHandler(services.Chats()),
			handler.NewPlanHandler(services.Plans()),
			handler.NewFeedbackRunHandler(services.FeedbackRuns()),
		)

		FeedbackRunRouter(v1.Group("/feedback-runs"), handler.NewFeedbackRunHandler(services.FeedbackRuns()))
		PlanRouter(v1.Group("/plans"), handler.NewPlanHandler(services.Plans()))
	}
	return nil
}
