package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jeonnam-stay/jeonnam-stay/internal/app/domain"
	"github.com/jeonnam-stay/jeonnam-stay/internal/app/domain/planner"
	"github.com/jeonnam-stay/jeonnam-stay/internal/app/flow"
)

// Setup registers all application routes on the router.
func Setup(r *gin.Engine, gen flow.Generator, logger *zap.Logger) {
	base := domain.NewBaseHandler(logger)
	registry := planner.NewControllerRegistry(gen, logger)
	h := planner.NewPlannerHandlers(base, registry)

	r.GET("/", h.ShowHomePage)
	r.POST("/analyze", h.StartAnalysis)
	r.GET("/analyze/status", h.AnalysisStatus)
	r.GET("/result", h.ShowResult)
	r.POST("/reset", h.Reset)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
