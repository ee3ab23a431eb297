package router

import (
	"sweep-lab/internal/handler"
	"sweep-lab/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *service.ServiceContext) *gin.Engine {
	r := gin.Default()

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// 初始化handlers
	extractHandler := handler.NewExtractHandler()
	sweepHandler := handler.NewSweepHandler(cfg)
	extractionLogHandler := handler.NewExtractionLogHandler()

	// API路由
	api := r.Group("/api")
	{
		// 提取相关
		extract := api.Group("/extract")
		{
			extract.POST("", extractHandler.Extract)
			extract.POST("/intent", extractHandler.CheckIntent)
		}

		// 扫参任务相关
		sweeps := api.Group("/sweeps")
		{
			sweeps.POST("", sweepHandler.CreateSweep)
			sweeps.POST("/from-prompt", sweepHandler.CreateSweepFromPrompt)
			sweeps.GET("", sweepHandler.ListSweeps)
			sweeps.GET("/:id", sweepHandler.GetSweep)
			sweeps.DELETE("/:id", sweepHandler.DeleteSweep)
			sweeps.GET("/:id/runs", sweepHandler.ListSweepRuns)
			sweeps.GET("/:id/stats", sweepHandler.GetSweepStats)
			sweeps.GET("/:id/summary", sweepHandler.GetSweepSummary)
		}

		// 提取审计记录
		extractions := api.Group("/extractions")
		{
			extractions.GET("", extractionLogHandler.ListExtractions)
			extractions.GET("/:id", extractionLogHandler.GetExtraction)
			extractions.DELETE("/:id", extractionLogHandler.DeleteExtraction)
		}
	}

	return r
}
