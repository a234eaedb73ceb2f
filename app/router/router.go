package router

import (
	"upflux-ai/app/handler"
	"upflux-ai/app/middleware"

	"github.com/gin-gonic/gin"
)

// Router Router
type Router struct {
	clusteringHandler   *handler.ClusteringHandler
	schedulingHandler   *handler.SchedulingHandler
	runHandler          *handler.RunHandler
	deviceStatusHandler *handler.DeviceStatusHandler
}

// NewRouter creates a new Router
func NewRouter(clusteringHandler *handler.ClusteringHandler, schedulingHandler *handler.SchedulingHandler, runHandler *handler.RunHandler, deviceStatusHandler *handler.DeviceStatusHandler) *Router {
	return &Router{
		clusteringHandler:   clusteringHandler,
		schedulingHandler:   schedulingHandler,
		runHandler:          runHandler,
		deviceStatusHandler: deviceStatusHandler,
	}
}

// Setup sets up routes
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger())

	// AI analysis interface
	ai := engine.Group("/ai")
	ai.Use(middleware.AuthMiddleware())
	{
		ai.POST("/clustering", r.clusteringHandler.Clustering)
		ai.POST("/scheduling", r.schedulingHandler.Scheduling)

		// Run history (only wired when history is enabled)
		if r.runHandler != nil {
			ai.GET("/runs/:run_id", r.runHandler.GetRun)
		}
	}

	// V1 API - device status reporting
	v1 := engine.Group("/v1")
	v1.Use(middleware.AuthMiddleware())
	{
		v1.POST("/devices/:device_uuid/status", r.deviceStatusHandler.ReportEvent)
		v1.GET("/devices/:device_uuid/status", r.deviceStatusHandler.GetStatus)
	}

	// Health check
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
