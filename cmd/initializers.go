package main

import (
	"fmt"
	"net/http"
	"time"

	"upflux-ai/app/handler"
	"upflux-ai/app/router"
	"upflux-ai/internal/service"
	"upflux-ai/pkg/config"
	"upflux-ai/pkg/logger"
	redisstore "upflux-ai/pkg/store/redis"

	"github.com/gin-gonic/gin"
)

// initConfig initializes configuration
func (app *Application) initConfig() error {
	if err := config.Init(); err != nil {
		return err
	}
	app.config = config.GlobalConfig
	return nil
}

// initLogger initializes logging
func (app *Application) initLogger() error {
	if err := logger.Init(); err != nil {
		return err
	}
	app.registerCleanup(func() {
		logger.Sync()
	})
	return nil
}

// initRedis initializes Redis and the run/status repository. Redis is
// optional: without it the repository runs memory-only.
func (app *Application) initRedis() error {
	ttl := time.Duration(app.config.History.TTLMinutes) * time.Minute

	if !app.config.Redis.Enabled {
		logger.InfoCtx(app.ctx, "Redis disabled, using in-memory store")
		app.repository = redisstore.NewRepository(nil, ttl)
		return nil
	}

	client, err := redisstore.NewRedisClient(app.config)
	if err != nil {
		return err
	}

	app.redisClient = client
	app.repository = redisstore.NewRepository(client.GetClient(), ttl)
	app.registerCleanup(func() {
		client.Close()
		logger.InfoCtx(app.ctx, "Redis connection has been closed")
	})

	return nil
}

// initHTTPServer initializes services, handlers and the HTTP server
func (app *Application) initHTTPServer() error {
	historyStore := app.repository
	if !app.config.History.Enabled {
		historyStore = nil
	}

	clusteringService := service.NewClusteringService(app.config.Clustering, historyStore)
	schedulingService := service.NewSchedulingService(app.config.Scheduling, historyStore)
	statusService := service.NewDeviceStatusService(app.repository)

	clusteringHandler := handler.NewClusteringHandler(clusteringService)
	schedulingHandler := handler.NewSchedulingHandler(schedulingService)
	var runHandler *handler.RunHandler
	if historyStore != nil {
		runHandler = handler.NewRunHandler(historyStore)
	}
	deviceStatusHandler := handler.NewDeviceStatusHandler(statusService)

	if app.config.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	app.ginEngine = gin.New()
	r := router.NewRouter(clusteringHandler, schedulingHandler, runHandler, deviceStatusHandler)
	r.Setup(app.ginEngine)

	app.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: app.ginEngine,
	}

	return nil
}
