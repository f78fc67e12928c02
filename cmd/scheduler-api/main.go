package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/trainhub/scheduler-api/api/swagger"
	"github.com/trainhub/scheduler-api/internal/handler"
	"github.com/trainhub/scheduler-api/internal/middleware"
	"github.com/trainhub/scheduler-api/internal/repository"
	"github.com/trainhub/scheduler-api/internal/service"
	"github.com/trainhub/scheduler-api/pkg/cache"
	"github.com/trainhub/scheduler-api/pkg/config"
	"github.com/trainhub/scheduler-api/pkg/database"
	"github.com/trainhub/scheduler-api/pkg/logger"
	corsmiddleware "github.com/trainhub/scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/trainhub/scheduler-api/pkg/middleware/requestid"
)

// @title TrainHub Scheduler API
// @version 1.0.0
// @description Trainer and TA scheduling backend: task CRUD, reconciled day
// @description schedules, calendar exports and bulk imports.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// Schedule caching is an optimisation; the API stays up without it.
		logr.Sugar().Warnw("redis unavailable, schedule caching disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	taskRepo := repository.NewTaskRepository(db)
	trainerRepo := repository.NewTrainerRepository(db)
	collegeRepo := repository.NewCollegeRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	taskSvc := service.NewTaskService(taskRepo, cacheRepo, validate, logr)
	trainerSvc := service.NewTrainerService(trainerRepo, validate, logr)
	collegeSvc := service.NewCollegeService(collegeRepo)
	scheduleSvc := service.NewScheduleService(taskRepo, trainerRepo, collegeRepo, cacheRepo, metrics, cfg.Schedule, logr)
	exportSvc := service.NewExportService(taskRepo, trainerRepo, collegeRepo, nil, nil, metrics, cfg.Export, logr)
	importSvc := service.NewImportService(taskRepo, cacheRepo, metrics, cfg.Import, logr)

	taskHandler := handler.NewTaskHandler(taskSvc)
	trainerHandler := handler.NewTrainerHandler(trainerSvc)
	collegeHandler := handler.NewCollegeHandler(collegeSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	importHandler := handler.NewImportHandler(importSvc, cfg.Import.MaxFileSizeBytes)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.List)
			tasks.POST("", taskHandler.Create)
			tasks.GET("/:id", taskHandler.Get)
			tasks.PUT("/:id", taskHandler.Update)
			tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
			tasks.DELETE("/:id", taskHandler.Delete)
		}

		trainers := api.Group("/trainers")
		{
			trainers.GET("", trainerHandler.List)
			trainers.GET("/:id", trainerHandler.Get)
			trainers.PUT("/:id", trainerHandler.UpdateProfile)
		}

		colleges := api.Group("/colleges")
		{
			colleges.GET("", collegeHandler.List)
			colleges.GET("/:id", collegeHandler.Get)
		}

		api.GET("/schedule/day", scheduleHandler.Day)
		api.GET("/calendar", scheduleHandler.Calendar)
		api.GET("/exports/calendar", exportHandler.Calendar)

		imports := api.Group("/imports")
		{
			imports.POST("/events", importHandler.Events)
			imports.POST("/spreadsheet", importHandler.Spreadsheet)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
