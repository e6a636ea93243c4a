package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/arabia-tkd/admin-api/api/swagger"
	"github.com/arabia-tkd/admin-api/internal/handler"
	"github.com/arabia-tkd/admin-api/internal/middleware"
	"github.com/arabia-tkd/admin-api/internal/pdf"
	"github.com/arabia-tkd/admin-api/internal/repository"
	"github.com/arabia-tkd/admin-api/internal/service"
	"github.com/arabia-tkd/admin-api/pkg/cache"
	"github.com/arabia-tkd/admin-api/pkg/config"
	"github.com/arabia-tkd/admin-api/pkg/database"
	"github.com/arabia-tkd/admin-api/pkg/logger"
	corsmiddleware "github.com/arabia-tkd/admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/arabia-tkd/admin-api/pkg/middleware/requestid"
)

// @title Arabia TKD Admin API
// @version 1.0.0
// @description Administrative backend for the Arabia Taekwon-Do school
// @BasePath /api
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
			cacheSvc = service.NewCacheService(nil, false, 0, logr, metricsSvc)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheSvc = service.NewCacheService(repository.NewRedisCacheRepository(redisClient), true, cfg.Cache.TTL, logr, metricsSvc)
		}
	} else {
		cacheSvc = service.NewCacheService(nil, false, 0, logr, metricsSvc)
	}

	studentRepo := repository.NewStudentRepository(db)
	eventRepo := repository.NewEventRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	rosterRepo := repository.NewRosterRepository(db)

	renderer := pdf.NewRenderer(pdf.Assets{
		RindeTemplatePath: cfg.Assets.RindeTemplatePath,
		LogoPath:          cfg.Assets.LogoPath,
		SecondaryLogoPath: cfg.Assets.SecondaryLogoPath,
	}, time.Now)

	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	eventSvc := service.NewEventService(eventRepo, cacheSvc, validate, logr)
	feeSvc := service.NewFeeService(feeRepo, studentRepo, validate, logr, time.Now, cfg.Fees.OverdueAfterDays)
	rosterSvc := service.NewRosterService(eventRepo, rosterRepo, logr)
	formSvc := service.NewExamFormService(eventRepo, studentRepo, renderer, metricsSvc, logr)

	studentHandler := handler.NewStudentHandler(studentSvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	feeHandler := handler.NewFeeHandler(feeSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc)
	formHandler := handler.NewExamFormHandler(formSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
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
		students := api.Group("/students")
		{
			students.GET("", studentHandler.List)
			students.POST("", studentHandler.Create)
			students.GET("/:id", studentHandler.Get)
			students.PUT("/:id", studentHandler.Update)
			students.DELETE("/:id", studentHandler.Delete)
		}

		events := api.Group("/events")
		{
			events.GET("", eventHandler.List)
			events.POST("", eventHandler.Create)
			events.GET("/:id", eventHandler.Get)
			events.DELETE("/:id", eventHandler.Delete)
		}

		fees := api.Group("/fees")
		{
			fees.GET("/:studentId", feeHandler.Status)
			fees.POST("/:studentId", feeHandler.RegisterPayment)
			fees.DELETE("/payments/:paymentId", feeHandler.DeletePayment)
		}

		api.DELETE("/admin/fees", feeHandler.ClearAll)

		exams := api.Group("/exams/:id")
		{
			exams.GET("/roster", rosterHandler.Get)
			exams.PUT("/roster", rosterHandler.Set)
			exams.POST("/inscription-pdf", formHandler.Inscription)
			exams.POST("/evaluation-pdf", formHandler.Evaluation)
			exams.POST("/rinde-pdf", formHandler.Rinde)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
