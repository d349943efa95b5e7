package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pmo-review-api/config"
	"pmo-review-api/controllers"
	"pmo-review-api/middleware"
	"pmo-review-api/models"
	"pmo-review-api/monitor"
	"pmo-review-api/routes"
	"pmo-review-api/services"
	"pmo-review-api/summary"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	logger, flush := config.InitLogging(cfg.IsProduction())
	defer flush()

	if len(cfg.JWTSecret()) == 0 {
		logger.Fatal("JWT_SECRET is not set")
	}

	// The pool connects on first use so the API can start before MySQL is up.
	pool := config.NewDBPool(cfg.Database(), config.LogWriter, cfg.IsProduction(), cfg.DebugSQL())
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("failed to close database pool", zap.Error(err))
		}
	}()

	users := services.NewUserService(pool)
	reviews := services.NewReviewService(pool)
	metrics := monitor.NewMetrics()

	gemini := cfg.Gemini()
	generator := summary.NewGeminiClient(cfg.GeminiAPIKey, summary.GeminiOptions{
		Model:      gemini.Model,
		BaseURL:    gemini.BaseURL,
		APIVersion: gemini.APIVersion,
		Timeout:    gemini.Timeout,
	}, logger)
	summarizer := summary.NewService(reviews, generator, logger).WithObserver(metrics)
	if err := generator.Configured(); err != nil {
		logger.Warn("report summaries disabled until the key is set", zap.Error(err))
	}

	if cfg.GinMode() == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(config.LogWriter))
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins()))
	router.Use(middleware.RequestMetrics(metrics))

	// Register /logs and /metrics before the API routes
	monitor.RegisterMonitorPage(router)
	monitor.RegisterLogsRoute(router, cfg.MonitorToken(), config.LogFilePath())
	monitor.RegisterMetricsRoute(router, metrics)

	routes.SetupRoutes(router, middleware.AuthMiddleware(cfg.JWTSecret(), users), routes.Controllers{
		Auth:        controllers.NewAuthController(users, cfg.JWTSecret(), cfg.JWTLifetime()),
		Zones:       controllers.NewReferenceController[models.Zone](services.NewZoneService(pool), "Zone"),
		Departments: controllers.NewReferenceController[models.Department](services.NewDepartmentService(pool), "Department"),
		Questions:   controllers.NewQuestionController(services.NewQuestionService(pool)),
		Reviews:     controllers.NewReviewController(reviews),
		Reports:     controllers.NewReportController(summarizer, config.NewMailer(cfg.SMTP()), logger),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.ServerPort()),
			zap.Bool("production", cfg.IsProduction()),
			zap.String("gemini", generator.Name()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	// Summaries can hold a request open for the whole Gemini timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gemini.Timeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
