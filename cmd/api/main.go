package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sakibmtatva/online-job-portal-be/config"
	_ "github.com/sakibmtatva/online-job-portal-be/docs" // Important for Swagger
	"github.com/sakibmtatva/online-job-portal-be/internal/bootstrap"
	"github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/middleware"
	v1 "github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/v1"
	"github.com/sakibmtatva/online-job-portal-be/pkg/auth"
	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"
	"github.com/sakibmtatva/online-job-portal-be/pkg/security"
)

// @title           Online Job Portal API
// @version         1.0
// @description     Application tracking, interview scheduling and notifications for the job portal.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job portal backend", "port", cfg.Port, "meeting_consistency", cfg.MeetingConsistency)

	secLog := security.NewSecurityLogger("job-portal-api", cfg.SecurityLogFile)
	defer secLog.Sync()

	// 3. Backends, repositories and usecases
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	app, err := bootstrap.New(startCtx, cfg)
	cancelStart()
	if err != nil {
		logger.Log.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if cfg.SecurityEventsPersist {
		secLog = secLog.WithPersistence(security.NewSecurityEventRepository(app.DB).PersistEvent)
	}

	// 4. Lifecycle sweeps
	sweepers := app.Sweepers()
	if cfg.SweepsEnabled {
		sweepers.Start()
	} else {
		logger.Log.Info("Lifecycle sweeps disabled")
	}

	// 5. Auth
	var jwks *auth.Provider
	if cfg.JWKSURL != "" {
		jwks = auth.NewProvider(cfg.JWKSURL)
	}

	// 6. Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:          app.AuthUC,
		JobUC:           app.JobUC,
		ColumnUC:        app.ColumnUC,
		ApplicationUC:   app.ApplicationUC,
		MeetingUC:       app.MeetingUC,
		NotificationUC:  app.NotificationUC,
		BookmarkUC:      app.BookmarkUC,
		HealthUC:        app.HealthUC,
		Auth:            middleware.AuthConfig{Secret: cfg.JWTSecret, JWKS: jwks},
		AllowedOrigins:  cfg.AllowedOrigins,
		Redis:           app.Redis,
		RateLimit:       cfg.RateLimitGlobalThreshold,
		RateLimitWindow: time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		SecurityLogger:  secLog,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	sweepers.Stop()
	app.Close(ctx)

	logger.Log.Info("Server exiting")
}
