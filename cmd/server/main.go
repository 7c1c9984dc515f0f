package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"tourops/internal/app"
	"tourops/internal/config"
	"tourops/internal/email"
	"tourops/internal/handler"
	internalRedis "tourops/internal/redis"
	"tourops/internal/repository/postgres"
	"tourops/internal/service"
	"tourops/internal/storage"
	"tourops/internal/voucher"
)

func main() {
	// Load .env if present, then configuration.
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Optional voucher archive; delivery works without it.
	var archive *storage.VoucherArchive
	if cfg.Storage.Bucket != "" {
		archive, err = storage.NewVoucherArchive(ctx, cfg.Storage.Region, cfg.Storage.Bucket)
		if err != nil {
			log.Printf("voucher archive disabled: %v", err)
			archive = nil
		} else {
			log.Printf("Voucher archive enabled: bucket=%s", cfg.Storage.Bucket)
		}
	}

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, archive, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, archive *storage.VoucherArchive, cfg *config.Config) *http.Server {
	// Initialize Redis cache.
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	reservationRepo := postgres.NewReservationRepository(db)
	guideRepo := postgres.NewGuideRepository(db)
	agencyRepo := postgres.NewAgencyRepository(db)
	feedbackRepo := postgres.NewFeedbackRepository(db)

	// Initialize services.
	notificationService := service.NewNotificationService()
	reservationService := service.NewReservationService(reservationRepo, cacheStore, notificationService)
	feedbackService := service.NewFeedbackService(feedbackRepo, reservationService, notificationService)

	// Optional voucher delivery by e-mail.
	var mailer *email.Client
	if cfg.SMTP.Host != "" {
		mailer = email.NewClient(
			cfg.SMTP.Host, cfg.SMTP.Port,
			cfg.SMTP.User, cfg.SMTP.Password,
			cfg.SMTP.FromName, cfg.SMTP.FromEmail,
		)
	}

	company := voucher.CompanyInfo{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
		TaxID:   cfg.Company.TaxID,
	}

	// Initialize handlers.
	reservationHandler := handler.NewReservationHandler(reservationService)
	voucherHandler := handler.NewVoucherHandler(reservationService, company, mailer, archive, notificationService)
	guideHandler := handler.NewGuideHandler(guideRepo)
	agencyHandler := handler.NewAgencyHandler(agencyRepo)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, feedbackRepo)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		ReservationHandler: reservationHandler,
		VoucherHandler:     voucherHandler,
		GuideHandler:       guideHandler,
		AgencyHandler:      agencyHandler,
		FeedbackHandler:    feedbackHandler,
		RedisClient:        redisClient,
		NewRelicApp:        nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
