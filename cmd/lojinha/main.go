package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lojinha-dev/lojinha/db"
	"github.com/lojinha-dev/lojinha/internal/auth"
	"github.com/lojinha-dev/lojinha/internal/config"
	"github.com/lojinha-dev/lojinha/internal/handlers"
	"github.com/lojinha-dev/lojinha/internal/logger"
	"github.com/lojinha-dev/lojinha/internal/router"
	"github.com/lojinha-dev/lojinha/internal/scheduler"
	"github.com/lojinha-dev/lojinha/internal/services"
	"github.com/lojinha-dev/lojinha/internal/store"
	log "github.com/sirupsen/logrus"
)

func main() {
	var err error

	if err = godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	gdb, err := db.Open(db.Config{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DatabaseURL,
		Debug:        cfg.DBDebug,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(gdb)

	if err = db.MigrateDatabase(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	if err != nil {
		log.Fatalf("Failed to set up tokens: %v", err)
	}

	orderStore := store.NewOrderStore(gdb)
	feed := handlers.NewOrderFeed(cfg.Origins())
	reports := services.NewReportService(orderStore, store.NewReportStore(gdb), cfg.ReportsDir)

	// left nil when export is off so health omits the scheduler block
	var schedStatus handlers.SchedulerStatus

	if cfg.ReportSchedule != "" {
		sched := scheduler.NewScheduler(reports, services.NewNotifier(cfg.DiscordWebhookURL, cfg.SlackWebhookURL))

		if err = sched.Start(cfg.ReportSchedule); err != nil {
			log.Fatalf("Invalid REPORT_SCHEDULE %q: %v", cfg.ReportSchedule, err)
		}
		defer sched.Stop()

		schedStatus = sched
	}

	r := router.NewRouter(router.Dependencies{
		Tokens:   tokens,
		Auth:     services.NewAuthService(store.NewUserStore(gdb), tokens),
		Clients:  services.NewClientService(store.NewClientStore(gdb)),
		Products: services.NewProductService(store.NewProductStore(gdb)),
		Orders:   services.NewOrderService(orderStore, feed),
		Reports:  reports,
		Feed:     feed,
		Ping: func(ctx context.Context) error {
			return db.Ping(ctx, gdb, 2*time.Second)
		},
		Scheduler:      schedStatus,
		AllowedOrigins: cfg.Origins(),
		AuthRateLimit:  cfg.AuthRateLimit,
		AuthRateBurst:  cfg.AuthRateBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Listening on :%s", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}
}
