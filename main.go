package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/doughreme/bakery-api/config"
	"github.com/doughreme/bakery-api/database"
	"github.com/doughreme/bakery-api/routes"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	log "github.com/sirupsen/logrus"

	ordercontroller "github.com/doughreme/bakery-api/controllers/order"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("❌ Failed to load settings: %v", err)
	}
	setupLogging(cfg)
	log.Infof("✅ Starting %s...", cfg.AppName)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}

	// Create tables that do not exist yet
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	hub := ordercontroller.NewHub()
	r := routes.NewRouter(cfg, db, hub)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Infof("🚀 Server running on %s...", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// One operation so the pool closes only after requests drain.
			"http-server": func(ctx context.Context) error {
				log.Info("🛑 Graceful shutdown initiated...")
				hub.Close()
				if err := srv.Shutdown(ctx); err != nil {
					return err
				}
				return database.Close(db)
			},
		},
	)

	exitCode := <-wait
	log.Infof("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func setupLogging(cfg *config.Settings) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("⚠️ Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(cfg.LogFormat, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
