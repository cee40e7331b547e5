// Command seed creates the database tables and loads the sample bakery
// catalog into an empty products table.
package main

import (
	"context"
	"flag"

	"github.com/doughreme/bakery-api/config"
	"github.com/doughreme/bakery-api/database"
	log "github.com/sirupsen/logrus"
)

func main() {
	envFile := flag.String("env", ".env", "path to the .env file")
	migrateOnly := flag.Bool("migrate-only", false, "create tables and exit without seeding")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("❌ Failed to load settings: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Warn("close database")
		}
	}()

	log.Info("Creating database tables...")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	log.Info("✅ Tables created")

	if *migrateOnly {
		return
	}

	n, err := database.Seed(context.Background(), db)
	if err != nil {
		// The insert was rolled back; keep the tables and report.
		log.WithError(err).Error("❌ Error seeding data")
		return
	}
	if n > 0 {
		log.WithField("count", n).Info("✅ Sample products added")
	}
}
