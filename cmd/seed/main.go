package main

import (
	"context"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/shaadibazaarhub/marketplace-api/config"
	"github.com/shaadibazaarhub/marketplace-api/internal/seed"
	"github.com/shaadibazaarhub/marketplace-api/pkg/database"
	"github.com/shaadibazaarhub/marketplace-api/pkg/logger"
)

func main() {
	file := flag.String("file", "", "YAML fixture file (defaults to the embedded sample data)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl := logger.New(logger.Options{Production: cfg.IsProduction(), Level: cfg.LogLevel})
	defer zl.Sync()

	data := seed.DefaultFixtures
	if *file != "" {
		if data, err = os.ReadFile(*file); err != nil {
			zl.Fatal("read fixtures", zap.Error(err))
		}
	}
	fx, err := seed.Parse(data)
	if err != nil {
		zl.Fatal("parse fixtures", zap.Error(err))
	}

	dsn := cfg.DSN()
	if cfg.DBDriver == database.DriverSQLite {
		dsn = cfg.SQLitePath
	}
	db, err := database.Open(database.Options{Driver: cfg.DBDriver, DSN: dsn})
	if err != nil {
		zl.Fatal("open database", zap.Error(err))
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		zl.Fatal("migrate database", zap.Error(err))
	}

	summary, err := seed.Apply(context.Background(), db, fx, zl)
	if err != nil {
		zl.Fatal("seed", zap.Error(err))
	}
	zl.Info("seed complete",
		zap.Int("accounts", summary.Accounts),
		zap.Int("services", summary.Services),
		zap.Int("bookings", summary.Bookings),
	)
}
