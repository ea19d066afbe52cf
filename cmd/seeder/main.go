package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/app"
	"hotel_booking/internal/catalog"
	"hotel_booking/internal/shared"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

// seeder copies the hotel catalog (embedded or CATALOG_FILE) into MySQL so the
// API can run with CATALOG_SOURCE=mysql.
func main() {
	file := flag.String("file", "", "catalog JSON file (defaults to CATALOG_FILE, then the embedded catalog)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if *file == "" {
		*file = cfg.CatalogFile
	}
	hotels, err := catalog.Source{File: *file}.LoadAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog load failed")
	}
	log.Info().Int("hotels", len(hotels)).Int("workers", cfg.SeedWorkers).Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	ok, failed, err := app.NewSeedService(mysqlrepo.New(db), cfg.SeedWorkers).SeedHotels(ctx, hotels)
	if err != nil {
		log.Error().Err(err).Int("ok", ok).Int("failed", failed).Msg("seeding interrupted")
		os.Exit(1)
	}
	log.Info().Int("ok", ok).Int("failed", failed).Msg("seeding completed")
	if failed > 0 {
		os.Exit(1)
	}
}
