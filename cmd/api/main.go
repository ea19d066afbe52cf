package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	server "hotel_booking/internal/adapters/http_server"
	"hotel_booking/internal/adapters/identity"
	"hotel_booking/internal/adapters/observability"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/app"
	"hotel_booking/internal/catalog"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/shared"
	kvstore "hotel_booking/internal/storage/kv"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

func main() {
	// Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, observability.MetricsHandler(reg))

	// redis holds sessions and the query cache for every backend
	var rc *redis.Client
	if cfg.StoreBackend == "embedded" {
		c, closeFn, err := redisad.Embedded()
		if err != nil {
			log.Fatal().Err(err).Msg("embedded redis failed")
		}
		defer closeFn()
		rc = c
	} else {
		rc = redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		if err := rc.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
	}
	kv := redisad.NewKV(rc)

	var db *sql.DB
	if cfg.StoreBackend == "mysql" || cfg.CatalogSource == "mysql" {
		var err error
		db, err = sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
	}

	var bookings domain.BookingRepository = kvstore.NewBookingStore(kv)
	if cfg.StoreBackend == "mysql" {
		bookings = mysqlrepo.New(db)
	}

	var src domain.CatalogSource = catalog.Source{File: cfg.CatalogFile}
	if cfg.CatalogSource == "mysql" {
		src = mysqlrepo.New(db)
	}
	cat, err := app.LoadCatalog(ctx, src)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog load failed")
	}
	log.Info().Int("hotels", cat.Len()).Str("source", cfg.CatalogSource).Msg("catalog loaded")

	idp, err := identity.New(cfg.IdentityBase, cfg.IdentityTimeout, cfg.IdentityRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize identity client")
	}

	sessions := app.NewSessionService(idp, kv, cfg.SessionTTL)
	h := &server.Handlers{
		Q: app.NewQueryService(cat, redisad.NewCache(rc), cfg.CacheTTL),
		B: app.NewBookingService(bookings, cat),
		S: sessions,
	}

	srv := server.New(sessions)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.StoreBackend).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}
