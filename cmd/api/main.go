package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "staybook/internal/adapters/http_server"
	"staybook/internal/adapters/kafka"
	"staybook/internal/adapters/observability"
	redisad "staybook/internal/adapters/redis"
	"staybook/internal/app"
	"staybook/internal/availability"
	"staybook/internal/domain"
	"staybook/internal/shared"
	mysqlrepo "staybook/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	repo := mysqlrepo.New(db)

	// availability index is an in-memory projection; rebuild it from the
	// durable store before accepting traffic
	index := availability.New()
	holds, err := repo.ListActiveHolds(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("loading active holds failed")
	}
	index.Rebuild(holds)
	log.Info().Int("holds", len(holds)).Msg("availability index rebuilt")

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	var events domain.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatal().Err(err).Msg("kafka producer failed")
		}
		defer p.Close()
		events = p
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("event publishing enabled")
	}

	bookings := app.NewBookingService(repo, repo, index, events)
	q := app.NewQueryService(repo, repo, cache, cfg.CacheTTL)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go app.RunCompletionSweep(sweepCtx, bookings, cfg.SweepInterval)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, B: bookings})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
