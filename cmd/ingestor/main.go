package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"staybook/internal/adapters/catalog"
	"staybook/internal/adapters/observability"
	redisad "staybook/internal/adapters/redis"
	"staybook/internal/app"
	"staybook/internal/shared"
	mysqlrepo "staybook/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.CatalogBase).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	client := catalog.New(cfg.CatalogBase, cfg.CatalogKey, cfg.CatalogRPS)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	ing := app.NewIngestionService(client, repo, cache)

	// customers first: bookings reference them
	n, err := ing.IngestCustomers(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("customer ingest failed")
	}
	log.Info().Int("customers", n).Msg("customers ingested")

	hotels, err := client.ListHotels(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listing hotels failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, payload := range hotels {
		payload := payload

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(p map[string]any) {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := ing.IngestHotel(ctx, p); err != nil {
				log.Warn().Any("id", p["id"]).Err(err).Msg("ingest failed")
				return
			}
			log.Info().Any("id", p["id"]).Msg("ingest ok")
		}(payload)
	}

	wg.Wait()
	log.Info().Msg("ingestion completed")
}
