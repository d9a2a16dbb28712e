package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hilal-labs/ramadan-companion/internal/backup"
	"github.com/hilal-labs/ramadan-companion/internal/config"
	"github.com/hilal-labs/ramadan-companion/internal/http/ws"
	"github.com/hilal-labs/ramadan-companion/internal/kv"
	"github.com/hilal-labs/ramadan-companion/internal/notify"
	"github.com/hilal-labs/ramadan-companion/internal/state"
	"github.com/hilal-labs/ramadan-companion/internal/timesvc"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer store.Close()

	provider := state.NewProvider(store, state.SystemClock)

	// an optional day-scoped cache for prayer timings
	var cache *redis.Client
	if cfg.RedisAddress != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
			DB:       0,
		})
	}
	prayerClient := timesvc.NewPrayerTimesClient(cache)
	quranClient := timesvc.NewQuranClient(store)

	var exporter backup.Exporter
	if cfg.UseSpaces {
		exporter, err = backup.NewSpacesExporter(
			cfg.SpacesEndpoint, cfg.SpacesRegion, cfg.SpacesBucket,
			cfg.SpacesCDNURL, cfg.SpacesAccessKey, cfg.SpacesSecretKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up Spaces backups")
		}
	} else {
		exporter = backup.NewLocalExporter(cfg.BackupDir)
	}

	if cfg.MQTTBroker != "" {
		notifier, err := notify.New(cfg.MQTTBroker)
		if err != nil {
			log.Error().Err(err).Msg("MQTT disabled")
		} else {
			defer notifier.Close()
			notifier.Attach(provider)
			go notifier.RunPrayerReminders(context.Background(), provider, prayerClient)
		}
	}

	hub := ws.NewHub(provider, prayerClient, cfg.ActiveWindow)

	r := gin.Default()
	RegisterRoutes(r, routeDeps{
		cfg:      cfg,
		provider: provider,
		prayers:  prayerClient,
		quran:    quranClient,
		exporter: exporter,
		hub:      hub,
	})

	log.Info().Str("address", cfg.ServerAddress).Msg("listening")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func openStore(cfg *config.Config) (kv.Store, error) {
	switch cfg.StoreBackend {
	case "redis":
		return kv.NewRedisStore(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	case "postgres":
		return kv.NewPostgresStore(cfg.DatabaseURL)
	default:
		return kv.NewFileStore(cfg.DataDir)
	}
}
