package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/donaldgifford/dealsense/internal/cache"
	"github.com/donaldgifford/dealsense/internal/config"
	"github.com/donaldgifford/dealsense/internal/engine"
	"github.com/donaldgifford/dealsense/internal/ingest"
	"github.com/donaldgifford/dealsense/internal/notify"
	"github.com/donaldgifford/dealsense/internal/store"
	"github.com/donaldgifford/dealsense/pkg/logger"
)

// buildSources returns the enabled ingestion sources.
func buildSources(cfg *config.SourcesConfig) []ingest.Source {
	var sources []ingest.Source

	if cfg.Naver.Enabled {
		opts := []ingest.NaverOption{
			ingest.WithDisplay(cfg.Naver.Display),
			ingest.WithRequestRate(cfg.Naver.RequestsPerSecond),
			ingest.WithDailyLimit(cfg.Naver.DailyLimit),
		}
		if cfg.Naver.URL != "" {
			opts = append(opts, ingest.WithNaverURL(cfg.Naver.URL))
		}
		if len(cfg.Categories) > 0 {
			opts = append(opts, ingest.WithCategories(cfg.Categories))
		}
		sources = append(sources, ingest.NewNaverSource(cfg.Naver.ClientID, cfg.Naver.ClientSecret, opts...))
	}

	if cfg.RSS.Enabled {
		if len(cfg.RSS.Feeds) == 0 {
			sources = append(sources, ingest.NewRSSSource())
		}
		for _, f := range cfg.RSS.Feeds {
			sources = append(sources, ingest.NewRSSSource(
				ingest.WithSourceName(f.Name),
				ingest.WithFeedURL(f.URL),
			))
		}
	}

	return sources
}

// buildTrustCache returns the configured cache backend and a close func.
func buildTrustCache(ctx context.Context, cfg *config.CacheConfig) (cache.TrustCache, func() error, error) {
	noClose := func() error { return nil }

	switch cfg.Backend {
	case config.CacheMemory:
		return cache.NewMemory(cfg.TTL), noClose, nil
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return cache.NewRedis(client, cfg.TTL), client.Close, nil
	default:
		return cache.Noop{}, noClose, nil
	}
}

// buildNotifier returns the Discord notifier when enabled, otherwise one
// that only logs.
func buildNotifier(cfg *config.NotificationsConfig, log *slog.Logger) notify.Notifier {
	if cfg.Discord.Enabled && cfg.Discord.WebhookURL != "" {
		return notify.NewDiscordNotifier(cfg.Discord.WebhookURL)
	}
	return notify.NewNoOpNotifier(logger.Component(log, "notify"))
}

// buildEngine wires the engine and its collaborators from cfg.
func buildEngine(
	ctx context.Context,
	cfg *config.Config,
	st store.Store,
	log *slog.Logger,
) (*engine.Engine, func() error, error) {
	trust, closeCache, err := buildTrustCache(ctx, &cfg.Cache)
	if err != nil {
		return nil, nil, err
	}

	sources := buildSources(&cfg.Sources)
	for _, s := range sources {
		log.Info("ingestion source enabled", "source", s.Name())
	}

	eng := engine.NewEngine(st,
		engine.WithLogger(logger.Component(log, "engine")),
		engine.WithSources(sources...),
		engine.WithNotifier(buildNotifier(&cfg.Notifications, log)),
		engine.WithTrustCache(trust),
		engine.WithAlertThreshold(cfg.Alerts.MinMatchScore),
	)
	return eng, closeCache, nil
}

// openStore connects to PostgreSQL.
func openStore(ctx context.Context, cfg *config.DatabaseConfig) (*store.PostgresStore, error) {
	st, err := store.NewPostgresStore(ctx, cfg.DSN(), store.WithPoolSize(cfg.PoolSize))
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return st, nil
}
