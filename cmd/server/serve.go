package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Nixie-Tech-LLC/naulin/internal/config"
	"github.com/Nixie-Tech-LLC/naulin/internal/db"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/naulin/internal/notify"
	"github.com/Nixie-Tech-LLC/naulin/internal/provider"
	"github.com/Nixie-Tech-LLC/naulin/internal/redis"
)

const (
	dialRetry       = 2 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Dependencies are the wired components the routes need.
type Dependencies struct {
	Conn *provider.Connection
	// Store and Cache are nil when content comes from a remote API.
	Store    db.Store
	Cache    *provider.StoreProvider
	Notifier notify.Notifier
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	deps := Dependencies{Conn: provider.NewConnection(), Notifier: notify.Noop{}}
	var open provider.Opener

	if cfg.ContentAPIURL != "" {
		log.Info().Str("url", cfg.ContentAPIURL).Msg("[content] reading from remote content API")
		open = provider.HTTPOpener(cfg.ContentAPIURL, cfg.ProviderTimeout)
	} else {
		if err := db.Open(cfg.DatabaseURL); err != nil {
			return err
		}
		defer db.DB.Close()

		cache := initCache(ctx, cfg)
		defer closeCache(cache)

		deps.Store = db.NewStore(db.DB)
		deps.Cache = provider.NewStoreProvider(deps.Store, cache, cfg.CacheTTL)
		open = storeOpener(cfg, deps.Cache)

		deps.Notifier = initNotifier(cfg, "server")
		defer deps.Notifier.Close()
		err := deps.Notifier.OnContentUpdated(func(ctx context.Context, kind provider.Kind) {
			if err := deps.Cache.Invalidate(ctx, kind); err != nil {
				log.Warn().Err(err).Str("kind", string(kind)).Msg("[notify] failed to invalidate content cache")
			}
		})
		if err != nil {
			log.Warn().Err(err).Msg("[notify] could not subscribe to content updates")
		}
	}

	storageSystem, err := InitStorage(cfg)
	if err != nil {
		return err
	}

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), gzip.Gzip(gzip.DefaultCompression))
	RegisterRoutes(r, cfg, deps, storageSystem)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	// the page serves pending sections until this succeeds
	g.Go(func() error {
		err := provider.Dial(gctx, deps.Conn, open, dialRetry)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		log.Info().Str("addr", cfg.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// storeOpener hands out the database-backed provider once Postgres answers
// and the schema is in place.
func storeOpener(cfg *config.Config, p *provider.StoreProvider) provider.Opener {
	migrated := false
	return func(ctx context.Context) (provider.Provider, error) {
		if err := db.DB.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("database not reachable: %w", err)
		}
		if !migrated {
			if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
				return nil, err
			}
			migrated = true
		}
		return p, nil
	}
}

func initCache(ctx context.Context, cfg *config.Config) redis.Cache {
	if cfg.RedisAddress == "" {
		log.Info().Msg("[cache] REDIS_ADDRESS not set, using in-process cache")
		return redis.NewMemoryCache()
	}

	client := redis.NewClient(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddress).Msg("[cache] redis not reachable, reads fall through to the database")
	}
	return client
}

func closeCache(c redis.Cache) {
	if client, ok := c.(*redis.Client); ok {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("[cache] close")
		}
	}
}

func initNotifier(cfg *config.Config, role string) notify.Notifier {
	if cfg.MQTTBrokerURL == "" {
		return notify.Noop{}
	}
	clientName := fmt.Sprintf("naulin-%s-%s", role, uuid.NewString()[:8])
	n, err := notify.NewMQTTNotifier(cfg.MQTTBrokerURL, clientName, cfg.MQTTTopicPrefix)
	if err != nil {
		log.Warn().Err(err).Msg("[notify] MQTT unavailable, content updates stay local")
		return notify.Noop{}
	}
	return n
}
