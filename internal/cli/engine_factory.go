package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/ecoguia"
	"github.com/aretw0/ecoguia/internal/config"
	"github.com/aretw0/ecoguia/pkg/adapters/file"
	"github.com/aretw0/ecoguia/pkg/adapters/redis"
	"github.com/aretw0/ecoguia/pkg/observability"
)

// pingTimeout bounds the Redis reachability check at startup.
const pingTimeout = 2 * time.Second

// Runtime is an engine together with the resources it owns.
type Runtime struct {
	Engine  *ecoguia.Engine
	Metrics *observability.Metrics
	cache   *redis.Cache
}

// Close releases the search cache connection, if any.
func (r *Runtime) Close() error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Close()
}

// Cached reports whether searches go through Redis.
func (r *Runtime) Cached() bool {
	return r.cache != nil
}

// BuildEngine initializes the EcoGuía engine with standard CLI conventions:
// the reservation table is optional, searches are cached when a Redis address
// is configured and reachable, and every transition is logged and counted.
func BuildEngine(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{Metrics: observability.NewMetrics()}

	opts := []ecoguia.Option{
		ecoguia.WithLogger(logger),
		ecoguia.WithHooks(observability.Combine(
			observability.LoggingHooks(logger),
			rt.Metrics.Hooks(),
		)),
	}

	if cfg.ReservasFile != "" {
		opts = append(opts, ecoguia.WithRecordLoader(file.NewRecordLoader(cfg.ReservasFile, file.WithMissingOK())))
	}
	if cfg.StartNode != "" {
		opts = append(opts, ecoguia.WithEntryNode(cfg.StartNode))
	}
	if cfg.LazyReferences {
		opts = append(opts, ecoguia.WithLazyReferences())
	}

	if cfg.Redis.Addr != "" {
		cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redis.WithTTL(cfg.Redis.TTL))
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := cache.Ping(pingCtx)
		cancel()
		if err != nil {
			// Searches still work against the in-memory index.
			logger.Warn("Search cache unavailable, continuing without it", "addr", cfg.Redis.Addr, "err", err)
			_ = cache.Close()
		} else {
			rt.cache = cache
			opts = append(opts, ecoguia.WithSearchCache(cache))
		}
	}

	engine, err := ecoguia.New(cfg.BotFile, opts...)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	rt.Engine = engine

	logger.Info("Engine ready",
		"bot", cfg.BotFile,
		"start", engine.StartNodeID(),
		"records", len(engine.Records()),
		"cache", rt.Cached(),
	)
	return rt, nil
}

