package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/feat-weaver/internal/config"
	"github.com/KirkDiggler/feat-weaver/internal/entities/bg3"
	"github.com/KirkDiggler/feat-weaver/internal/errors"
	"github.com/KirkDiggler/feat-weaver/internal/metrics"
	"github.com/KirkDiggler/feat-weaver/internal/orchestrators/compiler"
	"github.com/KirkDiggler/feat-weaver/internal/orchestrators/weaver"
	"github.com/KirkDiggler/feat-weaver/internal/pkg/clock"
	"github.com/KirkDiggler/feat-weaver/internal/pkg/idgen"
	"github.com/KirkDiggler/feat-weaver/internal/redis"
	"github.com/KirkDiggler/feat-weaver/internal/repositories/snapshot"
)

// app wires the services one command needs
type app struct {
	cfg       *config.Config
	compiler  compiler.Service
	snapshots snapshot.Repository
	metrics   *metrics.Collector
	closers   []func() error
}

// newApp installs the configured logger and builds the compiler
func newApp(cfg *config.Config, logOutput io.Writer) (*app, error) {
	slog.SetDefault(cfg.Logging.NewLogger(logOutput))

	a := &app{
		cfg:     cfg,
		metrics: metrics.New(),
	}

	bus := events.NewBus()
	a.metrics.Subscribe(bus)
	bus.SubscribeFunc(bg3.EventPackageSkipped, 0, func(ctx context.Context, e events.Event) error {
		slog.DebugContext(ctx, "Package skipped", "package", e.Source().GetID())
		return nil
	})

	weaveService, err := weaver.NewOrchestrator(&weaver.Config{
		MaxLeaves: cfg.MaxLeaves,
		EventBus:  bus,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create weaver")
	}

	if cfg.Cache.Enabled() {
		client, err := redis.NewClient(cfg.Cache.RedisAddr, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis client")
		}
		a.closers = append(a.closers, client.Close)

		a.snapshots, err = snapshot.NewRedisRepository(&snapshot.Config{
			Client: client,
			Clock:  clock.New(),
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create snapshot repository")
		}
		slog.Debug("Snapshot cache enabled", "redis_addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	}

	a.compiler, err = compiler.NewOrchestrator(&compiler.Config{
		Weaver:      weaveService,
		IDGenerator: idgen.NewUUID("run"),
		Metrics:     a.metrics,
		Clock:       clock.New(),
		EventBus:    bus,
		Snapshots:   a.snapshots,
		SnapshotTTL: cfg.Cache.TTL,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create compiler")
	}

	return a, nil
}

// writeMetrics writes the textfile when one is configured
func (a *app) writeMetrics(ctx context.Context) {
	if a.cfg.Metrics.Textfile == "" {
		return
	}
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		slog.WarnContext(ctx, "Failed to write metrics", "path", a.cfg.Metrics.Textfile, "error", err)
	}
}

func (a *app) close() {
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			slog.Warn("Failed to close resource", "error", err)
		}
	}
}
