// Package compiler runs the whole pipeline: it discovers packages under the
// install paths, reads their module snapshots concurrently, merges them into a
// load order, weaves the feats and writes the artifacts.
package compiler

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/feat-weaver/internal/entities/bg3"
	"github.com/KirkDiggler/feat-weaver/internal/errors"
	"github.com/KirkDiggler/feat-weaver/internal/metrics"
	"github.com/KirkDiggler/feat-weaver/internal/modules"
	"github.com/KirkDiggler/feat-weaver/internal/orchestrators/weaver"
	"github.com/KirkDiggler/feat-weaver/internal/pkg/clock"
	"github.com/KirkDiggler/feat-weaver/internal/pkg/idgen"
	"github.com/KirkDiggler/feat-weaver/internal/repositories/snapshot"
)

// DefaultConcurrency is the number of packages read at once
const DefaultConcurrency = 4

// Service defines the interface for compile runs
type Service interface {
	// Compile reads, merges and weaves every module and writes the artifacts
	Compile(ctx context.Context, input *CompileInput) (*CompileOutput, error)

	// ListModules reads and merges every module without weaving
	ListModules(ctx context.Context, input *ListModulesInput) (*ListModulesOutput, error)
}

// Config holds the dependencies for the compiler
type Config struct {
	Weaver      weaver.Service
	IDGenerator idgen.Generator
	Metrics     *metrics.Collector
	Clock       clock.Clock
	// EventBus receives package, snapshot and module events
	EventBus events.EventBus

	// Snapshots is optional; without it every package is read from disk
	Snapshots   snapshot.Repository
	SnapshotTTL time.Duration
	Concurrency int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Weaver == nil {
		vb.RequiredField("Weaver")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Metrics == nil {
		vb.RequiredField("Metrics")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	errors.ValidatePositive("Concurrency", c.Concurrency, vb)
	if c.SnapshotTTL < 0 {
		vb.Field("SnapshotTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	weaver      weaver.Service
	idGen       idgen.Generator
	metrics     *metrics.Collector
	clock       clock.Clock
	eventBus    events.EventBus
	snapshots   snapshot.Repository
	snapshotTTL time.Duration
	concurrency int
}

// NewOrchestrator creates a new compiler with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		weaver:      cfg.Weaver,
		idGen:       cfg.IDGenerator,
		metrics:     cfg.Metrics,
		clock:       cfg.Clock,
		eventBus:    cfg.EventBus,
		snapshots:   cfg.Snapshots,
		snapshotTTL: cfg.SnapshotTTL,
		concurrency: cfg.Concurrency,
	}, nil
}

// Compile runs the full pipeline. Nothing is written unless weaving succeeds.
func (o *orchestrator) Compile(ctx context.Context, input *CompileInput) (*CompileOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OutputDir == "" {
		return nil, errors.InvalidArgument("output directory is required")
	}

	runID := o.idGen.Generate()
	logger := slog.Default().With("run_id", runID)
	started := o.clock.Now()
	o.metrics.LastRunSuccessful.Set(0)
	defer func() {
		o.metrics.RunDuration.Set(o.clock.Now().Sub(started).Seconds())
	}()

	logger.InfoContext(ctx, "Starting compile", "install_paths", input.InstallPaths, "output_dir", input.OutputDir)

	loadOrder, stats, err := o.load(ctx, logger, runID, input.InstallPaths)
	if err != nil {
		return nil, err
	}

	woven, err := o.weaver.Weave(ctx, &weaver.WeaveInput{LoadOrder: loadOrder})
	if err != nil {
		return nil, errors.Wrap(err, "failed to weave feats")
	}
	o.metrics.SpellsGenerated.Add(float64(woven.Spells))
	o.metrics.BoostsGenerated.Add(float64(woven.Boosts))
	o.metrics.CandidatesPruned.Add(float64(woven.CandidatesPruned))

	files, err := woven.Collector.WriteFiles(ctx, input.OutputDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write artifacts")
	}
	o.metrics.LastRunSuccessful.Set(1)

	logger.InfoContext(ctx, "Compile finished",
		"modules", len(loadOrder),
		"feats", woven.Feats,
		"spells", woven.Spells,
		"boosts", woven.Boosts,
		"files_written", len(files.Written),
		"files_removed", len(files.Removed))

	return &CompileOutput{
		RunID:     runID,
		Load:      stats,
		LoadOrder: loadOrder,
		Weave:     woven,
		Files:     files,
	}, nil
}

// ListModules reads and merges the modules and returns the load order
func (o *orchestrator) ListModules(ctx context.Context, input *ListModulesInput) (*ListModulesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	runID := o.idGen.Generate()
	logger := slog.Default().With("run_id", runID)

	loadOrder, stats, err := o.load(ctx, logger, runID, input.InstallPaths)
	if err != nil {
		return nil, err
	}

	return &ListModulesOutput{
		RunID:     runID,
		Load:      stats,
		LoadOrder: loadOrder,
	}, nil
}

// load discovers and reads every package, then merges the snapshots
func (o *orchestrator) load(ctx context.Context, logger *slog.Logger, runID string, installPaths []string) ([]*modules.Module, *LoadStats, error) {
	if len(installPaths) == 0 {
		return nil, nil, errors.InvalidArgument("at least one install path is required")
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeCanceled, "load canceled")
	}
	if err := o.publish(ctx, bg3.EventRunStarted, &bg3.RunRef{ID: runID}); err != nil {
		return nil, nil, err
	}

	packages, err := o.discover(ctx, logger, installPaths)
	if err != nil {
		return nil, nil, err
	}

	results, err := o.readAll(ctx, logger, packages)
	if err != nil {
		return nil, nil, err
	}

	stats := &LoadStats{Packages: len(packages)}
	var snapshots []*modules.Module
	for i, result := range results {
		ref := &bg3.PackageRef{Path: packages[i]}
		eventTypes := []string{bg3.EventPackageSkipped}
		if result != nil {
			eventTypes = []string{bg3.EventPackageRead}
			switch {
			case result.cached:
				eventTypes = append(eventTypes, bg3.EventSnapshotHit)
			case o.snapshots != nil && !result.isDir:
				eventTypes = append(eventTypes, bg3.EventSnapshotMiss)
			}
		}
		for _, eventType := range eventTypes {
			if err := o.publish(ctx, eventType, ref); err != nil {
				return nil, nil, err
			}
		}

		if result == nil {
			stats.PackagesSkipped++
			continue
		}
		stats.PackagesRead++
		stats.FilesRead += result.filesRead
		stats.FilesSkipped += result.filesSkipped
		if result.cached {
			stats.CacheHits++
		} else if o.snapshots != nil && !result.isDir {
			stats.CacheMisses++
		}
		snapshots = append(snapshots, result.modules...)
	}
	stats.Snapshots = len(snapshots)

	o.metrics.FilesSkipped.Add(float64(stats.FilesSkipped))

	logger.InfoContext(ctx, "Read packages",
		"packages", stats.Packages,
		"read", stats.PackagesRead,
		"skipped", stats.PackagesSkipped,
		"snapshots", stats.Snapshots,
		"cache_hits", stats.CacheHits)

	loadOrder, err := modules.Merge(ctx, modules.Group(snapshots))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to merge modules")
	}
	for _, module := range loadOrder {
		if err := o.publish(ctx, bg3.EventModuleMerged, module); err != nil {
			return nil, nil, err
		}
	}

	return loadOrder, stats, nil
}

// publish sends a pipeline event with source as its entity
func (o *orchestrator) publish(ctx context.Context, eventType string, source core.Entity) error {
	if err := o.eventBus.Publish(ctx, events.NewGameEvent(eventType, source, nil)); err != nil {
		return errors.Wrapf(err, "failed to publish %s", eventType).
			WithMeta("source", source.GetID())
	}
	return nil
}
