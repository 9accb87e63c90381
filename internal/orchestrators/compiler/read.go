package compiler

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
	"github.com/KirkDiggler/feat-weaver/internal/modules"
	"github.com/KirkDiggler/feat-weaver/internal/pak"
	"github.com/KirkDiggler/feat-weaver/internal/repositories/snapshot"
)

// packageResult is what one package contributed; nil marks a skipped package
type packageResult struct {
	modules      []*modules.Module
	filesRead    int
	filesSkipped int
	cached       bool
	isDir        bool
}

// discover lists the packages under every install path, each path once.
// Missing install paths are logged and ignored.
func (o *orchestrator) discover(ctx context.Context, logger *slog.Logger, installPaths []string) ([]string, error) {
	seen := make(map[string]bool)
	var packages []string

	for _, root := range installPaths {
		found, err := pak.Discover(root)
		if err != nil {
			if errors.IsNotFound(err) {
				logger.WarnContext(ctx, "Install path not found", "path", root)
				continue
			}
			return nil, errors.Wrapf(err, "failed to discover packages in %s", root)
		}

		for _, path := range found {
			if seen[path] {
				continue
			}
			seen[path] = true
			packages = append(packages, path)
		}
	}

	logger.DebugContext(ctx, "Discovered packages", "count", len(packages))
	return packages, nil
}

// readAll reads the packages with bounded concurrency. Results keep the
// discovery order so merging does not depend on scheduling.
func (o *orchestrator) readAll(ctx context.Context, logger *slog.Logger, packages []string) ([]*packageResult, error) {
	results := make([]*packageResult, len(packages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, path := range packages {
		g.Go(func() error {
			result, err := o.readPackage(gctx, logger, path)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// readPackage loads one package from the cache or from disk. Only a canceled
// context is an error; any other failure skips the package.
func (o *orchestrator) readPackage(ctx context.Context, logger *slog.Logger, path string) (*packageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "package read canceled")
	}

	pkg, err := pak.Open(path)
	if err != nil {
		logger.WarnContext(ctx, "Skipping package", "package", path, "error", err)
		return nil, nil
	}
	defer func() {
		if err := pkg.Close(); err != nil {
			logger.WarnContext(ctx, "Failed to close package", "package", path, "error", err)
		}
	}()

	fingerprint := snapshot.Fingerprint{Path: pkg.Path, Size: pkg.Size, ModTime: pkg.ModTime}
	useCache := o.snapshots != nil && !pkg.IsDir

	if useCache {
		cached, err := o.snapshots.Get(ctx, snapshot.GetInput{Package: fingerprint})
		switch {
		case err == nil:
			logger.DebugContext(ctx, "Using cached snapshots",
				"package", path,
				"modules", len(cached.Modules),
				"cached_at", cached.CachedAt)
			return &packageResult{modules: cached.Modules, cached: true}, nil
		case errors.IsNotFound(err):
		default:
			logger.WarnContext(ctx, "Snapshot cache unavailable", "package", path, "error", err)
		}
	}

	files, err := pak.Files(pkg.FS)
	if err != nil {
		logger.WarnContext(ctx, "Skipping package", "package", path, "error", err)
		return nil, nil
	}

	read, err := modules.ReadPackage(ctx, &modules.ReadPackageInput{
		Package: path,
		FS:      pkg.FS,
		Files:   files,
	})
	if err != nil {
		if errors.IsCanceled(err) {
			return nil, err
		}
		logger.WarnContext(ctx, "Skipping package", "package", path, "error", err)
		return nil, nil
	}

	if useCache {
		_, err := o.snapshots.Put(ctx, snapshot.PutInput{
			Package: fingerprint,
			Modules: read.Modules,
			TTL:     o.snapshotTTL,
		})
		if err != nil {
			logger.WarnContext(ctx, "Failed to cache snapshots", "package", path, "error", err)
		}
	}

	return &packageResult{
		modules:      read.Modules,
		filesRead:    read.FilesRead,
		filesSkipped: read.FilesSkipped,
		isDir:        pkg.IsDir,
	}, nil
}
