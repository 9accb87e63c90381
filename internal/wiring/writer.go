package wiring

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
	"github.com/KirkDiggler/feat-weaver/internal/stats"
)

const (
	generatedPrefix = "E6_Gen_"
	wiringFile      = generatedPrefix + "Wiring.json"
)

// BoostsFile is the name of a module's generated boosts file
func BoostsFile(module string) string {
	return generatedPrefix + module + "_Boosts.txt"
}

// ShoutsFile is the name of a module's generated spells file
func ShoutsFile(module string) string {
	return generatedPrefix + module + "_Shouts.txt"
}

// WiringFile is the name of the wiring document
func WiringFile() string {
	return wiringFile
}

// WriteFilesOutput lists the files that were written
type WriteFilesOutput struct {
	Removed []string
	Written []string
}

// WriteFiles cleans the wiring tree, removes previously generated files from
// dir and writes one boosts file and one shouts file per module plus the
// wiring document.
func (c *Collector) WriteFiles(ctx context.Context, dir string) (*WriteFilesOutput, error) {
	if dir == "" {
		return nil, errors.InvalidArgument("output directory is required")
	}

	c.wiring.Clean()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	output := &WriteFilesOutput{}

	stale, err := filepath.Glob(filepath.Join(dir, generatedPrefix+"*"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list generated files")
	}
	for _, path := range stale {
		if err := os.Remove(path); err != nil {
			return nil, errors.Wrapf(err, "failed to remove %s", path)
		}
		output.Removed = append(output.Removed, path)
	}

	for _, module := range c.Modules() {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "write canceled")
		}

		if boosts := c.boosts[module]; len(boosts) > 0 {
			path := filepath.Join(dir, BoostsFile(module))
			if err := writeEntries(path, boosts); err != nil {
				return nil, err
			}
			output.Written = append(output.Written, path)
		}
		if spells := c.spells[module]; len(spells) > 0 {
			path := filepath.Join(dir, ShoutsFile(module))
			if err := writeEntries(path, spells); err != nil {
				return nil, err
			}
			output.Written = append(output.Written, path)
		}
	}

	data, err := json.MarshalIndent(c.wiring, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode wiring")
	}
	path := filepath.Join(dir, wiringFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", path)
	}
	output.Written = append(output.Written, path)

	slog.InfoContext(ctx, "Wrote generated files",
		"dir", dir,
		"removed", len(output.Removed),
		"written", len(output.Written))

	return output, nil
}

func writeEntries(path string, entries []*stats.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}

	w := bufio.NewWriter(f)
	if err := stats.WriteAll(w, entries); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", path)
	}
	return nil
}
