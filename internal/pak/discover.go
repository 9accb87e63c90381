package pak

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
)

// packageMarkers are the top-level folders of an unpacked package
var packageMarkers = []string{"Mods", "Public"}

// Discover walks an install path and returns every package beneath it: zip
// archives and directories holding a Mods or Public folder. A package
// directory is not searched further.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("install path %s not found", root)
		}
		return nil, errors.Wrapf(err, "failed to stat install path %s", root)
	}
	if !info.IsDir() {
		if isArchive(root) {
			return []string{root}, nil
		}
		return nil, errors.InvalidArgumentf("install path %s is neither a directory nor an archive", root)
	}

	var packages []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if isPackageDir(path) {
				packages = append(packages, path)
				return filepath.SkipDir
			}
			return nil
		}

		if isArchive(path) {
			packages = append(packages, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk install path %s", root)
	}

	sort.Strings(packages)
	return packages, nil
}

func isArchive(path string) bool {
	return strings.EqualFold(filepath.Ext(path), zipExtension)
}

func isPackageDir(path string) bool {
	for _, marker := range packageMarkers {
		info, err := os.Stat(filepath.Join(path, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
