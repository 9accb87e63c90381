// Package pak opens mod packages and exposes their files as an fs.FS keyed by
// slash separated package paths such as Mods/<mod>/meta.lsx.
package pak

import (
	"archive/zip"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
)

const zipExtension = ".zip"

// Package is an opened mod package
type Package struct {
	Path    string
	Size    int64
	ModTime int64
	IsDir   bool
	FS      fs.FS

	closer func() error
}

// Close releases the package. It is safe to call on a directory package.
func (p *Package) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer()
}

// Open opens an unpacked package directory or a zip archive.
func Open(path string) (*Package, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("package %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to stat package %s", path)
	}

	pkg := &Package{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
	}

	if info.IsDir() {
		pkg.IsDir = true
		pkg.FS = os.DirFS(path)
		return pkg, nil
	}

	if !strings.EqualFold(filepath.Ext(path), zipExtension) {
		return nil, errors.InvalidArgumentf("unsupported package format %s", path)
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to open archive %s", path)
	}
	pkg.FS = reader
	pkg.closer = reader.Close

	return pkg, nil
}

// Files lists every regular file of the package in lexical order.
func Files(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list package files")
	}
	return files, nil
}
