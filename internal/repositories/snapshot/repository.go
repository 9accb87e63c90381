// Package snapshot caches the module snapshots read from a package so that
// unchanged packages are not parsed again on the next run.
package snapshot

import (
	"context"
	"time"

	"github.com/KirkDiggler/feat-weaver/internal/modules"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=snapshotmock github.com/KirkDiggler/feat-weaver/internal/repositories/snapshot Repository

// Fingerprint identifies one version of a package on disk
type Fingerprint struct {
	Path    string
	Size    int64
	ModTime int64
}

// GetInput contains parameters for retrieving cached snapshots
type GetInput struct {
	Package Fingerprint
}

// GetOutput contains the cached snapshots of a package
type GetOutput struct {
	Modules  []*modules.Module
	CachedAt time.Time
}

// PutInput contains parameters for caching snapshots
type PutInput struct {
	Package Fingerprint
	Modules []*modules.Module
	TTL     time.Duration
}

// PutOutput contains the result of caching snapshots
type PutOutput struct {
	Key string
}

// PurgeInput contains parameters for removing cached snapshots
type PurgeInput struct {
	// CorruptOnly keeps every entry that still decodes
	CorruptOnly bool
	// DryRun reports the selected keys without deleting them
	DryRun      bool
}

// PurgeOutput reports what a purge removed
type PurgeOutput struct {
	Checked int
	// Keys lists the selected snapshot keys
	Keys    []string
}

// Repository defines the interface for snapshot cache operations
type Repository interface {
	// Get returns the cached snapshots of a package, NotFound when absent
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put caches the snapshots of a package
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Purge removes cached snapshots, all of them or only those that no
	// longer decode
	Purge(ctx context.Context, input PurgeInput) (*PurgeOutput, error)
}
