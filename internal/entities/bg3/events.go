package bg3

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Event types published on the pipeline event bus
const (
	EventRunStarted      = "featweaver.run.started"
	EventPackageRead     = "featweaver.package.read"
	EventPackageSkipped  = "featweaver.package.skipped"
	EventSnapshotHit     = "featweaver.snapshot.hit"
	EventSnapshotMiss    = "featweaver.snapshot.miss"
	EventModuleMerged    = "featweaver.module.merged"
	EventFeatWoven       = "featweaver.feat.woven"
	EventFeatUnsupported = "featweaver.feat.unsupported"
)

// Entity types of the event sources that are not content
const (
	EntityTypePackage = "package"
	EntityTypeRun     = "run"
)

// PackageRef identifies a mod package by path
type PackageRef struct {
	Path string
}

// GetID implements core.Entity
func (p *PackageRef) GetID() string {
	return p.Path
}

// GetType implements core.Entity
func (p *PackageRef) GetType() string {
	return EntityTypePackage
}

// RunRef identifies one compile or list run
type RunRef struct {
	ID string
}

// GetID implements core.Entity
func (r *RunRef) GetID() string {
	return r.ID
}

// GetType implements core.Entity
func (r *RunRef) GetType() string {
	return EntityTypeRun
}

var (
	_ core.Entity = (*PackageRef)(nil)
	_ core.Entity = (*RunRef)(nil)
)
