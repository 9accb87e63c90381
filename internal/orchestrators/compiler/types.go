package compiler

import (
	"github.com/KirkDiggler/feat-weaver/internal/modules"
	"github.com/KirkDiggler/feat-weaver/internal/orchestrators/weaver"
	"github.com/KirkDiggler/feat-weaver/internal/wiring"
)

// CompileInput defines the request for a full generation run
type CompileInput struct {
	InstallPaths []string
	OutputDir    string
}

// CompileOutput defines the result of a generation run
type CompileOutput struct {
	RunID     string
	Load      *LoadStats
	LoadOrder []*modules.Module
	Weave     *weaver.WeaveOutput
	Files     *wiring.WriteFilesOutput
}

// ListModulesInput defines the request for computing the load order only
type ListModulesInput struct {
	InstallPaths []string
}

// ListModulesOutput holds the merged modules in load order
type ListModulesOutput struct {
	RunID     string
	Load      *LoadStats
	LoadOrder []*modules.Module
}

// LoadStats summarizes how the packages of a run were read
type LoadStats struct {
	Packages        int
	PackagesRead    int
	PackagesSkipped int
	FilesRead       int
	FilesSkipped    int
	CacheHits       int
	CacheMisses     int
	Snapshots       int
}
