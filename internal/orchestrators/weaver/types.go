package weaver

import (
	"github.com/KirkDiggler/feat-weaver/internal/modules"
	"github.com/KirkDiggler/feat-weaver/internal/wiring"
)

// WeaveInput defines the request for generating feat spells
type WeaveInput struct {
	// LoadOrder is the merged module list as returned by modules.Merge
	LoadOrder []*modules.Module
}

// WeaveOutput defines the result of a weaving run
type WeaveOutput struct {
	Collector *wiring.Collector

	Feats            int
	FeatsUnsupported int
	Spells           int
	Boosts           int
	CandidatesPruned int
}
