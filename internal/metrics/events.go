package metrics

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/feat-weaver/internal/entities/bg3"
)

// Subscribe records the pipeline events published on bus and returns the
// subscription ids
func (c *Collector) Subscribe(bus events.EventBus) []string {
	handlers := map[string]func(){
		bg3.EventRunStarted: func() {
			c.ModulesMerged.Set(0)
		},
		bg3.EventPackageRead:     c.PackagesRead.Inc,
		bg3.EventPackageSkipped:  c.PackagesSkipped.Inc,
		bg3.EventSnapshotHit:     c.CacheHits.Inc,
		bg3.EventSnapshotMiss:    c.CacheMisses.Inc,
		bg3.EventModuleMerged:    c.ModulesMerged.Inc,
		bg3.EventFeatWoven:       c.Feats.Inc,
		bg3.EventFeatUnsupported: c.FeatsUnsupported.Inc,
	}

	ids := make([]string, 0, len(handlers))
	for eventType, record := range handlers {
		ids = append(ids, bus.SubscribeFunc(eventType, 0, func(_ context.Context, _ events.Event) error {
			record()
			return nil
		}))
	}
	return ids
}
