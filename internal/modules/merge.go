package modules

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/KirkDiggler/feat-weaver/internal/entities/bg3"
	"github.com/KirkDiggler/feat-weaver/internal/errors"
)

// OrderError reports modules that could not be placed in the load order
// because their dependencies form a cycle or are never placed.
type OrderError struct {
	// Unresolved maps each unplaced module to the dependencies it was
	// still waiting on
	Unresolved map[string][]string
}

func (e *OrderError) Error() string {
	names := make([]string, 0, len(e.Unresolved))
	for name := range e.Unresolved {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s (waiting on %s)", name, strings.Join(e.Unresolved[name], ", ")))
	}
	return "unable to order modules: " + strings.Join(parts, "; ")
}

// Unwrap lets the error report CodeFailedPrecondition
func (e *OrderError) Unwrap() error {
	return errors.FailedPrecondition("module dependencies cannot be ordered").
		WithMeta("modules", len(e.Unresolved))
}

// MergeFrom folds a newer snapshot into m. Identity and version only change
// when the snapshot sets them. Descriptions, feats and dependencies are only
// replaced by a non-empty collection. Stats and lists merge per key.
func (m *Module) MergeFrom(src *Module) {
	if src.ID != uuid.Nil {
		m.ID = src.ID
	}
	if src.Version != 0 {
		m.Version = src.Version
	}

	if len(src.Descriptions) > 0 {
		m.Descriptions = src.Descriptions
	}
	if len(src.Feats) > 0 {
		m.Feats = src.Feats
	}
	if len(src.Dependencies) > 0 {
		m.Dependencies = src.Dependencies
	}

	for name, entry := range src.Stats {
		m.Stats[name] = entry
	}
	for listType, byID := range src.Lists {
		for id, entries := range byID {
			m.Lists.set(listType, id, entries)
		}
	}
}

// TrimDependencies drops every dependency that is not a known module
func (m *Module) TrimDependencies(known map[string]*Module) {
	var trimmed []bg3.ModuleID
	for _, dep := range m.Dependencies {
		if dep.Name == "" {
			continue
		}
		if _, ok := known[dep.Name]; ok {
			trimmed = append(trimmed, dep)
		}
	}
	m.Dependencies = trimmed
}

// Group collects snapshots by module name, keeping discovery order
func Group(snapshots []*Module) map[string][]*Module {
	grouped := make(map[string][]*Module)
	for _, snapshot := range snapshots {
		grouped[snapshot.Name] = append(grouped[snapshot.Name], snapshot)
	}
	return grouped
}

// Fold merges every snapshot of one module in ascending version order. Equal
// versions keep discovery order.
func Fold(name string, snapshots []*Module) *Module {
	ordered := make([]*Module, len(snapshots))
	copy(ordered, snapshots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Version < ordered[j].Version
	})

	target := New("", name)
	for _, snapshot := range ordered {
		target.MergeFrom(snapshot)
	}
	return target
}

// Merge folds the snapshots of each module, trims dependencies to the merged
// set and returns the modules in load order.
func Merge(ctx context.Context, snapshots map[string][]*Module) ([]*Module, error) {
	merged := make(map[string]*Module, len(snapshots))
	for name, group := range snapshots {
		if len(group) == 0 {
			continue
		}
		merged[name] = Fold(name, group)
		slog.DebugContext(ctx, "Merged module",
			"module", name,
			"snapshots", len(group),
			"version", merged[name].Version.String())
	}

	for _, module := range merged {
		module.TrimDependencies(merged)
	}

	return Order(ctx, merged)
}

// Order computes the load order. The anchor modules come first regardless of
// their dependencies; after that a module is placed once all of its
// dependencies are placed, preferring the lexically smallest name. The input
// map is not modified.
func Order(ctx context.Context, merged map[string]*Module) ([]*Module, error) {
	remaining := make(map[string]*Module, len(merged))
	for name, module := range merged {
		remaining[name] = module
	}

	ordered := make([]*Module, 0, len(merged))
	placed := make(map[string]bool, len(merged))
	place := func(name string) {
		ordered = append(ordered, remaining[name])
		placed[name] = true
		delete(remaining, name)
	}

	for _, anchor := range bg3.AnchorModules() {
		if _, ok := remaining[anchor]; !ok {
			slog.WarnContext(ctx, "Anchor module not found", "module", anchor)
			continue
		}
		place(anchor)
	}

	for len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)

		next := ""
		for _, name := range names {
			if ready(remaining[name], placed) {
				next = name
				break
			}
		}

		if next == "" {
			unresolved := make(map[string][]string, len(remaining))
			for _, name := range names {
				for _, dep := range remaining[name].Dependencies {
					if !placed[dep.Name] {
						unresolved[name] = append(unresolved[name], dep.Name)
					}
				}
			}
			return nil, &OrderError{Unresolved: unresolved}
		}

		place(next)
	}

	return ordered, nil
}

func ready(module *Module, placed map[string]bool) bool {
	for _, dep := range module.Dependencies {
		if !placed[dep.Name] {
			return false
		}
	}
	return true
}
