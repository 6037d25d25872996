// Package commands implements the antler subcommands. Each command does
// its own lightweight flag parsing and delegates the real work to the
// ants, toolkit, pipeline and provenance packages.
package commands

import (
	"os"

	"antler/internal/ants"
	"antler/internal/config"
	"antler/internal/mesh"
	"antler/internal/provenance"
	"antler/internal/toolkit"
)

// newRunner resolves the ANTs bin directory and thread count and returns
// a runner wired to record an audit trail of invocations. Resolution
// order: ANTLER_ANTS_BIN, the configured preference, then discovery.
func newRunner() (*ants.Runner, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{}
	}

	dir := os.Getenv("ANTLER_ANTS_BIN")
	if dir == "" {
		dir = cfg.ANTsBin
	}
	m := toolkit.NewManager()
	if dir == "" {
		if in := m.SelectOptimal(); in != nil {
			dir = in.Dir
		}
	}

	threads := cfg.Threads
	if threads == 0 {
		threads = m.Hardware().RecommendedThreads()
	}

	r := ants.NewRunner(dir, threads)
	attachAudit(r)
	return r, cfg
}

// attachAudit records each completed invocation in the provenance store.
// A store that cannot be opened just means no audit trail.
func attachAudit(r *ants.Runner) {
	store, err := provenance.NewStore("")
	if err != nil {
		return
	}
	r.Observer = func(inv ants.Invocation) {
		_ = store.Save(&provenance.Record{
			Tool:      inv.Tool,
			Args:      inv.Args,
			Algorithm: provenance.Blake3.String(),
			Duration:  inv.Duration,
		})
	}
}

// newMapper and newMerger build the surface collaborators, honoring any
// configured helper tool names.
func newMapper(cfg *config.Config) *mesh.CommandMapper {
	return mesh.NewCommandMapper(cfg.MapperTool)
}

func newMerger(cfg *config.Config) *mesh.CommandMerger {
	return mesh.NewCommandMerger(cfg.MergerTool)
}
