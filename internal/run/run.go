// Package run provides the per-run context: the run identifier, output
// layout, and the persisted run manifest.
package run

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Context identifies one pipeline run. The ID is stamped once at
// construction and threaded through everything that names an output
// file, so all artifacts of a run share it.
type Context struct {
	ID      string
	OutDir  string
	Started time.Time
}

// New creates a run context with a timestamp-derived ID and ensures the
// output directory exists.
func New(outDir string) (*Context, error) {
	now := time.Now().UTC()
	ctx := &Context{
		ID:      now.Format("20060102T150405"),
		OutDir:  outDir,
		Started: now,
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return ctx, nil
}

// ResultsPath is the results CSV for this run.
func (c *Context) ResultsPath() string {
	return filepath.Join(c.OutDir, fmt.Sprintf("petrosian_%s.csv", c.ID))
}

// PlotPath is the profile plot for one target in this run.
func (c *Context) PlotPath(targetID string) string {
	return filepath.Join(c.OutDir, fmt.Sprintf("profile_%s_%s.png", c.ID, targetID))
}

// ManifestPath is the run manifest for this run.
func (c *Context) ManifestPath() string {
	return filepath.Join(c.OutDir, fmt.Sprintf("run_%s.json", c.ID))
}
