package run

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewCreatesOutDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	ctx, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("output directory not created: %v", err)
	}
	if len(ctx.ID) != len("20060102T150405") {
		t.Fatalf("unexpected run id format: %q", ctx.ID)
	}
}

func TestPathsShareRunID(t *testing.T) {
	ctx := &Context{ID: "20260101T120000", OutDir: "out"}
	paths := []string{
		ctx.ResultsPath(),
		ctx.PlotPath("g1"),
		ctx.ManifestPath(),
	}
	for _, p := range paths {
		if !strings.Contains(p, ctx.ID) {
			t.Errorf("path %q does not carry the run id", p)
		}
		if !strings.HasPrefix(p, "out") {
			t.Errorf("path %q not under the output directory", p)
		}
	}
	if paths[1] != filepath.Join("out", "profile_20260101T120000_g1.png") {
		t.Errorf("unexpected plot path %q", paths[1])
	}
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	m := NewManifest(ctx, "frame.fits", "targets.csv")
	m.Targets = 5
	m.Determined = 3
	m.FatalNoFit = 1
	m.FatalNoRadius = 1
	m.ResultsPath = ctx.ResultsPath()

	if err := m.Save(ctx.ManifestPath()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if m.Finished.IsZero() {
		t.Fatal("save must stamp the finish time")
	}

	got, err := LoadManifest(ctx.ManifestPath())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.RunID != ctx.ID || got.Targets != 5 || got.Determined != 3 {
		t.Fatalf("manifest did not round-trip: %+v", got)
	}
	if got.FramePath != "frame.fits" || got.CatalogPath != "targets.csv" {
		t.Fatalf("input paths lost: %+v", got)
	}
}
