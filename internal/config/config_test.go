package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPolicyValues(t *testing.T) {
	cfg := Default()
	pol := cfg.Petro.Policy()
	if pol.MaxAttempts != 50 {
		t.Errorf("MaxAttempts = %d, want 50", pol.MaxAttempts)
	}
	if pol.StartEps != 0.01 || pol.EpsStep != 0.0195 {
		t.Errorf("ellipticity schedule = %v/%v, want 0.01/0.0195", pol.StartEps, pol.EpsStep)
	}
	if pol.StartFraction != 100 || pol.FractionStep != 18 {
		t.Errorf("fraction schedule = %v/%v, want 100/18", pol.StartFraction, pol.FractionStep)
	}
	if pol.TargetRatio != 0.2 || pol.Tolerance != 0.1 {
		t.Errorf("criterion = %v/%v, want 0.2/0.1", pol.TargetRatio, pol.Tolerance)
	}

	cos := cfg.Cosmology.Cosmology()
	if cos.H0 != 73.8 || cos.PixScale != 0.031 {
		t.Errorf("cosmology = %+v", cos)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	yaml := `
frame:
  path: frame.fits
  hdu: SCI
catalog: targets.csv
match_tolerance: 25
petro:
  tolerance: 0.05
detect:
  threshold: 1.25
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Frame.Path != "frame.fits" || cfg.Frame.HDU != "SCI" {
		t.Fatalf("frame section not loaded: %+v", cfg.Frame)
	}
	if cfg.MatchTolerance != 25 {
		t.Fatalf("match_tolerance = %v, want 25", cfg.MatchTolerance)
	}
	if cfg.Petro.Tolerance != 0.05 {
		t.Fatalf("petro.tolerance = %v, want 0.05", cfg.Petro.Tolerance)
	}
	if cfg.Detect.Threshold != 1.25 {
		t.Fatalf("detect.threshold = %v, want 1.25", cfg.Detect.Threshold)
	}

	// Untouched fields keep their defaults.
	if cfg.Petro.MaxAttempts != 50 {
		t.Fatalf("unset petro.max_attempts should default to 50, got %d", cfg.Petro.MaxAttempts)
	}
	if cfg.Detect.KronScale != 2.5 {
		t.Fatalf("unset detect.kron_scale should default to 2.5, got %v", cfg.Detect.KronScale)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
