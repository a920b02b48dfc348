// Package config loads the run configuration from YAML, with defaults
// suitable for deep near-infrared survey frames.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"petrofind/internal/detect"
	"petrofind/internal/petro"
	"petrofind/internal/report"
)

// Config is the full run configuration.
type Config struct {
	// Frame is the science image to measure.
	Frame FrameConfig `yaml:"frame"`

	// Catalog is the path to the target list CSV (id,x,y,z).
	Catalog string `yaml:"catalog"`

	// OutDir receives the results CSV and the profile plots.
	OutDir string `yaml:"out_dir"`

	// MatchTolerance is the per-axis box half-width, in pixels, for
	// pairing catalog targets with detected sources.
	MatchTolerance float64 `yaml:"match_tolerance"`

	Detect    DetectConfig    `yaml:"detect"`
	Petro     PetroConfig     `yaml:"petro"`
	Cosmology CosmologyConfig `yaml:"cosmology"`
}

// FrameConfig names the FITS file and the image extension to read.
type FrameConfig struct {
	Path string `yaml:"path"`
	// HDU selects the image extension by EXTNAME. Empty means the first
	// image HDU.
	HDU string `yaml:"hdu"`
}

// DetectConfig mirrors detect.Params.
type DetectConfig struct {
	Threshold float64 `yaml:"threshold"`
	MinPixels int     `yaml:"min_pixels"`
	BlurSize  int     `yaml:"blur_size"`
	KronScale float64 `yaml:"kron_scale"`
}

// Params converts to the detector's parameter struct.
func (d DetectConfig) Params() detect.Params {
	return detect.Params{
		Threshold: d.Threshold,
		MinPixels: d.MinPixels,
		BlurSize:  d.BlurSize,
		KronScale: d.KronScale,
	}
}

// PetroConfig mirrors petro.Policy.
type PetroConfig struct {
	MaxAttempts   int     `yaml:"max_attempts"`
	StartEps      float64 `yaml:"start_eps"`
	EpsStep       float64 `yaml:"eps_step"`
	StartFraction float64 `yaml:"start_fraction"`
	FractionStep  float64 `yaml:"fraction_step"`
	TargetRatio   float64 `yaml:"target_ratio"`
	Tolerance     float64 `yaml:"tolerance"`
}

// Policy converts to the measurement policy.
func (p PetroConfig) Policy() petro.Policy {
	return petro.Policy{
		MaxAttempts:   p.MaxAttempts,
		StartEps:      p.StartEps,
		EpsStep:       p.EpsStep,
		StartFraction: p.StartFraction,
		FractionStep:  p.FractionStep,
		TargetRatio:   p.TargetRatio,
		Tolerance:     p.Tolerance,
	}
}

// CosmologyConfig mirrors report.Cosmology.
type CosmologyConfig struct {
	H0       float64 `yaml:"h0"`
	PixScale float64 `yaml:"pix_scale"`
}

// Cosmology converts to the reporting cosmology.
func (c CosmologyConfig) Cosmology() report.Cosmology {
	return report.Cosmology{H0: c.H0, PixScale: c.PixScale}
}

// Default returns the configuration used when no file is given.
func Default() Config {
	dp := detect.DefaultParams()
	pp := petro.DefaultPolicy()
	cos := report.DefaultCosmology()
	return Config{
		OutDir:         "out",
		MatchTolerance: 10,
		Detect: DetectConfig{
			Threshold: dp.Threshold,
			MinPixels: dp.MinPixels,
			BlurSize:  dp.BlurSize,
			KronScale: dp.KronScale,
		},
		Petro: PetroConfig{
			MaxAttempts:   pp.MaxAttempts,
			StartEps:      pp.StartEps,
			EpsStep:       pp.EpsStep,
			StartFraction: pp.StartFraction,
			FractionStep:  pp.FractionStep,
			TargetRatio:   pp.TargetRatio,
			Tolerance:     pp.Tolerance,
		},
		Cosmology: CosmologyConfig{
			H0:       cos.H0,
			PixScale: cos.PixScale,
		},
	}
}

// Load reads a YAML config file over the defaults. Fields absent from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
