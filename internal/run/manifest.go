package run

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest records what a run measured and how it went, persisted next
// to the run's outputs.
type Manifest struct {
	Version  int       `json:"version"`
	RunID    string    `json:"run_id"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`

	// Input paths
	FramePath   string `json:"frame,omitempty"`
	CatalogPath string `json:"catalog,omitempty"`

	// Outcome counts
	Targets       int `json:"targets"`
	Determined    int `json:"determined"`
	FatalNoFit    int `json:"fatal_no_fit"`
	FatalNoRadius int `json:"fatal_no_radius"`

	// Output paths (relative to the run directory)
	ResultsPath string `json:"results,omitempty"`
}

// NewManifest starts a manifest for the given run context.
func NewManifest(ctx *Context, framePath, catalogPath string) *Manifest {
	return &Manifest{
		Version:     1,
		RunID:       ctx.ID,
		Started:     ctx.Started,
		FramePath:   framePath,
		CatalogPath: catalogPath,
	}
}

// Save stamps the finish time and writes the manifest to path.
func (m *Manifest) Save(path string) error {
	m.Finished = time.Now().UTC()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadManifest reads a manifest back from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return &m, nil
}
