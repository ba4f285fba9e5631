package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"calibra/domain/calibration"
)

// Options collects everything a run can tune. There is no environment
// lookup anywhere; the CLI flags and an optional layout file are the
// whole configuration surface.
type Options struct {
	InputPath      string
	OutputDir      string
	Unit           calibration.Unit
	Analyte        string
	RecoveryFactor float64
	Jobs           int
	Layout         calibration.Layout
}

// Default returns the stock options: micromolar caffeic acid, no
// recovery correction, sequential sheet processing, default plate
// layout, results under ./Results.
func Default() Options {
	return Options{
		OutputDir:      "Results",
		Unit:           calibration.UnitMicromolar,
		Analyte:        "Caffeic acid",
		RecoveryFactor: 1,
		Jobs:           1,
		Layout:         calibration.DefaultLayout(),
	}
}

// Validate rejects option sets that cannot drive a run.
func (o Options) Validate() error {
	if o.InputPath == "" {
		return fmt.Errorf("config: input path is required")
	}
	if o.Jobs < 1 {
		return fmt.Errorf("config: jobs must be >= 1, got %d", o.Jobs)
	}
	if o.RecoveryFactor <= 0 {
		return fmt.Errorf("config: recovery factor must be > 0, got %g", o.RecoveryFactor)
	}
	return o.Layout.Validate()
}

// LoadLayout reads a plate layout override from a YAML file. Fields
// absent from the file keep their defaults, so a file can override just
// the stride or just the body row range.
func LoadLayout(path string) (calibration.Layout, error) {
	layout := calibration.DefaultLayout()
	data, err := os.ReadFile(path)
	if err != nil {
		return layout, fmt.Errorf("read layout file: %w", err)
	}
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return layout, fmt.Errorf("parse layout file %s: %w", path, err)
	}
	if err := layout.Validate(); err != nil {
		return layout, err
	}
	return layout, nil
}
