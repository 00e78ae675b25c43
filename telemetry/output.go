package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/quantaviz/go-wigner/config"
)

// OutputManager writes run artifacts into a single output directory.
type OutputManager struct {
	dir string
}

// NewOutputManager creates the output directory. Returns nil if dir is
// empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &OutputManager{dir: dir}, nil
}

// WriteFrameStats writes frames.csv.
func (om *OutputManager) WriteFrameStats(stats []FrameStats) error {
	f, err := os.Create(filepath.Join(om.dir, "frames.csv"))
	if err != nil {
		return fmt.Errorf("creating frames.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&stats, f); err != nil {
		return fmt.Errorf("writing frames.csv: %w", err)
	}
	return nil
}

// WriteConfig saves the effective configuration as YAML alongside the
// frame stats, so a run can be reproduced from its output directory.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(om.dir, "config.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config.yaml: %w", err)
	}
	return nil
}
