package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/contato-sim/contato/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir        string
	seriesFile *os.File

	seriesHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the
// output directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	seriesPath := filepath.Join(dir, "series.csv")
	f, err := os.Create(seriesPath)
	if err != nil {
		return nil, fmt.Errorf("creating series.csv: %w", err)
	}
	om.seriesFile = f

	return om, nil
}

// WriteConfig saves the run configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteRecord appends one time series record to series.csv.
func (om *OutputManager) WriteRecord(rec Record) error {
	if om == nil {
		return nil
	}

	records := []Record{rec}

	if !om.seriesHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.seriesFile); err != nil {
			return fmt.Errorf("writing series: %w", err)
		}
		om.seriesHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.seriesFile); err != nil {
			return fmt.Errorf("writing series: %w", err)
		}
	}

	return nil
}

// WriteSeries appends every record of a completed run to series.csv.
func (om *OutputManager) WriteSeries(series []Record) error {
	for _, rec := range series {
		if err := om.WriteRecord(rec); err != nil {
			return err
		}
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil || om.seriesFile == nil {
		return nil
	}
	return om.seriesFile.Close()
}
