package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/mossfeld/henyard/config"
)

// OutputManager writes session output to a directory: events.csv,
// summary.csv and a config.yaml snapshot of the run's parameters.
type OutputManager struct {
	dir         string
	eventsFile  *os.File
	summaryFile *os.File

	eventsHeaderWritten bool
	written             int
}

// NewOutputManager creates the output directory and opens the CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "events.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating events.csv: %w", err)
	}
	om.eventsFile = f

	f, err = os.Create(filepath.Join(dir, "summary.csv"))
	if err != nil {
		om.eventsFile.Close()
		return nil, fmt.Errorf("creating summary.csv: %w", err)
	}
	om.summaryFile = f

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteEvents appends all records not yet written to events.csv.
func (om *OutputManager) WriteEvents(records []Record) error {
	if om == nil {
		return nil
	}
	if om.written >= len(records) {
		return nil
	}
	pending := records[om.written:]

	if !om.eventsHeaderWritten {
		if err := gocsv.Marshal(pending, om.eventsFile); err != nil {
			return fmt.Errorf("writing events: %w", err)
		}
		om.eventsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(pending, om.eventsFile); err != nil {
			return fmt.Errorf("writing events: %w", err)
		}
	}
	om.written = len(records)
	return nil
}

// WriteSummary writes the single summary row.
func (om *OutputManager) WriteSummary(s Summary) error {
	if om == nil {
		return nil
	}
	if err := gocsv.Marshal([]Summary{s}, om.summaryFile); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// Flush syncs both files to disk.
func (om *OutputManager) Flush() error {
	if om == nil {
		return nil
	}
	if err := om.eventsFile.Sync(); err != nil {
		return err
	}
	return om.summaryFile.Sync()
}

// Close closes the output files.
func (om *OutputManager) Close() {
	if om == nil {
		return
	}
	om.eventsFile.Close()
	om.summaryFile.Close()
}
