package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/glowlab/synaptic/config"
)

// csvStream appends records of one type to an open CSV file, writing the
// header exactly once.
type csvStream[T any] struct {
	file      *os.File
	hasHeader bool
}

func newCSVStream[T any](dir, name string) (*csvStream[T], error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvStream[T]{file: f}, nil
}

func (s *csvStream[T]) write(rec T) error {
	records := []T{rec}
	if !s.hasHeader {
		s.hasHeader = true
		return gocsv.Marshal(records, s.file)
	}
	return gocsv.MarshalWithoutHeaders(records, s.file)
}

func (s *csvStream[T]) close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// OutputManager owns a run's output directory: the config snapshot plus
// telemetry.csv and perf.csv. A nil manager is valid and discards every
// write, so callers never branch on whether output is enabled.
type OutputManager struct {
	dir   string
	stats *csvStream[WindowStats]
	perf  *csvStream[PerfStatsCSV]
}

// NewOutputManager creates dir and opens the CSV streams. An empty dir
// disables output by returning a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	stats, err := newCSVStream[WindowStats](dir, "telemetry.csv")
	if err != nil {
		return nil, err
	}
	perf, err := newCSVStream[PerfStatsCSV](dir, "perf.csv")
	if err != nil {
		stats.close()
		return nil, err
	}
	return &OutputManager{dir: dir, stats: stats, perf: perf}, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends one window record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.stats.write(stats); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf appends one performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write(stats.ToCSV(windowEnd)); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// Dir returns the output directory, or "" for a disabled manager.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes both CSV files, returning the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	err := om.stats.close()
	if e := om.perf.close(); err == nil {
		err = e
	}
	return err
}
