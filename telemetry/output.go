package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/gradient/config"
	"github.com/pthm-cable/gradient/field"
)

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Frame     uint64  `csv:"frame"`
	Time      float64 `csv:"time"`
	PointerX  float64 `csv:"pointer_x"`
	PointerY  float64 `csv:"pointer_y"`
	Speed     float64 `csv:"speed"`
	Stop0Mean float64 `csv:"stop0_mean"`
	Stop1Mean float64 `csv:"stop1_mean"`
	Stop2Mean float64 `csv:"stop2_mean"`
	Stop3Mean float64 `csv:"stop3_mean"`
	Balance   float64 `csv:"balance"`
}

// NewFrameRecord flattens the pointer state and a coverage probe into a CSV row.
func NewFrameRecord(frame uint64, t float64, ps field.PointerState, c Coverage) FrameRecord {
	r := FrameRecord{
		Frame:    frame,
		Time:     t,
		PointerX: ps.Current.X,
		PointerY: ps.Current.Y,
		Speed:    ps.Velocity.Len(),
		Balance:  c.Balance,
	}
	means := [field.MaxStops]*float64{&r.Stop0Mean, &r.Stop1Mean, &r.Stop2Mean, &r.Stop3Mean}
	for i, s := range c.Stops {
		if i >= len(means) {
			break
		}
		*means[i] = s.Mean
	}
	return r
}

// OutputManager handles run output with CSV logging.
type OutputManager struct {
	dir        string
	framesFile *os.File
	perfFile   *os.File

	framesHeaderWritten bool
	perfHeaderWritten   bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	om.framesFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.framesFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteFrame appends a record to frames.csv.
func (om *OutputManager) WriteFrame(r FrameRecord) error {
	if om == nil {
		return nil
	}
	if err := writeRows(om.framesFile, []FrameRecord{r}, &om.framesHeaderWritten); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// WritePerf appends a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd uint64) error {
	if om == nil {
		return nil
	}
	if err := writeRows(om.perfFile, []PerfStatsCSV{stats.ToCSV(windowEnd)}, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// writeRows includes headers on the first write only.
func writeRows(f *os.File, records any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Path returns the path of a file inside the output directory.
func (om *OutputManager) Path(name string) string {
	if om == nil {
		return ""
	}
	return filepath.Join(om.dir, name)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	if om.framesFile != nil {
		if err := om.framesFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
