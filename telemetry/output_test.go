package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/gradient/config"
	"github.com/pthm-cable/gradient/field"
)

func TestNilOutputManagerIsNoop(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v, %v", om, err)
	}
	if err := om.WriteFrame(FrameRecord{}); err != nil {
		t.Errorf("nil WriteFrame: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Errorf("nil WritePerf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	p := field.DefaultParams()
	ps := field.NewPointerState()
	for i := uint64(0); i < 3; i++ {
		c := MeasureCoverage(float64(i), ps, &p, 4)
		if err := om.WriteFrame(NewFrameRecord(i, float64(i), ps, c)); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}
	if err := om.WritePerf(NewPerfCollector(4).Stats(), 3); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}

	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "frame,time,pointer_x") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "stop0_mean") != 1 {
		t.Errorf("expected header written once")
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestNewFrameRecordFlattensStops(t *testing.T) {
	ps := field.NewPointerState()
	ps.Velocity = field.V(3, 4)
	c := Coverage{Stops: []StopCoverage{{Mean: 0.5}, {Mean: 0.3}, {Mean: 0.2}}, Balance: 0.9}
	r := NewFrameRecord(7, 1.5, ps, c)
	if r.Speed != 5 || r.Stop1Mean != 0.3 || r.Stop3Mean != 0 || r.Balance != 0.9 {
		t.Errorf("unexpected record %+v", r)
	}
}
