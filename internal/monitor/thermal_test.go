package monitor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roylee123/sonic-platform-modules-accton/internal/platform"
)

// fakeThermalPlatform builds a thermal profile backed by a fake sysfs
// tree: <dir>/<bus>-00<addr>/hwmon/hwmon<k>/temp1_input. The hwmon
// directory number varies per device to exercise the wildcard.
func fakeThermalPlatform(t *testing.T, values []int) (platform.Profile, string) {
	t.Helper()
	dir := t.TempDir()

	nodes := make([]platform.ThermalNode, len(values))
	for i, val := range values {
		nodes[i] = platform.ThermalNode{Bus: "18", Addr: fmt.Sprintf("4%x", 8+i)}
		hwmonDir := filepath.Join(dir,
			fmt.Sprintf("18-00%s", nodes[i].Addr), "hwmon", fmt.Sprintf("hwmon%d", i+2))
		if err := os.MkdirAll(hwmonDir, 0755); err != nil {
			t.Fatal(err)
		}
		writeTemp(t, filepath.Join(hwmonDir, "temp1_input"), fmt.Sprintf("%d", val))
	}

	return platform.Profile{
		Name:                "test-platform",
		ThermalNodes:        nodes,
		ThermalPathTemplate: filepath.Join(dir, "%s-00%s", "hwmon", "hwmon*", "temp1_input"),
	}, dir
}

func writeTemp(t *testing.T, path, val string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(val+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestThermalMonitor_PathMap(t *testing.T) {
	m := NewThermalMonitor(platform.AS7816_64X())

	if m.NumSensors() != 6 {
		t.Errorf("NumSensors = %d, want 6", m.NumSensors())
	}
	if m.StartIndex() != 1 {
		t.Errorf("StartIndex = %d, want 1", m.StartIndex())
	}
	if m.PathMapSize() != 6 {
		t.Errorf("PathMapSize = %d, want 6", m.PathMapSize())
	}

	path, err := m.PathFor(3)
	if err != nil {
		t.Fatalf("PathFor(3) failed: %v", err)
	}
	if !strings.HasSuffix(path, "18-004a/hwmon/hwmon*/temp1_input") {
		t.Errorf("PathFor(3) = %q, want suffix 18-004a/hwmon/hwmon*/temp1_input", path)
	}
}

func TestThermalMonitor_TempFor(t *testing.T) {
	p, _ := fakeThermalPlatform(t, []int{30000, 31500, 33000})
	m := NewThermalMonitor(p)

	for idx, want := range map[int]int{1: 30000, 2: 31500, 3: 33000} {
		got, err := m.TempFor(idx)
		if err != nil {
			t.Fatalf("TempFor(%d) failed: %v", idx, err)
		}
		if got != want {
			t.Errorf("TempFor(%d) = %d, want %d", idx, got, want)
		}
	}
}

func TestThermalMonitor_OutOfRangeIndex(t *testing.T) {
	p, _ := fakeThermalPlatform(t, []int{30000, 31000})
	m := NewThermalMonitor(p)

	for _, idx := range []int{0, 3, -1} {
		if _, err := m.TempFor(idx); err == nil {
			t.Errorf("TempFor(%d): expected range error", idx)
		}
	}
}

func TestThermalMonitor_MissingNode(t *testing.T) {
	p, dir := fakeThermalPlatform(t, []int{30000, 31000})
	m := NewThermalMonitor(p)

	// Remove probe 2's whole device directory: the glob has no match.
	if err := os.RemoveAll(filepath.Join(dir, "18-0049")); err != nil {
		t.Fatal(err)
	}

	if _, err := m.TempFor(2); err == nil {
		t.Error("expected error for missing device node")
	}

	// Probe 1 is unaffected.
	if _, err := m.TempFor(1); err != nil {
		t.Errorf("TempFor(1) failed: %v", err)
	}
}

func TestThermalMonitor_EmptyAndMalformedContent(t *testing.T) {
	p, dir := fakeThermalPlatform(t, []int{30000, 31000})
	m := NewThermalMonitor(p)

	node := filepath.Join(dir, "18-0049", "hwmon", "hwmon3", "temp1_input")

	writeTemp(t, node, "")
	if _, err := m.TempFor(2); err == nil {
		t.Error("expected error for empty content")
	}

	writeTemp(t, node, "hot")
	if _, err := m.TempFor(2); err == nil {
		t.Error("expected error for malformed content")
	}
}

func TestThermalMonitor_Average(t *testing.T) {
	p, _ := fakeThermalPlatform(t, []int{30000, 31000, 35000})
	m := NewThermalMonitor(p)

	avg, err := m.Average()
	if err != nil {
		t.Fatalf("Average failed: %v", err)
	}
	if avg != 32000 {
		t.Errorf("Average = %d, want 32000", avg)
	}
}

func TestThermalMonitor_AverageRoundsHalfAwayFromZero(t *testing.T) {
	// Mean of 1 and 2 millidegrees is 1.5: rounds to 2, not truncated to 1.
	p, _ := fakeThermalPlatform(t, []int{1, 2})
	m := NewThermalMonitor(p)

	avg, err := m.Average()
	if err != nil {
		t.Fatalf("Average failed: %v", err)
	}
	if avg != 2 {
		t.Errorf("Average = %d, want 2 (round half away from zero)", avg)
	}
}

func TestThermalMonitor_AverageFailsOnAnyUnavailableProbe(t *testing.T) {
	p, dir := fakeThermalPlatform(t, []int{30000, 31000, 35000})
	m := NewThermalMonitor(p)

	if err := os.RemoveAll(filepath.Join(dir, "18-004a")); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Average(); err == nil {
		t.Error("expected aggregate failure when one probe is unavailable")
	}
}

func TestThermalMonitor_Check(t *testing.T) {
	p, dir := fakeThermalPlatform(t, []int{30000, 32000})
	m := NewThermalMonitor(p)

	hd, err := m.Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	data, ok := hd.Data.(ThermalData)
	if !ok {
		t.Fatalf("Data is not ThermalData: %T", hd.Data)
	}
	if len(data.Sensors) != 2 {
		t.Fatalf("sensors = %d, want 2", len(data.Sensors))
	}
	if data.AverageMillidegrees == nil || *data.AverageMillidegrees != 31000 {
		t.Errorf("AverageMillidegrees = %v, want 31000", data.AverageMillidegrees)
	}

	// One probe drops out: per-probe readings keep flowing, the
	// aggregate is withheld.
	if err := os.RemoveAll(filepath.Join(dir, "18-0049")); err != nil {
		t.Fatal(err)
	}

	hd, err = m.Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	data = hd.Data.(ThermalData)
	if data.AverageMillidegrees != nil {
		t.Errorf("AverageMillidegrees = %v, want nil with unavailable probe", *data.AverageMillidegrees)
	}
	if data.Sensors[0].Available != true || data.Sensors[1].Available != false {
		t.Errorf("availability = %+v", data.Sensors)
	}
	if data.Sensors[1].Error == "" {
		t.Error("unavailable probe should carry an error")
	}
}

func TestRoundDiv(t *testing.T) {
	cases := []struct {
		sum, n int64
		want   int
	}{
		{90000, 3, 30000},
		{3, 2, 2},   // 1.5 → 2
		{5, 2, 3},   // 2.5 → 3
		{-3, 2, -2}, // -1.5 → -2
		{7, 3, 2},   // 2.33 → 2
	}
	for _, c := range cases {
		if got := roundDiv(c.sum, c.n); got != c.want {
			t.Errorf("roundDiv(%d, %d) = %d, want %d", c.sum, c.n, got, c.want)
		}
	}
}
