package monitor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/roylee123/sonic-platform-modules-accton/internal/logger"
	"github.com/roylee123/sonic-platform-modules-accton/internal/platform"
)

func init() {
	_ = logger.Init(logger.Config{Level: "disabled"})
}

// fakeFanPlatform builds a fan profile backed by writable files in a
// temp dir, one fault flag per fan.
func fakeFanPlatform(t *testing.T, fanCount int) platform.Profile {
	t.Helper()
	dir := t.TempDir()

	paths := make([]string, fanCount)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("fan%d_fault", i+1))
		writeFault(t, paths[i], "0")
	}
	return platform.Profile{Name: "test-platform", FanFaultPaths: paths}
}

func writeFault(t *testing.T, path, val string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(val+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func checkFans(t *testing.T, m *FanMonitor) FanStatusData {
	t.Helper()
	hd, err := m.Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	data, ok := hd.Data.(FanStatusData)
	if !ok {
		t.Fatalf("Data is not FanStatusData: %T", hd.Data)
	}
	return data
}

func TestFanMonitor_FirstReadingAlwaysTransitions(t *testing.T) {
	m := NewFanMonitor(fakeFanPlatform(t, 5))

	data := checkFans(t, m)

	// Initial state is a sentinel, so the first normal reading logs for
	// every fan.
	if len(data.Events) != 5 {
		t.Fatalf("first check: %d events, want 5", len(data.Events))
	}
	for _, ev := range data.Events {
		if ev.Fault {
			t.Errorf("FAN-%d: unexpected fault event on normal reading", ev.Fan)
		}
		want := fmt.Sprintf("FAN-%d normal is detected", ev.Fan)
		if ev.Msg != want {
			t.Errorf("event message = %q, want %q", ev.Msg, want)
		}
	}

	// Unchanged readings emit nothing.
	data = checkFans(t, m)
	if len(data.Events) != 0 {
		t.Errorf("unchanged check: %d events, want 0", len(data.Events))
	}
}

func TestFanMonitor_FaultTransition(t *testing.T) {
	p := fakeFanPlatform(t, 3)
	m := NewFanMonitor(p)

	checkFans(t, m) // settle initial state

	// Fan 2 goes into fault.
	writeFault(t, p.FanFaultPaths[1], "1")

	data := checkFans(t, m)
	if len(data.Events) != 1 {
		t.Fatalf("fault check: %d events, want 1", len(data.Events))
	}
	ev := data.Events[0]
	if ev.Fan != 2 || !ev.Fault {
		t.Errorf("event = %+v, want fault on FAN-2", ev)
	}
	if ev.Msg != "Alarm for FAN-2 fault is detected" {
		t.Errorf("event message = %q", ev.Msg)
	}
	if data.Fans[1].Status != FanStatusFault {
		t.Errorf("fan 2 status = %q, want fault", data.Fans[1].Status)
	}

	// Repeated fault readings emit nothing.
	data = checkFans(t, m)
	if len(data.Events) != 0 {
		t.Errorf("repeated fault: %d events, want 0", len(data.Events))
	}

	// Recovery emits exactly one INFO transition.
	writeFault(t, p.FanFaultPaths[1], "0")
	data = checkFans(t, m)
	if len(data.Events) != 1 {
		t.Fatalf("recovery check: %d events, want 1", len(data.Events))
	}
	ev = data.Events[0]
	if ev.Fan != 2 || ev.Fault {
		t.Errorf("event = %+v, want recovery on FAN-2", ev)
	}
	if ev.Msg != "FAN-2 normal is detected" {
		t.Errorf("event message = %q", ev.Msg)
	}

	// And repeated normal readings emit nothing.
	data = checkFans(t, m)
	if len(data.Events) != 0 {
		t.Errorf("repeated normal: %d events, want 0", len(data.Events))
	}
}

func TestFanMonitor_NonOneContentIsNormal(t *testing.T) {
	p := fakeFanPlatform(t, 1)
	m := NewFanMonitor(p)
	checkFans(t, m)

	// Anything other than "1" counts as normal, including junk.
	writeFault(t, p.FanFaultPaths[0], "garbage")
	data := checkFans(t, m)
	if len(data.Events) != 0 {
		t.Errorf("junk content: %d events, want 0 (already normal)", len(data.Events))
	}
	if data.Fans[0].Status != FanStatusNormal {
		t.Errorf("status = %q, want normal", data.Fans[0].Status)
	}
}

func TestFanMonitor_UnreadableFanIsIsolated(t *testing.T) {
	p := fakeFanPlatform(t, 3)
	m := NewFanMonitor(p)
	checkFans(t, m)

	// Fan 1 node disappears; fans 2 and 3 must still be checked.
	if err := os.Remove(p.FanFaultPaths[0]); err != nil {
		t.Fatal(err)
	}
	writeFault(t, p.FanFaultPaths[2], "1")

	data := checkFans(t, m)

	if data.Fans[0].Status != FanStatusUnavailable {
		t.Errorf("fan 1 status = %q, want unavailable", data.Fans[0].Status)
	}
	if data.Fans[0].Error == "" {
		t.Error("fan 1 should carry an error")
	}
	if data.Fans[1].Status != FanStatusNormal {
		t.Errorf("fan 2 status = %q, want normal", data.Fans[1].Status)
	}
	if data.Fans[2].Status != FanStatusFault {
		t.Errorf("fan 3 status = %q, want fault", data.Fans[2].Status)
	}
	if len(data.Events) != 1 || data.Events[0].Fan != 3 {
		t.Errorf("events = %+v, want single fault event for FAN-3", data.Events)
	}

	// The unreadable fan's state was untouched: when the node returns
	// with a fault, the transition still fires exactly once.
	writeFault(t, p.FanFaultPaths[0], "1")
	data = checkFans(t, m)
	if len(data.Events) != 1 || data.Events[0].Fan != 1 || !data.Events[0].Fault {
		t.Errorf("events = %+v, want single fault event for FAN-1", data.Events)
	}
}

func TestFanMonitor_ConfigureInterval(t *testing.T) {
	m := NewFanMonitor(fakeFanPlatform(t, 2))

	def := m.DefaultConfig()
	if def.Interval.Seconds() != 3 {
		t.Errorf("default interval = %v, want 3s", def.Interval)
	}

	cfg := def
	cfg.Enabled = false
	if err := m.Configure(cfg); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	if m.Enabled() {
		t.Error("monitor should be disabled")
	}
}
