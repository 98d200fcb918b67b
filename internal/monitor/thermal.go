package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/roylee123/sonic-platform-modules-accton/internal/config"
	"github.com/roylee123/sonic-platform-modules-accton/internal/logger"
	"github.com/roylee123/sonic-platform-modules-accton/internal/platform"
	"github.com/roylee123/sonic-platform-modules-accton/internal/sysfs"
)

// thermalStartIndex is the first thermal probe index. Probe numbering
// is 1-based, matching the board silkscreen.
const thermalStartIndex = 1

// ThermalMonitor reads the main-board thermal probes. Each read is
// independent and stateless; nothing is cached between checks.
type ThermalMonitor struct {
	BaseMonitor
	profile platform.Profile

	// paths maps each 1-based probe index to its device path pattern.
	// The hwmon segment stays a wildcard and is resolved on every read,
	// since the kernel may renumber hwmon directories across reloads.
	paths map[int]string
}

// NewThermalMonitor creates a thermal reader for the given platform,
// expanding the device path pattern for every probe at construction.
func NewThermalMonitor(profile platform.Profile) *ThermalMonitor {
	m := &ThermalMonitor{
		BaseMonitor: NewBaseMonitor("thermal", 30*time.Second),
		profile:     profile,
		paths:       make(map[int]string, profile.ThermalCount()),
	}
	for idx := thermalStartIndex; idx <= profile.ThermalCount(); idx++ {
		path, err := profile.ThermalPath(idx)
		if err != nil {
			continue // cannot happen for a well-formed profile
		}
		m.paths[idx] = path
	}
	return m
}

// Configure applies the configuration to the monitor.
func (m *ThermalMonitor) Configure(cfg config.MonitorConfig) error {
	m.SetEnabled(cfg.Enabled)
	if cfg.Interval > 0 {
		m.SetInterval(cfg.Interval)
	}
	return nil
}

// NumSensors returns the number of thermal probes on the main board.
func (m *ThermalMonitor) NumSensors() int {
	return m.profile.ThermalCount()
}

// StartIndex returns the first valid probe index.
func (m *ThermalMonitor) StartIndex() int {
	return thermalStartIndex
}

// PathMapSize returns the number of resolved device path patterns.
func (m *ThermalMonitor) PathMapSize() int {
	return len(m.paths)
}

// PathFor returns the device path pattern for the given probe index.
func (m *ThermalMonitor) PathFor(idx int) (string, error) {
	path, ok := m.paths[idx]
	if !ok {
		return "", fmt.Errorf("thermal index %d out of range [%d, %d]", idx, thermalStartIndex, m.NumSensors())
	}
	return path, nil
}

// TempFor reads one probe and returns its value in integer millidegrees
// Celsius. Out-of-range index, missing node, empty or malformed content
// all yield an error; nothing panics and nothing is retried.
func (m *ThermalMonitor) TempFor(idx int) (int, error) {
	pattern, err := m.PathFor(idx)
	if err != nil {
		return 0, err
	}

	path, err := sysfs.ResolveGlob(pattern)
	if err != nil {
		return 0, err
	}

	return sysfs.ReadInt(path)
}

// Average returns the mean of all probes in integer millidegrees,
// rounded half away from zero. If any single probe is unavailable the
// aggregate fails rather than silently averaging in a zero.
func (m *ThermalMonitor) Average() (int, error) {
	n := m.NumSensors()
	if n == 0 {
		return 0, fmt.Errorf("platform %s has no thermal probes", m.profile.Name)
	}

	var sum int64
	for idx := thermalStartIndex; idx <= n; idx++ {
		val, err := m.TempFor(idx)
		if err != nil {
			return 0, fmt.Errorf("thermal probe %d unavailable: %w", idx, err)
		}
		sum += int64(val)
	}

	return roundDiv(sum, int64(n)), nil
}

// roundDiv divides sum by n, rounding half away from zero.
func roundDiv(sum, n int64) int {
	if sum >= 0 {
		return int((sum + n/2) / n)
	}
	return int((sum - n/2) / n)
}

// Check reads every probe once and reports per-probe readings plus the
// average when all probes are available.
func (m *ThermalMonitor) Check(ctx context.Context) (*HealthData, error) {
	log := logger.WithComponent("thermal")

	data := ThermalData{
		Sensors: make([]ThermalReading, 0, m.NumSensors()),
	}

	var sum int64
	allAvailable := true

	for idx := thermalStartIndex; idx <= m.NumSensors(); idx++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		val, err := m.TempFor(idx)
		if err != nil {
			log.Error().Err(err).Int("index", idx).Msg("unable to read thermal probe")
			data.Sensors = append(data.Sensors, ThermalReading{
				Index: idx,
				Error: err.Error(),
			})
			allAvailable = false
			continue
		}

		data.Sensors = append(data.Sensors, ThermalReading{
			Index:        idx,
			Millidegrees: val,
			Available:    true,
		})
		sum += int64(val)
	}

	if allAvailable && m.NumSensors() > 0 {
		avg := roundDiv(sum, int64(m.NumSensors()))
		data.AverageMillidegrees = &avg
		log.Debug().Int("average_millidegrees", avg).Msg("thermal average computed")
	}

	return &HealthData{
		Type:      m.Name(),
		Timestamp: time.Now(),
		Platform:  m.profile.Name,
		Data:      data,
	}, nil
}
