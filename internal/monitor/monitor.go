// Package monitor provides interfaces and implementations for platform
// hardware health monitoring.
package monitor

import (
	"context"
	"time"

	"github.com/roylee123/sonic-platform-modules-accton/internal/config"
)

// Monitor defines the interface for all hardware health monitors.
type Monitor interface {
	// Name returns the unique identifier for this monitor.
	Name() string

	// Check performs one poll of the monitored hardware and returns the
	// observed state. Per-sensor failures are reported inside the data,
	// not as an error; an error means the whole check could not run.
	Check(ctx context.Context) (*HealthData, error)

	// Configure applies the given configuration to the monitor.
	Configure(cfg config.MonitorConfig) error

	// Interval returns the polling interval for this monitor.
	Interval() time.Duration

	// Enabled returns whether the monitor is enabled.
	Enabled() bool

	// DefaultConfig returns the default MonitorConfig for this monitor.
	DefaultConfig() config.MonitorConfig
}

// BaseMonitor provides common functionality for all monitors.
type BaseMonitor struct {
	name     string
	interval time.Duration
	enabled  bool
}

// NewBaseMonitor creates a new BaseMonitor with the given name and
// default interval.
func NewBaseMonitor(name string, interval time.Duration) BaseMonitor {
	return BaseMonitor{
		name:     name,
		interval: interval,
		enabled:  true,
	}
}

// Name returns the monitor name.
func (b *BaseMonitor) Name() string {
	return b.name
}

// Interval returns the polling interval.
func (b *BaseMonitor) Interval() time.Duration {
	return b.interval
}

// Enabled returns whether the monitor is enabled.
func (b *BaseMonitor) Enabled() bool {
	return b.enabled
}

// SetInterval sets the polling interval.
func (b *BaseMonitor) SetInterval(d time.Duration) {
	b.interval = d
}

// SetEnabled sets whether the monitor is enabled.
func (b *BaseMonitor) SetEnabled(enabled bool) {
	b.enabled = enabled
}

// DefaultConfig returns the default MonitorConfig for this monitor.
func (b *BaseMonitor) DefaultConfig() config.MonitorConfig {
	return config.MonitorConfig{
		Enabled:  true,
		Interval: b.interval,
	}
}
