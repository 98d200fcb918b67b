package monitor

import (
	"fmt"
	"sync"

	"github.com/roylee123/sonic-platform-modules-accton/internal/config"
	"github.com/roylee123/sonic-platform-modules-accton/internal/platform"
)

// Registry manages monitor registration and lifecycle.
type Registry struct {
	mu       sync.RWMutex
	monitors map[string]Monitor
}

// NewRegistry creates a new monitor registry.
func NewRegistry() *Registry {
	return &Registry{
		monitors: make(map[string]Monitor),
	}
}

// Register adds a monitor to the registry.
func (r *Registry) Register(m Monitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := m.Name()
	if _, exists := r.monitors[name]; exists {
		return fmt.Errorf("monitor %s already registered", name)
	}

	r.monitors[name] = m
	return nil
}

// Get retrieves a monitor by name.
func (r *Registry) Get(name string) (Monitor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.monitors[name]
	return m, ok
}

// All returns all registered monitors.
func (r *Registry) All() []Monitor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Monitor, 0, len(r.monitors))
	for _, m := range r.monitors {
		result = append(result, m)
	}
	return result
}

// Configure applies configuration to all registered monitors.
func (r *Registry) Configure(configs map[string]config.MonitorConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, cfg := range configs {
		if m, ok := r.monitors[name]; ok {
			if err := m.Configure(cfg); err != nil {
				return fmt.Errorf("failed to configure monitor %s: %w", name, err)
			}
		}
	}
	return nil
}

// EnabledMonitors returns only the enabled monitors.
func (r *Registry) EnabledMonitors() []Monitor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Monitor
	for _, m := range r.monitors {
		if m.Enabled() {
			result = append(result, m)
		}
	}
	return result
}

// DefaultConfigs returns the default configuration of every registered
// monitor, keyed by name.
func (r *Registry) DefaultConfigs() map[string]config.MonitorConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]config.MonitorConfig, len(r.monitors))
	for name, m := range r.monitors {
		result[name] = m.DefaultConfig()
	}
	return result
}

// PlatformRegistry creates a registry with the monitors the given
// platform profile supports. The host-level CPU thermal monitor is
// registered on every platform.
func PlatformRegistry(profile platform.Profile) *Registry {
	r := NewRegistry()

	if profile.FanCount() > 0 {
		_ = r.Register(NewFanMonitor(profile))
	}
	if profile.ThermalCount() > 0 {
		_ = r.Register(NewThermalMonitor(profile))
	}
	_ = r.Register(NewCPUTempMonitor())

	return r
}
