package monitor

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/roylee123/sonic-platform-modules-accton/internal/config"
	"github.com/roylee123/sonic-platform-modules-accton/internal/logger"
)

// CPUTempMonitor reads host-level temperature sensors through the OS
// (thermal zones, coretemp and the like). It covers the switch CPU,
// which the platform I2C probes do not see.
type CPUTempMonitor struct {
	BaseMonitor
	includeSensors []string // specific sensors to include; empty means all
}

// NewCPUTempMonitor creates a host CPU temperature monitor.
func NewCPUTempMonitor() *CPUTempMonitor {
	return &CPUTempMonitor{
		BaseMonitor: NewBaseMonitor("cputemp", 30*time.Second),
	}
}

// Configure applies the configuration to the monitor.
func (m *CPUTempMonitor) Configure(cfg config.MonitorConfig) error {
	m.SetEnabled(cfg.Enabled)
	if cfg.Interval > 0 {
		m.SetInterval(cfg.Interval)
	}
	m.includeSensors = cfg.IncludeSensors
	return nil
}

func (m *CPUTempMonitor) shouldInclude(sensorKey string) bool {
	for _, name := range m.includeSensors {
		if name == sensorKey {
			return true
		}
	}
	return false
}

// Check gathers host temperature sensors. Missing sensor support is not
// an error; the check reports empty data and the loop carries on.
func (m *CPUTempMonitor) Check(ctx context.Context) (*HealthData, error) {
	sensors := []CPUTempSensor{}

	temps, err := host.SensorsTemperaturesWithContext(ctx)
	if err != nil {
		log := logger.WithComponent("cputemp")
		log.Debug().Err(err).Msg("host temperature sensors unavailable")
	} else {
		for _, temp := range temps {
			if len(m.includeSensors) > 0 && !m.shouldInclude(temp.SensorKey) {
				continue
			}

			// Skip zero or absurd readings from dead sensors.
			if temp.Temperature <= 0 || temp.Temperature > 200 {
				continue
			}

			sensors = append(sensors, CPUTempSensor{
				Name:        temp.SensorKey,
				Temperature: temp.Temperature,
				High:        temp.High,
				Critical:    temp.Critical,
			})
		}
	}

	return &HealthData{
		Type:      m.Name(),
		Timestamp: time.Now(),
		Data:      CPUTempData{Sensors: sensors},
	}, nil
}
