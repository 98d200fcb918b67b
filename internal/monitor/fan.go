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

// fanState is the last-known state of one fan. The zero value is a
// sentinel distinct from both fault and normal, so the first real
// reading always produces a transition.
type fanState int

const (
	fanStateUnknown fanState = iota
	fanStateNormal
	fanStateFault
)

// FanMonitor polls the per-fan fault flags exposed by the platform
// kernel module and logs fault/recovery transitions. The flag is a
// single character: "1" means fault asserted, anything else is normal.
type FanMonitor struct {
	BaseMonitor
	profile platform.Profile
	states  []fanState
}

// NewFanMonitor creates a fan fault monitor for the given platform.
func NewFanMonitor(profile platform.Profile) *FanMonitor {
	return &FanMonitor{
		BaseMonitor: NewBaseMonitor("fan", 3*time.Second),
		profile:     profile,
		states:      make([]fanState, profile.FanCount()),
	}
}

// Configure applies the configuration to the monitor.
func (m *FanMonitor) Configure(cfg config.MonitorConfig) error {
	m.SetEnabled(cfg.Enabled)
	if cfg.Interval > 0 {
		m.SetInterval(cfg.Interval)
	}
	return nil
}

// Check reads every fan's fault flag once. A fan whose node cannot be
// read is reported unavailable and its last-known state is left
// untouched; the remaining fans are still checked. Exactly one log line
// is emitted per state transition, none when the state is unchanged.
func (m *FanMonitor) Check(ctx context.Context) (*HealthData, error) {
	log := logger.WithComponent("fan-monitor")

	data := FanStatusData{
		Fans: make([]FanStatus, 0, m.profile.FanCount()),
	}

	for idx, path := range m.profile.FanFaultPaths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fan := idx + 1 // chassis numbering

		content, err := sysfs.ReadLine(path)
		if err != nil {
			log.Error().Err(err).Int("fan", fan).Str("path", path).Msg("unable to read fan fault flag")
			data.Fans = append(data.Fans, FanStatus{
				Fan:    fan,
				Status: FanStatusUnavailable,
				Error:  err.Error(),
			})
			continue
		}

		if content == "1" {
			if m.states[idx] != fanStateFault {
				msg := fmt.Sprintf("Alarm for FAN-%d fault is detected", fan)
				log.Warn().Int("fan", fan).Msg(msg)
				m.states[idx] = fanStateFault
				data.Events = append(data.Events, FanEvent{Fan: fan, Fault: true, Msg: msg})
			}
			data.Fans = append(data.Fans, FanStatus{Fan: fan, Status: FanStatusFault})
		} else {
			if m.states[idx] != fanStateNormal {
				msg := fmt.Sprintf("FAN-%d normal is detected", fan)
				log.Info().Int("fan", fan).Msg(msg)
				m.states[idx] = fanStateNormal
				data.Events = append(data.Events, FanEvent{Fan: fan, Fault: false, Msg: msg})
			}
			data.Fans = append(data.Fans, FanStatus{Fan: fan, Status: FanStatusNormal})
		}
	}

	return &HealthData{
		Type:      m.Name(),
		Timestamp: time.Now(),
		Platform:  m.profile.Name,
		Data:      data,
	}, nil
}

// FanCount returns the number of fans the monitor watches.
func (m *FanMonitor) FanCount() int {
	return m.profile.FanCount()
}
