// Package poller drives the periodic execution of hardware health
// monitors.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/roylee123/sonic-platform-modules-accton/internal/logger"
	"github.com/roylee123/sonic-platform-modules-accton/internal/monitor"
	"github.com/roylee123/sonic-platform-modules-accton/internal/sender"
)

// MonitorSource supplies the set of monitors to run. Satisfied by
// *monitor.Registry.
type MonitorSource interface {
	EnabledMonitors() []monitor.Monitor
}

// Poller runs each enabled monitor in its own loop: one check
// immediately on start, then one per interval tick until the context is
// cancelled. There is no backoff and no retry; a failed tick is logged
// and the loop simply waits for the next one.
type Poller struct {
	source   MonitorSource
	sender   sender.Sender
	hostname string
	clk      clock.Clock

	mu      sync.Mutex
	running bool
	parent  context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a new poller using the wall clock.
func New(source MonitorSource, s sender.Sender, hostname string) *Poller {
	return NewWithClock(source, s, hostname, clock.New())
}

// NewWithClock creates a poller with an injected clock, so tests can
// advance time deterministically and run exactly one tick.
func NewWithClock(source MonitorSource, s sender.Sender, hostname string, clk clock.Clock) *Poller {
	return &Poller{
		source:   source,
		sender:   s,
		hostname: hostname,
		clk:      clk,
	}
}

// Start begins the polling loops.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.parent = ctx

	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	log := logger.WithComponent("poller")

	monitors := p.source.EnabledMonitors()
	log.Info().Int("enabled_count", len(monitors)).Msg("Starting poller")

	for _, m := range monitors {
		log.Info().Str("monitor", m.Name()).Dur("interval", m.Interval()).Msg("Monitor is enabled")
		p.wg.Add(1)
		go p.runMonitor(ctx, m)
	}

	return nil
}

// Stop stops the poller and waits for all monitor loops to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.cancel()
	p.mu.Unlock()

	log := logger.WithComponent("poller")
	log.Info().Msg("Stopping poller, waiting for monitors to finish")

	p.wg.Wait()
	log.Info().Msg("Poller stopped")
}

// IsRunning returns whether the poller is currently running.
func (p *Poller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Reconfigure restarts the monitor loops so interval and enablement
// changes take effect. Fan fault state lives in the monitors, not the
// loops, so transitions survive a restart without re-logging.
func (p *Poller) Reconfigure() {
	p.mu.Lock()
	wasRunning := p.running
	ctx := p.parent
	p.mu.Unlock()

	if !wasRunning {
		return
	}

	p.Stop()
	_ = p.Start(ctx)
}

func (p *Poller) runMonitor(ctx context.Context, m monitor.Monitor) {
	defer p.wg.Done()

	log := logger.WithComponent("poller")
	name := m.Name()
	interval := m.Interval()

	// Initial check, then fixed-interval ticks.
	p.check(ctx, m)

	ticker := p.clk.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("monitor", name).Msg("Monitor loop stopped")
			return
		case <-ticker.C:
			p.check(ctx, m)
		}
	}
}

func (p *Poller) check(ctx context.Context, m monitor.Monitor) {
	log := logger.WithComponent("poller")
	name := m.Name()

	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	start := p.clk.Now()
	data, err := m.Check(checkCtx)
	duration := p.clk.Since(start)

	if err != nil {
		log.Error().
			Err(err).
			Str("monitor", name).
			Dur("duration", duration).
			Msg("Check failed")
		return
	}

	if data == nil {
		log.Warn().Str("monitor", name).Msg("Monitor returned nil data")
		return
	}

	data.Hostname = p.hostname

	sendCtx, sendCancel := context.WithTimeout(ctx, 10*time.Second)
	defer sendCancel()

	if err := p.sender.Send(sendCtx, data); err != nil {
		log.Error().
			Err(err).
			Str("monitor", name).
			Msg("Failed to send health data")
		return
	}

	log.Debug().
		Str("monitor", name).
		Dur("duration", duration).
		Msg("Check completed")
}
