package sender

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roylee123/sonic-platform-modules-accton/internal/config"
	"github.com/roylee123/sonic-platform-modules-accton/internal/logger"
	"github.com/roylee123/sonic-platform-modules-accton/internal/monitor"
)

// State database table names, following the SONiC STATE_DB convention
// of TABLE|KEY hash entries.
const (
	fanInfoTable     = "FAN_INFO"
	thermalInfoTable = "TEMPERATURE_INFO"
)

// StateDBSender publishes the latest hardware state into the switch
// state database (a Redis instance) so management tooling can query it.
// Only the most recent value per sensor is kept; history belongs to the
// log file and the telemetry stream.
type StateDBSender struct {
	client *redis.Client
	mu     sync.Mutex
	closed bool
}

// NewStateDBSender creates a sender connected to the state database.
func NewStateDBSender(cfg config.StateDBConfig) (*StateDBSender, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connectivity at construction; a dead state DB at startup
	// is a collaborator problem worth failing loudly on.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("state DB unreachable at %s: %w", cfg.Addr, err)
	}

	log := logger.WithComponent("statedb-sender")
	log.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("StateDBSender initialized")

	return &StateDBSender{client: client}, nil
}

// Send writes the health record's per-sensor values into the state DB.
func (s *StateDBSender) Send(ctx context.Context, data *monitor.HealthData) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("sender is closed")
	}
	s.mu.Unlock()

	ts := data.Timestamp.Format(time.RFC3339)

	switch d := data.Data.(type) {
	case monitor.FanStatusData:
		for _, fan := range d.Fans {
			key := fmt.Sprintf("%s|FAN-%d", fanInfoTable, fan.Fan)
			fields := map[string]interface{}{
				"status":    fan.Status,
				"timestamp": ts,
			}
			if fan.Error != "" {
				fields["error"] = fan.Error
			}
			if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
				return fmt.Errorf("failed to write %s: %w", key, err)
			}
		}

	case monitor.ThermalData:
		for _, reading := range d.Sensors {
			key := fmt.Sprintf("%s|TEMP-%d", thermalInfoTable, reading.Index)
			fields := map[string]interface{}{
				"available": strconv.FormatBool(reading.Available),
				"timestamp": ts,
			}
			if reading.Available {
				fields["millidegrees"] = strconv.Itoa(reading.Millidegrees)
			}
			if reading.Error != "" {
				fields["error"] = reading.Error
			}
			if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
				return fmt.Errorf("failed to write %s: %w", key, err)
			}
		}
		if d.AverageMillidegrees != nil {
			key := fmt.Sprintf("%s|AVERAGE", thermalInfoTable)
			fields := map[string]interface{}{
				"millidegrees": strconv.Itoa(*d.AverageMillidegrees),
				"timestamp":    ts,
			}
			if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
				return fmt.Errorf("failed to write %s: %w", key, err)
			}
		}

	case monitor.CPUTempData:
		for _, sensor := range d.Sensors {
			key := fmt.Sprintf("%s|%s", thermalInfoTable, sensor.Name)
			fields := map[string]interface{}{
				"celsius":   strconv.FormatFloat(sensor.Temperature, 'f', 1, 64),
				"timestamp": ts,
			}
			if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
				return fmt.Errorf("failed to write %s: %w", key, err)
			}
		}

	default:
		// Unknown record types are skipped, not failed: the state DB
		// schema is fixed per table.
		log := logger.WithComponent("statedb-sender")
		log.Debug().
			Str("type", data.Type).
			Msg("no state DB mapping for record type")
	}

	return nil
}

// SendBatch writes multiple health records.
func (s *StateDBSender) SendBatch(ctx context.Context, data []*monitor.HealthData) error {
	for _, d := range data {
		if err := s.Send(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the state DB connection.
func (s *StateDBSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.client.Close()
}
