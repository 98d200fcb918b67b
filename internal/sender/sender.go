// Package sender provides interfaces and implementations for publishing
// health records.
package sender

import (
	"context"

	"github.com/roylee123/sonic-platform-modules-accton/internal/monitor"
)

// Sender defines the interface for publishing health check results.
type Sender interface {
	// Send transmits the health data to the destination.
	Send(ctx context.Context, data *monitor.HealthData) error

	// SendBatch transmits multiple health data items.
	SendBatch(ctx context.Context, data []*monitor.HealthData) error

	// Close releases any resources held by the sender.
	Close() error
}
