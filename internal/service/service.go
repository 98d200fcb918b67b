// Package service provides the daemon lifecycle: signal handling and
// graceful shutdown.
package service

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/roylee123/sonic-platform-modules-accton/internal/logger"
)

// RunFunc is the main function that runs the daemon logic. It must
// return once its context is cancelled.
type RunFunc func(ctx context.Context) error

// Service runs a RunFunc until SIGINT or SIGTERM arrives, then cancels
// its context and waits for it to return. A second signal forces exit.
type Service struct {
	runFunc RunFunc
	cancel  context.CancelFunc
	mu      sync.Mutex
	stopped bool
}

// New creates a new service wrapping the given run function.
func New(runFunc RunFunc) *Service {
	return &Service{runFunc: runFunc}
}

// Run starts the service and handles signals for graceful shutdown.
func (s *Service) Run(ctx context.Context) error {
	log := logger.WithComponent("service")

	ctx, s.cancel = context.WithCancel(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	done := make(chan error, 1)
	go func() {
		done <- s.runFunc(ctx)
	}()

	log.Info().Msg("Service started")

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		s.Stop()

		select {
		case err := <-done:
			return err
		case sig := <-sigChan:
			log.Warn().Str("signal", sig.String()).Msg("Received second signal, forcing exit")
			return nil
		}

	case err := <-done:
		return err
	}
}

// Stop requests the service to stop.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil && !s.stopped {
		s.stopped = true
		s.cancel()
	}
	return nil
}
