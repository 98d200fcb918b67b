// Package main is the entry point for the accton-hwmond hardware
// health daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roylee123/sonic-platform-modules-accton/internal/config"
	"github.com/roylee123/sonic-platform-modules-accton/internal/logger"
	"github.com/roylee123/sonic-platform-modules-accton/internal/monitor"
	"github.com/roylee123/sonic-platform-modules-accton/internal/platform"
	"github.com/roylee123/sonic-platform-modules-accton/internal/poller"
	"github.com/roylee123/sonic-platform-modules-accton/internal/sender"
	"github.com/roylee123/sonic-platform-modules-accton/internal/service"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

const defaultConfigPath = "/etc/accton-hwmond/hwmond.json"

type cliOptions struct {
	configPath  string
	debug       bool
	logFile     string
	showVersion bool
}

// parseFlags handles the daemon's flag surface. Usage requests and
// invalid flags both print usage and exit 0, matching the behavior of
// the platform monitor utilities this daemon replaces.
func parseFlags(args []string) cliOptions {
	prog := filepath.Base(os.Args[0])

	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	fs.Usage = func() {
		fmt.Printf("Usage: %s [-d] [-l <log_file>] [-config <path>] [-version]\n", prog)
	}

	var opts cliOptions
	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to configuration file")
	fs.BoolVar(&opts.debug, "d", false, "Enable debug logging")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	fs.StringVar(&opts.logFile, "l", "", "Override log file path")
	fs.StringVar(&opts.logFile, "lfile", "", "Override log file path")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		// flag already printed the usage via fs.Usage.
		os.Exit(0)
	}

	return opts
}

// applyOverrides layers the CLI flags over a loaded config. Also used on
// hot reload, so -d and -l survive a config file change.
func applyOverrides(cfg *config.Config, opts cliOptions) {
	if opts.debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.Console = true
	}
	if opts.logFile != "" {
		cfg.Logging.FilePath = opts.logFile
	}
}

func main() {
	opts := parseFlags(os.Args[1:])

	if opts.showVersion {
		fmt.Printf("accton-hwmond %s (built %s)\n", version, buildTime)
		os.Exit(0)
	}

	// A missing config file at the default path means a stock install:
	// run on defaults. An explicit -config path must exist.
	cfg := config.DefaultConfig()
	if _, err := os.Stat(opts.configPath); err == nil || opts.configPath != defaultConfigPath {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// CLI overrides take precedence over the config file.
	applyOverrides(cfg, opts)

	// The log sink is the one collaborator worth dying for at startup.
	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.WithComponent("main")
	log.Info().
		Str("version", version).
		Str("config", opts.configPath).
		Str("platform", cfg.Platform).
		Msg("Starting accton-hwmond")

	svc := service.New(func(ctx context.Context) error {
		return run(ctx, cfg, opts)
	})

	if err := svc.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Service exited with error")
	}

	log.Info().Msg("accton-hwmond stopped")
}

func run(ctx context.Context, cfg *config.Config, opts cliOptions) error {
	log := logger.WithComponent("main")

	profile, err := platform.ByName(cfg.Platform)
	if err != nil {
		return err
	}

	hostname := config.GetHostname()
	log.Info().
		Str("hostname", hostname).
		Str("platform", profile.Name).
		Int("fans", profile.FanCount()).
		Int("thermals", profile.ThermalCount()).
		Msg("Platform profile loaded")

	// Monitors
	registry := monitor.PlatformRegistry(profile)
	cfg.ApplyMonitorDefaults(registry.DefaultConfigs())
	if err := registry.Configure(cfg.Monitors); err != nil {
		return fmt.Errorf("failed to configure monitors: %w", err)
	}

	// Sender
	snd, err := sender.NewSender(cfg)
	if err != nil {
		return fmt.Errorf("failed to create sender: %w", err)
	}
	defer func() {
		log.Info().Msg("Closing sender")
		if err := snd.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing sender")
		}
	}()

	// Poller
	p := poller.New(registry, snd, hostname)
	if err := p.Start(ctx); err != nil {
		return fmt.Errorf("failed to start poller: %w", err)
	}

	// Hot reload of monitor intervals, enablement and log settings.
	watcher, err := config.NewConfigWatcher(opts.configPath, func(newCfg *config.Config) {
		log.Info().Msg("Applying configuration changes")

		// Flags given at startup keep precedence over the reloaded file.
		applyOverrides(newCfg, opts)

		if err := logger.Init(newCfg.Logging); err != nil {
			log.Error().Err(err).Msg("Failed to update logging configuration")
		}

		newCfg.ApplyMonitorDefaults(registry.DefaultConfigs())
		if err := registry.Configure(newCfg.Monitors); err != nil {
			log.Error().Err(err).Msg("Failed to update monitor configurations")
			return
		}

		if fs, ok := snd.(*sender.FileSender); ok {
			fs.SetConsole(newCfg.File.Console)
		}

		p.Reconfigure()
		log.Info().Msg("Configuration updated")
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create config watcher, hot reload disabled")
	} else {
		if err := watcher.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start config watcher")
		} else {
			defer func() {
				if err := watcher.Stop(); err != nil {
					log.Error().Err(err).Msg("Error stopping config watcher")
				}
			}()
		}
	}

	// Wait for shutdown.
	<-ctx.Done()
	log.Info().Msg("Received shutdown signal")

	p.Stop()

	return nil
}
