package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/roylee123/sonic-platform-modules-accton/internal/logger"
)

// rawConfig is used for JSON unmarshaling with duration strings.
type rawConfig struct {
	Platform   string         `json:"Platform"`
	SenderType string         `json:"SenderType"`
	File       FileConfig     `json:"File"`
	StateDB    StateDBConfig  `json:"StateDB"`
	Kafka      rawKafkaConfig `json:"Kafka"`
	SOCKSProxy SOCKSConfig    `json:"SocksProxy"`

	Monitors map[string]rawMonitorConfig `json:"Monitors"`

	Logging rawLoggingConfig `json:"Logging"`
}

// rawLoggingConfig keeps the boolean fields as pointers so an omitted
// field can be told apart from an explicit false. Defaults-true settings
// like Syslog must survive a config file that does not mention them.
type rawLoggingConfig struct {
	Level      string `json:"Level"`
	FilePath   string `json:"FilePath"`
	MaxSizeMB  int    `json:"MaxSizeMB"`
	MaxBackups int    `json:"MaxBackups"`
	MaxAgeDays int    `json:"MaxAgeDays"`
	Compress   *bool  `json:"Compress"`
	Console    *bool  `json:"Console"`
	Syslog     *bool  `json:"Syslog"`
	SyslogTag  string `json:"SyslogTag"`
}

type rawKafkaConfig struct {
	Brokers        []string `json:"Brokers"`
	Topic          string   `json:"Topic"`
	Compression    string   `json:"Compression"`
	RequiredAcks   int      `json:"RequiredAcks"`
	MaxRetries     int      `json:"MaxRetries"`
	RetryBackoff   string   `json:"RetryBackoff"`
	FlushFrequency string   `json:"FlushFrequency"`
	FlushMessages  int      `json:"FlushMessages"`
	BatchSize      int      `json:"BatchSize"`
	Timeout        string   `json:"Timeout"`
	EnableTLS      bool     `json:"EnableTLS"`
	TLSCertFile    string   `json:"TLSCertFile"`
	TLSKeyFile     string   `json:"TLSKeyFile"`
	TLSCAFile      string   `json:"TLSCAFile"`
	SASLEnabled    bool     `json:"SASLEnabled"`
	SASLMechanism  string   `json:"SASLMechanism"`
	SASLUser       string   `json:"SASLUser"`
	SASLPassword   string   `json:"SASLPassword"`
}

type rawMonitorConfig struct {
	Enabled        bool     `json:"Enabled"`
	Interval       string   `json:"Interval"`
	IncludeSensors []string `json:"IncludeSensors,omitempty"`
}

// Load reads configuration from the specified file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse parses configuration from JSON bytes and merges it over defaults.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	parsed, err := convertRawConfig(&raw)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	cfg.Merge(parsed)

	// Presence is only known at the raw layer, so the logging booleans
	// bypass Merge: absent fields keep their defaults.
	if raw.Logging.Compress != nil {
		cfg.Logging.Compress = *raw.Logging.Compress
	}
	if raw.Logging.Console != nil {
		cfg.Logging.Console = *raw.Logging.Console
	}
	if raw.Logging.Syslog != nil {
		cfg.Logging.Syslog = *raw.Logging.Syslog
	}

	return cfg, nil
}

func convertRawConfig(raw *rawConfig) (*Config, error) {
	cfg := &Config{
		Platform:   raw.Platform,
		SenderType: raw.SenderType,
		File:       raw.File,
		StateDB:    raw.StateDB,
		SOCKSProxy: raw.SOCKSProxy,
		Monitors:   make(map[string]MonitorConfig),
		Logging: logger.Config{
			Level:      raw.Logging.Level,
			FilePath:   raw.Logging.FilePath,
			MaxSizeMB:  raw.Logging.MaxSizeMB,
			MaxBackups: raw.Logging.MaxBackups,
			MaxAgeDays: raw.Logging.MaxAgeDays,
			SyslogTag:  raw.Logging.SyslogTag,
		},
	}

	kafka, err := convertRawKafka(&raw.Kafka)
	if err != nil {
		return nil, err
	}
	cfg.Kafka = *kafka

	for name, rmc := range raw.Monitors {
		mc := MonitorConfig{
			Enabled:        rmc.Enabled,
			IncludeSensors: rmc.IncludeSensors,
		}
		if rmc.Interval != "" {
			d, err := time.ParseDuration(rmc.Interval)
			if err != nil {
				return nil, fmt.Errorf("monitor %s: invalid Interval %q: %w", name, rmc.Interval, err)
			}
			mc.Interval = d
		}
		cfg.Monitors[name] = mc
	}

	return cfg, nil
}

func convertRawKafka(raw *rawKafkaConfig) (*KafkaConfig, error) {
	cfg := &KafkaConfig{
		Brokers:       raw.Brokers,
		Topic:         raw.Topic,
		Compression:   raw.Compression,
		RequiredAcks:  raw.RequiredAcks,
		MaxRetries:    raw.MaxRetries,
		FlushMessages: raw.FlushMessages,
		BatchSize:     raw.BatchSize,
		EnableTLS:     raw.EnableTLS,
		TLSCertFile:   raw.TLSCertFile,
		TLSKeyFile:    raw.TLSKeyFile,
		TLSCAFile:     raw.TLSCAFile,
		SASLEnabled:   raw.SASLEnabled,
		SASLMechanism: raw.SASLMechanism,
		SASLUser:      raw.SASLUser,
		SASLPassword:  raw.SASLPassword,
	}

	var err error
	if cfg.RetryBackoff, err = parseDuration(raw.RetryBackoff, "Kafka.RetryBackoff"); err != nil {
		return nil, err
	}
	if cfg.FlushFrequency, err = parseDuration(raw.FlushFrequency, "Kafka.FlushFrequency"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = parseDuration(raw.Timeout, "Kafka.Timeout"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDuration(s, field string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return d, nil
}
