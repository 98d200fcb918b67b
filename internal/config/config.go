// Package config provides configuration management for the platform
// health daemon.
package config

import (
	"os"
	"time"

	"github.com/roylee123/sonic-platform-modules-accton/internal/logger"
)

// Config is the root configuration structure.
type Config struct {
	// Platform selects the hardware profile ("as5712-54x", "as7816-64x").
	Platform string `json:"Platform"`

	// SenderType selects where health records go: "file", "statedb" or "kafka".
	SenderType string `json:"SenderType"`

	File    FileConfig    `json:"File"`
	StateDB StateDBConfig `json:"StateDB"`
	Kafka   KafkaConfig   `json:"Kafka"`

	SOCKSProxy SOCKSConfig `json:"SocksProxy"`

	Monitors map[string]MonitorConfig `json:"Monitors"`

	Logging logger.Config `json:"Logging"`
}

// FileConfig contains settings for the file sender.
type FileConfig struct {
	FilePath   string `json:"FilePath"`
	MaxSizeMB  int    `json:"MaxSizeMB"`
	MaxBackups int    `json:"MaxBackups"`
	Console    bool   `json:"Console"`
	Pretty     bool   `json:"Pretty"`
}

// StateDBConfig contains connection settings for the switch state
// database (a Redis instance, per the SONiC convention).
type StateDBConfig struct {
	Addr     string `json:"Addr"`
	Password string `json:"Password"`
	DB       int    `json:"DB"`
}

// KafkaConfig contains settings for the telemetry export producer.
type KafkaConfig struct {
	Brokers        []string      `json:"Brokers"`
	Topic          string        `json:"Topic"`
	Compression    string        `json:"Compression"`
	RequiredAcks   int           `json:"RequiredAcks"`
	MaxRetries     int           `json:"MaxRetries"`
	RetryBackoff   time.Duration `json:"RetryBackoff"`
	FlushFrequency time.Duration `json:"FlushFrequency"`
	FlushMessages  int           `json:"FlushMessages"`
	BatchSize      int           `json:"BatchSize"`
	Timeout        time.Duration `json:"Timeout"`
	EnableTLS      bool          `json:"EnableTLS"`
	TLSCertFile    string        `json:"TLSCertFile"`
	TLSKeyFile     string        `json:"TLSKeyFile"`
	TLSCAFile      string        `json:"TLSCAFile"`
	SASLEnabled    bool          `json:"SASLEnabled"`
	SASLMechanism  string        `json:"SASLMechanism"`
	SASLUser       string        `json:"SASLUser"`
	SASLPassword   string        `json:"SASLPassword"`
}

// SOCKSConfig contains SOCKS5 proxy settings for the telemetry producer.
type SOCKSConfig struct {
	Host string `json:"Host"`
	Port int    `json:"Port"`
}

// MonitorConfig contains settings for individual monitors.
type MonitorConfig struct {
	Enabled        bool          `json:"Enabled"`
	Interval       time.Duration `json:"Interval"`
	IncludeSensors []string      `json:"IncludeSensors,omitempty"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Platform:   "as5712-54x",
		SenderType: "file",
		File: FileConfig{
			FilePath:   "/var/log/accton-hwmond/health.jsonl",
			MaxSizeMB:  50,
			MaxBackups: 3,
			Console:    false,
			Pretty:     false,
		},
		StateDB: StateDBConfig{
			Addr: "localhost:6379",
			DB:   6, // SONiC STATE_DB number
		},
		Kafka: KafkaConfig{
			Brokers:        []string{"localhost:9092"},
			Topic:          "switch-health",
			Compression:    "snappy",
			RequiredAcks:   1,
			MaxRetries:     3,
			RetryBackoff:   100 * time.Millisecond,
			FlushFrequency: 500 * time.Millisecond,
			FlushMessages:  100,
			BatchSize:      16384,
			Timeout:        10 * time.Second,
		},
		Monitors: make(map[string]MonitorConfig),
		Logging:  logger.DefaultConfig(),
	}
}

// Merge applies non-zero values from other to this config.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Platform != "" {
		c.Platform = other.Platform
	}
	if other.SenderType != "" {
		c.SenderType = other.SenderType
	}

	if other.File.FilePath != "" {
		c.File.FilePath = other.File.FilePath
	}
	if other.File.MaxSizeMB != 0 {
		c.File.MaxSizeMB = other.File.MaxSizeMB
	}
	if other.File.MaxBackups != 0 {
		c.File.MaxBackups = other.File.MaxBackups
	}
	c.File.Console = other.File.Console
	c.File.Pretty = other.File.Pretty

	if other.StateDB.Addr != "" {
		c.StateDB.Addr = other.StateDB.Addr
	}
	if other.StateDB.Password != "" {
		c.StateDB.Password = other.StateDB.Password
	}
	if other.StateDB.DB != 0 {
		c.StateDB.DB = other.StateDB.DB
	}

	if len(other.Kafka.Brokers) > 0 {
		c.Kafka.Brokers = other.Kafka.Brokers
	}
	if other.Kafka.Topic != "" {
		c.Kafka.Topic = other.Kafka.Topic
	}
	if other.Kafka.Compression != "" {
		c.Kafka.Compression = other.Kafka.Compression
	}
	if other.Kafka.RequiredAcks != 0 {
		c.Kafka.RequiredAcks = other.Kafka.RequiredAcks
	}
	if other.Kafka.MaxRetries != 0 {
		c.Kafka.MaxRetries = other.Kafka.MaxRetries
	}
	if other.Kafka.RetryBackoff != 0 {
		c.Kafka.RetryBackoff = other.Kafka.RetryBackoff
	}
	if other.Kafka.FlushFrequency != 0 {
		c.Kafka.FlushFrequency = other.Kafka.FlushFrequency
	}
	if other.Kafka.FlushMessages != 0 {
		c.Kafka.FlushMessages = other.Kafka.FlushMessages
	}
	if other.Kafka.BatchSize != 0 {
		c.Kafka.BatchSize = other.Kafka.BatchSize
	}
	if other.Kafka.Timeout != 0 {
		c.Kafka.Timeout = other.Kafka.Timeout
	}
	c.Kafka.EnableTLS = other.Kafka.EnableTLS
	if other.Kafka.TLSCertFile != "" {
		c.Kafka.TLSCertFile = other.Kafka.TLSCertFile
	}
	if other.Kafka.TLSKeyFile != "" {
		c.Kafka.TLSKeyFile = other.Kafka.TLSKeyFile
	}
	if other.Kafka.TLSCAFile != "" {
		c.Kafka.TLSCAFile = other.Kafka.TLSCAFile
	}
	c.Kafka.SASLEnabled = other.Kafka.SASLEnabled
	if other.Kafka.SASLMechanism != "" {
		c.Kafka.SASLMechanism = other.Kafka.SASLMechanism
	}
	if other.Kafka.SASLUser != "" {
		c.Kafka.SASLUser = other.Kafka.SASLUser
	}
	if other.Kafka.SASLPassword != "" {
		c.Kafka.SASLPassword = other.Kafka.SASLPassword
	}

	if other.SOCKSProxy.Host != "" {
		c.SOCKSProxy.Host = other.SOCKSProxy.Host
	}
	if other.SOCKSProxy.Port != 0 {
		c.SOCKSProxy.Port = other.SOCKSProxy.Port
	}

	for name, mc := range other.Monitors {
		c.Monitors[name] = mc
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.FilePath != "" {
		c.Logging.FilePath = other.Logging.FilePath
	}
	if other.Logging.MaxSizeMB != 0 {
		c.Logging.MaxSizeMB = other.Logging.MaxSizeMB
	}
	if other.Logging.MaxBackups != 0 {
		c.Logging.MaxBackups = other.Logging.MaxBackups
	}
	if other.Logging.MaxAgeDays != 0 {
		c.Logging.MaxAgeDays = other.Logging.MaxAgeDays
	}
	// Logging booleans (Console, Syslog, Compress) are merged by the
	// loader, which knows whether the file actually set them.
	if other.Logging.SyslogTag != "" {
		c.Logging.SyslogTag = other.Logging.SyslogTag
	}
}

// ApplyMonitorDefaults fills in missing monitor entries from the
// registry-provided defaults. Existing entries are not overwritten.
func (c *Config) ApplyMonitorDefaults(defaults map[string]MonitorConfig) {
	for name, defCfg := range defaults {
		if _, exists := c.Monitors[name]; !exists {
			c.Monitors[name] = defCfg
		}
	}
}

// GetHostname returns the system hostname, or "unknown" if unavailable.
func GetHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
