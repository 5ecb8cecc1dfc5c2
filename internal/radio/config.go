package radio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable parameters shared by the receiver and
// transmitter surfaces.
type Config struct {
	// SampleRate in samples per second; sets the receive chain's
	// real-time budget per batch.
	SampleRate float64 `yaml:"sample_rate"`

	// BatchSize is the number of samples pulled from the source per
	// chain iteration.
	BatchSize int `yaml:"batch_size"`

	// TxAmplitude scales every transmitted sample.
	TxAmplitude float64 `yaml:"tx_amplitude"`

	// ListenAddr is the control server's listen address.
	ListenAddr string `yaml:"listen_addr"`

	// SourcePath and SinkPath name the IQ files backing the sample
	// source and sink when no hardware driver is wired in.
	SourcePath string `yaml:"source_path"`
	SinkPath   string `yaml:"sink_path"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		SampleRate:  5e6,
		BatchSize:   8192,
		TxAmplitude: 1.0,
		ListenAddr:  "0.0.0.0:8080",
	}
}

// LoadConfig reads a yaml config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.BatchSize <= 0 {
		return cfg, fmt.Errorf("config: batch_size must be positive, got %d", cfg.BatchSize)
	}
	return cfg, nil
}
