package soundpool

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config carries engine-wide defaults shared by every pool of a Registry.
type Config struct {
	// SampleRate of each pool's mixer output. Defaults to 44100.
	SampleRate int `yaml:"sample_rate"`

	// TempDir receives materialized clips (byte buffers and fetched URIs).
	// Defaults to the OS temp directory.
	TempDir string `yaml:"temp_dir"`

	// HTTPTimeoutMs bounds remote URI fetches. Defaults to 30000.
	HTTPTimeoutMs int `yaml:"http_timeout_ms"`
}

func DefaultConfig() *Config {
	return &Config{
		SampleRate:    44100,
		TempDir:       os.TempDir(),
		HTTPTimeoutMs: 30000,
	}
}

// LoadConfig reads a YAML config from path. Absent fields keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config [%s]", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "error parsing config [%s]", path)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.SampleRate <= 0 {
		c.SampleRate = 44100
	}
	if c.TempDir == "" {
		c.TempDir = os.TempDir()
	}
	if c.HTTPTimeoutMs <= 0 {
		c.HTTPTimeoutMs = 30000
	}
}

func (c *Config) httpTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMs) * time.Millisecond
}
