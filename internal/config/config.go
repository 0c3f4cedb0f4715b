// Package config provides unified configuration for the keymill generator.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/keymill/keymill/pkg/types"
	"gopkg.in/yaml.v3"
)

// Format represents the report output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// DefaultKey is the fixed demonstration key: 16 bytes of 0x13.
const DefaultKey = "13131313131313131313131313131313"

// Config holds the configuration for a generation run.
type Config struct {
	// Records is the total number of records to generate
	Records uint64 `json:"records" yaml:"records"`

	// ChunkSize is the number of records per parallel chunk
	ChunkSize uint64 `json:"chunk_size" yaml:"chunk_size"`

	// Key is the AES-128 key as a 32-character hex string
	Key string `json:"key" yaml:"key"`

	// Workers is the number of parallel fill workers (0 = one per CPU)
	Workers int `json:"workers" yaml:"workers"`

	// Report configuration
	Report ReportConfig `json:"report" yaml:"report"`
}

// ReportConfig holds report output configuration.
type ReportConfig struct {
	// SampleSize is the number of leading records echoed in the report
	SampleSize int `json:"sample_size" yaml:"sample_size"`

	// Format is the report output format: text, json
	Format Format `json:"format" yaml:"format"`

	// Fingerprint controls whether the report carries a buffer fingerprint
	Fingerprint bool `json:"fingerprint" yaml:"fingerprint"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Records:   100_000_000,
		ChunkSize: 1_000_000,
		Key:       DefaultKey,
		Workers:   0,
		Report: ReportConfig{
			SampleSize:  5,
			Format:      FormatText,
			Fingerprint: true,
		},
	}
}

// Resolve fills in derived defaults.
func (c *Config) Resolve() {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Report.SampleSize < 0 {
		c.Report.SampleSize = 0
	}
	if c.Report.Format == "" {
		c.Report.Format = FormatText
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Records == 0 {
		return fmt.Errorf("records must be positive")
	}

	if c.ChunkSize == 0 {
		return fmt.Errorf("chunk_size must be positive")
	}

	if c.Records%c.ChunkSize != 0 {
		return fmt.Errorf("records (%d) must be divisible by chunk_size (%d)", c.Records, c.ChunkSize)
	}

	if _, err := types.ParseKey(c.Key); err != nil {
		return fmt.Errorf("key must be %d hex-encoded bytes: %v", types.KeySize, err)
	}

	switch c.Report.Format {
	case FormatText, FormatJSON:
		// Valid formats
	default:
		return fmt.Errorf("invalid report format: %s (must be text or json)", c.Report.Format)
	}

	if uint64(c.Report.SampleSize) > c.Records {
		return fmt.Errorf("report.sample_size (%d) cannot exceed records (%d)", c.Report.SampleSize, c.Records)
	}

	return nil
}

// ParsedKey returns the decoded 16-byte run key.
func (c *Config) ParsedKey() (types.Key, error) {
	return types.ParseKey(c.Key)
}

// Chunks returns the number of chunks the run divides into.
// Valid only after Validate has accepted the configuration.
func (c *Config) Chunks() uint64 {
	return c.Records / c.ChunkSize
}

// TotalBytes returns the size of the output buffer in bytes.
func (c *Config) TotalBytes() uint64 {
	return c.Records * types.RecordSize
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the KEYMILL_ prefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("KEYMILL_RECORDS"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Records)
	}
	if v := os.Getenv("KEYMILL_CHUNK_SIZE"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.ChunkSize)
	}
	if v := os.Getenv("KEYMILL_KEY"); v != "" {
		cfg.Key = v
	}
	if v := os.Getenv("KEYMILL_WORKERS"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Workers)
	}

	// Report configuration
	if v := os.Getenv("KEYMILL_REPORT_SAMPLE_SIZE"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Report.SampleSize)
	}
	if v := os.Getenv("KEYMILL_REPORT_FORMAT"); v != "" {
		cfg.Report.Format = Format(v)
	}
	if v := os.Getenv("KEYMILL_REPORT_FINGERPRINT"); v != "" {
		cfg.Report.Fingerprint = v == "true" || v == "1"
	}
}
