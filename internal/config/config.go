// Package config loads the evaluation run configuration.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kyungjunleeme/Text2SQL/internal/backend"
	"github.com/kyungjunleeme/Text2SQL/internal/result"
	"github.com/kyungjunleeme/Text2SQL/internal/runinfo"
	"github.com/kyungjunleeme/Text2SQL/internal/sqlnorm"
)

// Config captures all runtime options for an evaluation run.
type Config struct {
	Backend backend.Config `yaml:"backend"`
	// Dialect is passed verbatim to the parser; empty means best effort.
	Dialect string `yaml:"dialect"`
	// IgnoreOrder compares result sets without regard to row order.
	IgnoreOrder bool `yaml:"ignore_order"`
	// NullEqual makes nulls compare equal across engines.
	NullEqual bool `yaml:"null_equal"`
	// RequireAllMetrics gates the verdict on all four metrics instead of
	// the two execution-based ones.
	RequireAllMetrics bool               `yaml:"require_all_metrics"`
	ComponentWeights  map[string]float64 `yaml:"component_weights"`
	Report            ReportConfig       `yaml:"report"`
	Storage           StorageConfig      `yaml:"storage"`
	RunInfo           *runinfo.BasicInfo `yaml:"-"`
}

// ReportConfig controls where run artifacts are written.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
	Archive   bool   `yaml:"archive"`
}

// StorageConfig selects optional report upload targets.
type StorageConfig struct {
	GCS GCSConfig `yaml:"gcs"`
	S3  S3Config  `yaml:"s3"`
}

// GCSConfig configures Google Cloud Storage uploads.
type GCSConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

// S3Config configures S3-compatible uploads.
type S3Config struct {
	Enabled         bool   `yaml:"enabled"`
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	SessionToken    string `yaml:"session_token"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

func defaultConfig() Config {
	return Config{
		Backend: backend.Config{
			Kind:               backend.KindSQLite,
			Path:               "data/sample.db",
			StatementTimeoutMs: 30000,
		},
		IgnoreOrder: true,
		NullEqual:   true,
		Report: ReportConfig{
			OutputDir: "out",
		},
	}
}

// Default returns the configuration used when no config file is given.
func Default() Config {
	cfg := defaultConfig()
	cfg.RunInfo = runinfo.FromEnv()
	return cfg
}

// Load reads a YAML config file, applying defaults for absent fields.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	normalizeConfig(&cfg)
	cfg.RunInfo = runinfo.FromEnv()
	return cfg, nil
}

func normalizeConfig(cfg *Config) {
	cfg.Dialect = strings.TrimSpace(cfg.Dialect)
	cfg.Backend.Kind = backend.Kind(strings.ToLower(strings.TrimSpace(string(cfg.Backend.Kind))))
}

// CompareOptions builds the result comparison options for this run.
func (c Config) CompareOptions() result.CompareOptions {
	return result.CompareOptions{IgnoreOrder: c.IgnoreOrder, NullEqual: c.NullEqual}
}

// Weights maps the configured component weights onto component kinds, or
// nil when the config leaves them unset.
func (c Config) Weights() map[sqlnorm.Kind]float64 {
	if len(c.ComponentWeights) == 0 {
		return nil
	}
	out := make(map[sqlnorm.Kind]float64, len(c.ComponentWeights))
	for k, w := range c.ComponentWeights {
		out[sqlnorm.Kind(strings.ToLower(strings.TrimSpace(k)))] = w
	}
	return out
}
