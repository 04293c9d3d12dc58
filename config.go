//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import (
	"fmt"
	"os"
	"regexp"

	"github.com/obinnaokechukwu/qmlnet/internal/bindings"
	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
)

// Config is the TOML configuration of the binding layer.
//
//	[library]
//	path = "/opt/qmlnet/lib/libQmlNet.so"
//	search_dirs = ["/opt/qt/lib"]
//	required = true
//
//	[log]
//	level = "info"
//	file = "/var/log/app/qmlnet.log"
//
//	[metrics]
//	enabled = true
//	namespace = "qmlnet"
type Config struct {
	Library LibraryConfig `toml:"library"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
}

// LibraryConfig locates the QmlNet native library.
type LibraryConfig struct {
	Path       string   `toml:"path"`
	SearchDirs []string `toml:"search_dirs"`
	// Required makes a missing library an Init error rather than leaving the
	// in-process backend active.
	Required bool `toml:"required"`
}

// Configured reports whether a library location was given explicitly.
func (c LibraryConfig) Configured() bool {
	return c.Path != "" || len(c.SearchDirs) > 0 || os.Getenv(bindings.DirEnv) != ""
}

// LogConfig controls NewLogger.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
	Console    bool   `toml:"console"`
}

// MetricsConfig controls the dispatch collectors.
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Console:    true,
		},
		Metrics: MetricsConfig{
			Namespace: "qmlnet",
		},
	}
}

// LoadConfig reads and validates a TOML file. Keys missing from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := ParseConfig(b)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates TOML.
func ParseConfig(b []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var metricNamespace = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("%w: log rotation limits must not be negative", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && !metricNamespace.MatchString(c.Metrics.Namespace) {
		return fmt.Errorf("%w: metrics.namespace %q", ErrInvalidConfig, c.Metrics.Namespace)
	}
	if c.Library.Path != "" {
		if _, err := os.Stat(c.Library.Path); err != nil && c.Library.Required {
			return fmt.Errorf("%w: library.path: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}
