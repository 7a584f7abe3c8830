// Package config loads mlint settings from defaults, an optional config
// file and MLINT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default values.
const (
	DefaultWorkers   = 4
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"

	// FileName is the config file name searched for, without extension.
	FileName  = "mlint"
	EnvPrefix = "MLINT"
)

// ErrInvalidConfig is returned when a loaded configuration fails Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the mlint configuration.
type Config struct {
	Policy      PolicyConfig      `mapstructure:"policy" yaml:"policy"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// PolicyConfig selects the policy file. An empty File means the built-in
// policy.
type PolicyConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// ConcurrencyConfig contains concurrency settings.
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Options controls where Load looks for a config file.
type Options struct {
	// File is an explicit config file. It must exist.
	File string
	// SearchPaths are the directories searched for mlint.yaml when File is
	// empty. Nil means the working directory and Dir().
	SearchPaths []string
}

// Dir returns the per-user config directory.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".mlint"
	}
	return filepath.Join(base, "mlint")
}

// Load reads configuration from defaults, the config file and the
// environment, in increasing priority.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		paths := opts.SearchPaths
		if paths == nil {
			paths = []string{".", Dir()}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Concurrency: ConcurrencyConfig{Workers: DefaultWorkers},
		Logging:     LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("policy.file", "")
	v.SetDefault("concurrency.workers", DefaultWorkers)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// Validate normalizes c in place and rejects values it cannot repair.
func (c *Config) Validate() error {
	if c.Concurrency.Workers < 1 {
		c.Concurrency.Workers = 1
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "":
		c.Logging.Format = DefaultLogFormat
	case "pretty", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
