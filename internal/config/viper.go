// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. LEDGERLENS_OUTPUT_DIRECTORY.
const EnvPrefix = "LEDGERLENS"

// Table formats supported by the ledger store.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Input struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"input" yaml:"input"`

	Output struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
		Format    string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"output" yaml:"output"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Parsers struct {
		PDF struct {
			DateLayout string `mapstructure:"date_layout" yaml:"date_layout"`
		} `mapstructure:"pdf" yaml:"pdf"`
	} `mapstructure:"parsers" yaml:"parsers"`

	Analysis struct {
		TopSenders int `mapstructure:"top_senders" yaml:"top_senders"`
	} `mapstructure:"analysis" yaml:"analysis"`

	Watch struct {
		SettleMillis int `mapstructure:"settle_ms" yaml:"settle_ms"`
	} `mapstructure:"watch" yaml:"watch"`
}

// FlagKeys maps command-line flag names to the configuration keys they
// override.
var FlagKeys = map[string]string{
	"log-level":     "log.level",
	"log-format":    "log.format",
	"input-dir":     "input.directory",
	"output-dir":    "output.directory",
	"output-format": "output.format",
	"csv-delimiter": "csv.delimiter",
}

// LoadConfig loads defaults, then the config file, then the environment. An
// empty configFile searches the standard locations for config.yaml.
func LoadConfig(configFile string) (*Config, error) {
	return LoadConfigWithFlags(configFile, nil)
}

// LoadConfigWithFlags is LoadConfig with command-line flags taking precedence
// over every other source. Only flags named in FlagKeys that were set on the
// command line are applied.
func LoadConfigWithFlags(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.ledgerlens")
		v.AddConfigPath(".ledgerlens")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("input.directory", "input")
	v.SetDefault("output.directory", "output")
	v.SetDefault("output.format", FormatCSV)

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("parsers.pdf.date_layout", "2 Jan 2006")

	v.SetDefault("analysis.top_senders", 5)

	v.SetDefault("watch.settle_ms", 500)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if strings.TrimSpace(config.Output.Directory) == "" {
		return fmt.Errorf("output.directory must not be empty")
	}

	if strings.TrimSpace(config.Input.Directory) == "" {
		return fmt.Errorf("input.directory must not be empty")
	}

	config.Output.Format = strings.ToLower(config.Output.Format)
	if config.Output.Format != FormatCSV && config.Output.Format != FormatXLSX {
		return fmt.Errorf("invalid output format: %s (must be '%s' or '%s')", config.Output.Format, FormatCSV, FormatXLSX)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Parsers.PDF.DateLayout == "" {
		return fmt.Errorf("parsers.pdf.date_layout must not be empty")
	}

	if config.Analysis.TopSenders < 1 || config.Analysis.TopSenders > 100 {
		return fmt.Errorf("analysis.top_senders must be between 1 and 100, got: %d", config.Analysis.TopSenders)
	}

	if config.Watch.SettleMillis < 0 {
		return fmt.Errorf("watch.settle_ms must not be negative, got: %d", config.Watch.SettleMillis)
	}

	return nil
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSV.Delimiter)[0]
}
