// Package config loads harness settings from an optional YAML file, a .env
// file and READYGO_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix       = "READYGO"
	configName      = "readygo"
	DefaultBaseline = ".readygo"
	DefaultHistory  = ".readygo.db"
)

// Settings is the typed view of the configuration.
type Settings struct {
	OuterIterations     int      `mapstructure:"outer_iterations"`
	MinimumTimeMs       float64  `mapstructure:"minimum_time_ms"`
	MaxIterations       int      `mapstructure:"max_iterations"`
	LineWidth           int      `mapstructure:"line_width"`
	RegressionThreshold float64  `mapstructure:"regression_threshold"`
	Verbose             bool     `mapstructure:"verbose"`
	LogFile             string   `mapstructure:"log_file"`
	Color               string   `mapstructure:"color"`
	Baseline            Baseline `mapstructure:"baseline"`
	History             History  `mapstructure:"history"`
	Metrics             Metrics  `mapstructure:"metrics"`
}

type Baseline struct {
	File string `mapstructure:"file"`
}

type History struct {
	Enabled bool   `mapstructure:"enabled"`
	Type    string `mapstructure:"type"`
	DSN     string `mapstructure:"dsn"`
}

type Metrics struct {
	Textfile string `mapstructure:"textfile"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("outer_iterations", 16)
	v.SetDefault("minimum_time_ms", 3.0)
	v.SetDefault("max_iterations", 1<<30)
	v.SetDefault("line_width", 80)
	v.SetDefault("regression_threshold", 10.0)
	v.SetDefault("verbose", false)
	v.SetDefault("log_file", "")
	v.SetDefault("color", "auto")
	v.SetDefault("baseline.file", DefaultBaseline)
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.type", "sqlite")
	v.SetDefault("history.dsn", DefaultHistory)
	v.SetDefault("metrics.textfile", "")

	return v
}

// Load reads .env, then cfgFile (or readygo.yaml in the working directory if
// present), and returns validated settings. An explicitly named config file
// must exist.
func Load(v *viper.Viper, cfgFile string) (*Settings, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(configName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
