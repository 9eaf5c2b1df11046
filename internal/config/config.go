package config

import "github.com/spf13/viper"

// Config holds all runtime configuration for an aviary run.
// Values are populated from .aviary.yaml, AVIARY_* env vars, and CLI
// flags; no hidden global state survives past Load.
type Config struct {
	DataDir       string         `mapstructure:"data_dir"`
	Workers       int            `mapstructure:"workers"`
	ResultsDir    string         `mapstructure:"results_dir"`
	ArchivePath   string         `mapstructure:"archive_path"`
	TelemetryPath string         `mapstructure:"telemetry_path"`
	Verbose       bool           `mapstructure:"verbose"`
	Selections    map[string]int `mapstructure:"selections"`
}

// Load reads configuration from viper, applying built-in defaults for
// any values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("data_dir", "data")
	viper.SetDefault("workers", 4)
	viper.SetDefault("results_dir", ".")
	viper.SetDefault("archive_path", "")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("selections", map[string]int{
		"Least Complexity":             1,
		"Medium Complexity":            14,
		"Highest Complexity":           5,
		"Most Uncertain/Non-Classical": 12,
	})

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
