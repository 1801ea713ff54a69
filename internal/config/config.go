// File: internal/config/config.go
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing the tool's settings.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Load() LoadConfig
	Merge() MergeConfig
	Audit() AuditConfig
	Sample() SampleConfig

	// Sample Setters, driven by command-line flags.
	SetSampleCount(int)
	SetSampleSeed(uint64)
	SetSampleOutDir(string)
}

// Config holds the settings of the ezconfig command-line tool. It says
// nothing about the files the tool operates on.
type Config struct {
	LoggerCfg LoggerConfig `mapstructure:"logger" yaml:"logger"`
	LoadCfg   LoadConfig   `mapstructure:"load" yaml:"load"`
	MergeCfg  MergeConfig  `mapstructure:"merge" yaml:"merge"`
	AuditCfg  AuditConfig  `mapstructure:"audit" yaml:"audit"`
	SampleCfg SampleConfig `mapstructure:"sample" yaml:"sample"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig { return c.LoggerCfg }
func (c *Config) Load() LoadConfig     { return c.LoadCfg }
func (c *Config) Merge() MergeConfig   { return c.MergeCfg }
func (c *Config) Audit() AuditConfig   { return c.AuditCfg }
func (c *Config) Sample() SampleConfig { return c.SampleCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetSampleCount(n int)       { c.SampleCfg.Count = n }
func (c *Config) SetSampleSeed(s uint64)     { c.SampleCfg.Seed = s }
func (c *Config) SetSampleOutDir(dir string) { c.SampleCfg.OutDir = dir }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// LoadConfig is the policy applied when several files are loaded into one
// store.
type LoadConfig struct {
	Overwrite bool `mapstructure:"overwrite" yaml:"overwrite"`
}

// MergeConfig is the policy of the merge command. It defaults to
// overwriting, unlike LoadConfig.
type MergeConfig struct {
	Overwrite bool `mapstructure:"overwrite" yaml:"overwrite"`
}

// AuditConfig controls the unused-field report.
type AuditConfig struct {
	WarnUnused bool `mapstructure:"warn_unused" yaml:"warn_unused"`
}

// SampleConfig configures trial generation from a template.
type SampleConfig struct {
	Count       int    `mapstructure:"count" yaml:"count"`
	Seed        uint64 `mapstructure:"seed" yaml:"seed"` // 0 = random
	Concurrency int    `mapstructure:"concurrency" yaml:"concurrency"`
	IDField     string `mapstructure:"id_field" yaml:"id_field"`
	OutDir      string `mapstructure:"out_dir" yaml:"out_dir"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "ezconfig")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "red")

	// -- Load / Merge --
	v.SetDefault("load.overwrite", false)
	v.SetDefault("merge.overwrite", true)

	// -- Audit --
	v.SetDefault("audit.warn_unused", false)

	// -- Sample --
	v.SetDefault("sample.count", 1)
	v.SetDefault("sample.seed", 0)
	v.SetDefault("sample.concurrency", 4)
	v.SetDefault("sample.id_field", "trial_id")
	v.SetDefault("sample.out_dir", ".")
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	switch c.LoggerCfg.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be \"console\" or \"json\", got %q", c.LoggerCfg.Format)
	}
	if err := c.SampleCfg.Validate(); err != nil {
		return fmt.Errorf("sample configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the SampleConfig settings.
func (s *SampleConfig) Validate() error {
	if s.Count <= 0 {
		return fmt.Errorf("count must be a positive integer")
	}
	if s.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be a positive integer")
	}
	if s.OutDir == "" {
		return fmt.Errorf("out_dir must not be empty")
	}
	return nil
}
