package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/railwayapp/stackgen/internal/detection"
	"github.com/railwayapp/stackgen/internal/scaffold"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. STACKGEN_DETECTION_THRESHOLD.
const EnvPrefix = "STACKGEN"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Detection DetectionConfig `mapstructure:"detection"`
	Scaffold  ScaffoldConfig  `mapstructure:"scaffold"`
	GitHub    GitHubConfig    `mapstructure:"github"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DetectionConfig struct {
	MaxDepth          int      `mapstructure:"max_depth"`
	MaxContentFiles   int      `mapstructure:"max_content_files"`
	MaxFileSize       int64    `mapstructure:"max_file_size"`
	Threshold         int      `mapstructure:"threshold"`
	Ignore            []string `mapstructure:"ignore"`
	RespectGitignore  bool     `mapstructure:"respect_gitignore"`
	MaxReferenceFiles int      `mapstructure:"max_reference_files"`
}

type ScaffoldConfig struct {
	Targets []string `mapstructure:"targets"`
	Force   bool     `mapstructure:"force"`
}

type GitHubConfig struct {
	Token string `mapstructure:"token"`
}

// Configure wires environment overrides and defaults into v.
func Configure(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("github.token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN")
	SetDefaults(v)
}

func SetDefaults(v *viper.Viper) {
	scan := detection.DefaultScanOptions()

	v.SetDefault("log.level", "warn")

	v.SetDefault("detection.max_depth", scan.MaxDepth)
	v.SetDefault("detection.max_content_files", scan.MaxContentFiles)
	v.SetDefault("detection.max_file_size", scan.MaxFileSize)
	v.SetDefault("detection.threshold", detection.DefaultThreshold)
	v.SetDefault("detection.ignore", []string{})
	v.SetDefault("detection.respect_gitignore", scan.RespectGitignore)
	v.SetDefault("detection.max_reference_files", 200)

	v.SetDefault("scaffold.targets", []string{string(scaffold.TargetAgents)})
	v.SetDefault("scaffold.force", false)

	v.SetDefault("github.token", "")
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %q is not a level", c.Log.Level))
	}

	d := c.Detection
	if d.Threshold < 1 || d.Threshold > 100 {
		errs = append(errs, fmt.Errorf("detection.threshold: %d is outside 1..100", d.Threshold))
	}
	if d.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("detection.max_depth: must be at least 1, got %d", d.MaxDepth))
	}
	if d.MaxContentFiles <= 0 {
		errs = append(errs, fmt.Errorf("detection.max_content_files: must be positive, got %d", d.MaxContentFiles))
	}
	if d.MaxFileSize <= 0 {
		errs = append(errs, fmt.Errorf("detection.max_file_size: must be positive, got %d", d.MaxFileSize))
	}
	if d.MaxReferenceFiles < 0 {
		errs = append(errs, fmt.Errorf("detection.max_reference_files: must not be negative, got %d", d.MaxReferenceFiles))
	}

	for _, name := range c.Scaffold.Targets {
		if _, err := scaffold.LookupTarget(name); err != nil {
			errs = append(errs, fmt.Errorf("scaffold.targets: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// LogLevel returns the parsed log level. Validate has already rejected
// anything zerolog cannot parse.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}

func (c *Config) ScanOptions() detection.ScanOptions {
	options := detection.DefaultScanOptions()
	options.MaxDepth = c.Detection.MaxDepth
	options.MaxContentFiles = c.Detection.MaxContentFiles
	options.MaxFileSize = c.Detection.MaxFileSize
	if len(c.Detection.Ignore) > 0 {
		options.Ignore = c.Detection.Ignore
	}
	options.RespectGitignore = c.Detection.RespectGitignore
	return options
}

// DetectionOptions turns the detection section into detector options.
func (c *Config) DetectionOptions() []detection.Option {
	return []detection.Option{
		detection.WithDetectorScanOptions(c.ScanOptions()),
		detection.WithThreshold(c.Detection.Threshold),
	}
}
