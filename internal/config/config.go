package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Key cases applied to path segments when displaying a structure
const (
	KeyCaseOriginal   = "original"
	KeyCaseSnake      = "snake"
	KeyCaseCamel      = "camel"
	KeyCaseLowerCamel = "lower_camel"
	KeyCaseKebab      = "kebab"
)

// Config represents the complete configuration for jsonshape
type Config struct {
	Walker  WalkerConfig  `yaml:"walker"`
	Output  OutputConfig  `yaml:"output"`
	Display DisplayConfig `yaml:"display"`
	Dev     DevConfig     `yaml:"dev"`
}

// WalkerConfig controls the structure walk
type WalkerConfig struct {
	// MaxDepth is the deepest nesting level walked; 0 means unlimited.
	MaxDepth int `yaml:"max_depth"`
}

// OutputConfig controls how a structure summary is rendered
type OutputConfig struct {
	Format     string `yaml:"format"`
	ShowCounts bool   `yaml:"show_counts"`
	ShowSource bool   `yaml:"show_source"`
	Indent     int    `yaml:"indent"`
}

// DisplayConfig controls presentation of paths
type DisplayConfig struct {
	KeyCase string `yaml:"key_case"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Walker: WalkerConfig{
			MaxDepth: 0,
		},
		Output: OutputConfig{
			Format:     FormatText,
			ShowCounts: false,
			ShowSource: true,
			Indent:     2,
		},
		Display: DisplayConfig{
			KeyCase: KeyCaseOriginal,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonshape.yml", ".jsonshape.yaml", "jsonshape.yml", "jsonshape.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks enumerated settings and numeric bounds
func (c *Config) Validate() error {
	if c.Walker.MaxDepth < 0 {
		return fmt.Errorf("walker.max_depth must not be negative, got %d", c.Walker.MaxDepth)
	}
	if c.Output.Indent < 0 {
		return fmt.Errorf("output.indent must not be negative, got %d", c.Output.Indent)
	}
	switch strings.ToLower(c.Output.Format) {
	case FormatText, FormatJSON, FormatYAML:
		c.Output.Format = strings.ToLower(c.Output.Format)
	default:
		return fmt.Errorf("unknown output format '%s'", c.Output.Format)
	}
	switch c.Display.KeyCase {
	case KeyCaseOriginal, KeyCaseSnake, KeyCaseCamel, KeyCaseLowerCamel, KeyCaseKebab:
	case "":
		c.Display.KeyCase = KeyCaseOriginal
	default:
		return fmt.Errorf("unknown key case '%s'", c.Display.KeyCase)
	}
	return nil
}

// DisplayKey returns how an object key is shown in rendered paths
func (c *Config) DisplayKey(key string) string {
	switch c.Display.KeyCase {
	case KeyCaseSnake:
		return strcase.ToSnake(key)
	case KeyCaseCamel:
		return strcase.ToCamel(key)
	case KeyCaseLowerCamel:
		return strcase.ToLowerCamel(key)
	case KeyCaseKebab:
		return strcase.ToKebab(key)
	default:
		return key
	}
}

// Overrides holds values set explicitly on the command line. Nil fields were
// not set and leave the base configuration untouched.
type Overrides struct {
	MaxDepth   *int
	Format     *string
	ShowCounts *bool
	ShowSource *bool
	KeyCase    *string
	Debug      *bool
}

// MergeConfigs applies explicitly set overrides on top of a copy of base
func MergeConfigs(base *Config, override Overrides) *Config {
	merged := *base

	if override.MaxDepth != nil {
		merged.Walker.MaxDepth = *override.MaxDepth
	}
	if override.Format != nil && *override.Format != "" {
		merged.Output.Format = *override.Format
	}
	if override.ShowCounts != nil {
		merged.Output.ShowCounts = *override.ShowCounts
	}
	if override.ShowSource != nil {
		merged.Output.ShowSource = *override.ShowSource
	}
	if override.KeyCase != nil && *override.KeyCase != "" {
		merged.Display.KeyCase = *override.KeyCase
	}
	if override.Debug != nil {
		merged.Dev.Debug = *override.Debug
	}

	return &merged
}

// LoadConfigWithCLI loads the config file, if any, and applies CLI overrides.
// An empty configPath falls back to FindConfigFile.
func LoadConfigWithCLI(configPath string, override Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg = MergeConfigs(cfg, override)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
