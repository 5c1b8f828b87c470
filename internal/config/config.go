package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/seb-luk/olo-platform/internal/filetype"
	"gopkg.in/yaml.v3"
)

// Input and output formats
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// DefaultPathSeparator separates keys in issue paths.
const DefaultPathSeparator = "/"

// Config represents the complete configuration for olotypes
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Inspect InspectConfig `yaml:"inspect"`
	Dev     DevConfig     `yaml:"dev"`
}

// InputConfig controls how input is decoded
type InputConfig struct {
	Format string `yaml:"format"` // auto, json or yaml
}

// OutputConfig controls how reports are rendered
type OutputConfig struct {
	Format string `yaml:"format"` // text, json or yaml
}

// InspectConfig controls what the analyzer checks
type InspectConfig struct {
	Deep          bool              `yaml:"deep"`
	PathSeparator string            `yaml:"path_separator"`
	Guard         string            `yaml:"guard"`
	FileType      filetype.FileType `yaml:"file_type,omitempty"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Input:  InputConfig{Format: FormatAuto},
		Output: OutputConfig{Format: FormatText},
		Inspect: InspectConfig{
			Deep:          false,
			PathSeparator: DefaultPathSeparator,
		},
		Dev: DevConfig{Debug: false},
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
	configNames := []string{".olotypes.yml", ".olotypes.yaml", "olotypes.yml", "olotypes.yaml"}

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
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that enumerated settings hold known values
func (c *Config) Validate() error {
	switch c.Input.Format {
	case FormatAuto, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown input format '%s'", c.Input.Format)
	}
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown output format '%s'", c.Output.Format)
	}
	if c.Inspect.FileType != "" && !c.Inspect.FileType.Valid() {
		return fmt.Errorf("unknown file type '%s'", c.Inspect.FileType)
	}
	return nil
}

// Separator returns the configured path separator, falling back to the default
func (c *Config) Separator() string {
	if c.Inspect.PathSeparator == "" {
		return DefaultPathSeparator
	}
	return c.Inspect.PathSeparator
}

// NormalizeGuardName maps any spelling of a guard name to its snake_case key,
// so "listOfNumber", "list-of-number" and "list_of_number" agree
func NormalizeGuardName(name string) string {
	return strcase.ToSnake(strings.TrimSpace(name))
}

// CLIOverrides holds values given on the command line. Empty strings and
// false booleans leave the loaded config untouched.
type CLIOverrides struct {
	InputFormat   string
	OutputFormat  string
	Deep          bool
	PathSeparator string
	Guard         string
	FileType      string
	Debug         bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.InputFormat != "" {
		cfg.Input.Format = strings.ToLower(cli.InputFormat)
	}
	if cli.OutputFormat != "" {
		cfg.Output.Format = strings.ToLower(cli.OutputFormat)
	}
	if cli.PathSeparator != "" {
		cfg.Inspect.PathSeparator = cli.PathSeparator
	}
	if cli.Guard != "" {
		cfg.Inspect.Guard = cli.Guard
	}
	if cli.FileType != "" {
		ft, err := filetype.Parse(cli.FileType)
		if err != nil {
			return nil, err
		}
		cfg.Inspect.FileType = ft
	}
	// Booleans can only be switched on from the command line
	if cli.Deep {
		cfg.Inspect.Deep = true
	}
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
