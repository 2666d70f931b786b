package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the paths, QR rendering and batch settings for a project.
type Config struct {
	Version  int            `yaml:"version"`
	Paths    PathsConfig    `yaml:"paths"`
	QR       QRConfig       `yaml:"qr"`
	Generate GenerateConfig `yaml:"generate"`
}

// PathsConfig locates the input records, output pages and page template.
// Relative values resolve against the project root.
type PathsConfig struct {
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`
	Template  string `yaml:"template"`
}

// QRConfig controls how the contact QR code is drawn.
type QRConfig struct {
	Level   string `yaml:"level"`
	BoxSize int    `yaml:"box_size"`
	Border  *int   `yaml:"border,omitempty"`
}

// GenerateConfig controls output naming and failure handling.
type GenerateConfig struct {
	FallbackName     string `yaml:"fallback_name"`
	FilenameTemplate string `yaml:"filename_template,omitempty"`
	ContinueOnError  bool   `yaml:"continue_on_error"`
}

// BorderValue returns the effective quiet zone width applying defaults.
func (q QRConfig) BorderValue() int {
	if q.Border == nil {
		return 2
	}
	return *q.Border
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Paths: PathsConfig{
			InputDir:  "input",
			OutputDir: "output",
			Template:  "templates/card.html",
		},
		QR: QRConfig{
			Level:   "low",
			BoxSize: 10,
			Border:  intPtr(2),
		},
		Generate: GenerateConfig{
			FallbackName: "card",
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults ensures nested fields fall back to sensible defaults when the
// YAML omits them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.Paths.InputDir == "" {
		c.Paths.InputDir = defaults.Paths.InputDir
	}
	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = defaults.Paths.OutputDir
	}
	if c.Paths.Template == "" {
		c.Paths.Template = defaults.Paths.Template
	}
	if c.QR.Level == "" {
		c.QR.Level = defaults.QR.Level
	}
	if c.QR.BoxSize == 0 {
		c.QR.BoxSize = defaults.QR.BoxSize
	}
	if c.QR.Border == nil {
		c.QR.Border = intPtr(defaults.QR.BorderValue())
	}
	if c.Generate.FallbackName == "" {
		c.Generate.FallbackName = defaults.Generate.FallbackName
	}
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}

func intPtr(v int) *int {
	return &v
}
