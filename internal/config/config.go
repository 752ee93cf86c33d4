// Package config handles pipeline configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the pipeline configuration stored in ~/.config/reap/config.yml.
// Zero values fall back to defaults at load time.
type Config struct {
	MinConfidenceThreshold float64  `yaml:"min_confidence_threshold"`
	OutputFormats          []string `yaml:"output_formats,omitempty"`
	QualityIndicators      []string `yaml:"quality_indicators,omitempty"` // Overrides the arbiter vocabulary
	MaxFileSizeMB          int      `yaml:"max_file_size_mb"`

	// Backend toggles and tool paths. Env vars REAP_PDFTOTEXT, REAP_PDFTOPPM
	// and REAP_TESSERACT override the paths.
	OCREnabled    bool   `yaml:"ocr_enabled"`
	OCRLanguage   string `yaml:"ocr_language,omitempty"`
	PdftotextPath string `yaml:"pdftotext_path,omitempty"`
	PdftoppmPath  string `yaml:"pdftoppm_path,omitempty"`
	TesseractPath string `yaml:"tesseract_path,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "reap"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// ValidFormats lists the supported export format values.
var ValidFormats = []string{"json", "csv", "md", "bib", "jsonl"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MinConfidenceThreshold: 0.3,
		OutputFormats:          []string{"json", "csv", "md"},
		MaxFileSizeMB:          50,
		OCREnabled:             true,
		OCRLanguage:            "eng",
	}
}

// Path returns the config file location. Respects XDG_CONFIG_HOME, defaults
// to ~/.config/reap/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the config file, returning defaults when it doesn't exist.
func Load() (*Config, error) {
	path := Path()
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from an explicit path, filling unset fields
// with defaults. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.MinConfidenceThreshold < 0 || cfg.MinConfidenceThreshold > 1 {
		return nil, fmt.Errorf("min_confidence_threshold must be in [0,1], got %v", cfg.MinConfidenceThreshold)
	}
	for _, f := range cfg.OutputFormats {
		if !validFormat(f) {
			return nil, fmt.Errorf("invalid output format: %s (valid: %v)", f, ValidFormats)
		}
	}

	return cfg, nil
}

// Save writes the configuration to the given path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func validFormat(f string) bool {
	for _, valid := range ValidFormats {
		if f == valid {
			return true
		}
	}
	return false
}

// ExpandPath expands ~ to the user's home directory. Returns the original
// path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
