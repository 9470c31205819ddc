package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/youruser/shotframe/internal/target"
	"github.com/youruser/shotframe/internal/util"
	"gopkg.in/yaml.v3"
)

// Config describes one screenshot batch and the optional HTTP service.
type Config struct {
	Background string        `yaml:"background" toml:"background"`
	Inputs     []string      `yaml:"inputs" toml:"inputs"`
	OutputDir  string        `yaml:"output_dir" toml:"output_dir"`
	Targets    []target.Spec `yaml:"targets" toml:"targets"`
	StoreURL   string        `yaml:"store_url" toml:"store_url"`
	QRSize     int           `yaml:"qr_size" toml:"qr_size"`
	Server     ServerConfig  `yaml:"server" toml:"server"`
	Log        LogConfig     `yaml:"log" toml:"log"`
}

type ServerConfig struct {
	Bind string `yaml:"bind" toml:"bind"`
}

type LogConfig struct {
	Level       string `yaml:"level" toml:"level"`
	Development bool   `yaml:"development" toml:"development"`
}

// Load reads a YAML or TOML config, chosen by extension. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		cfg := Default()
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the batch can run with this configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir is required")
	}
	if _, err := ParseColor(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if len(c.Targets) == 0 {
		return fmt.Errorf("at least one target is required")
	}
	seen := make(map[string]bool, len(c.Targets))
	for _, t := range c.Targets {
		if err := t.Validate(); err != nil {
			return err
		}
		key := strings.ToLower(t.Name)
		if seen[key] {
			return fmt.Errorf("duplicate target %q", t.Name)
		}
		seen[key] = true
	}
	if err := checkOutputNames(c.Inputs); err != nil {
		return err
	}
	if c.QRSize < 0 {
		return fmt.Errorf("qr_size must not be negative")
	}
	return nil
}

// BackgroundColor returns the parsed background. Call after Validate.
func (c *Config) BackgroundColor() (color.NRGBA, error) {
	return ParseColor(c.Background)
}

// checkOutputNames rejects inputs that would write the same output file.
// Names are compared case-insensitively for case-folding filesystems.
func checkOutputNames(inputs []string) error {
	owner := make(map[string]string, len(inputs))
	for _, in := range inputs {
		name := util.OutputName(in)
		key := strings.ToLower(name)
		if prev, ok := owner[key]; ok {
			return fmt.Errorf("inputs %q and %q both write %s", prev, in, name)
		}
		owner[key] = in
	}
	return nil
}
