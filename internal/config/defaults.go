package config

import "github.com/youruser/shotframe/internal/target"

const (
	DefaultBackground = "#006400"
	DefaultOutputDir  = "google_play_assets"
	DefaultQRSize     = 512
	DefaultBind       = "127.0.0.1:8080"
)

// DefaultInputs are read from the working directory when no inputs are configured.
var DefaultInputs = []string{"print1.png", "print2.png", "print3.png"}

// Default returns the Google Play batch configuration.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Background == "" {
		c.Background = DefaultBackground
	}
	if len(c.Inputs) == 0 {
		c.Inputs = append([]string(nil), DefaultInputs...)
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if len(c.Targets) == 0 {
		c.Targets = target.Defaults()
	}
	if c.QRSize == 0 {
		c.QRSize = DefaultQRSize
	}
	if c.Server.Bind == "" {
		c.Server.Bind = DefaultBind
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
