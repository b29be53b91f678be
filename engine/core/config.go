package core

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the application-level configuration, loadable from a TOML
// file. Zero values fall back to the defaults in DefaultConfig.
type Config struct {
	Name      string `toml:"name"`
	Width     uint32 `toml:"width"`
	Height    uint32 `toml:"height"`
	VSync     bool   `toml:"vsync"`
	Debug     bool   `toml:"debug"`
	LogLevel  string `toml:"log_level"`
	Backend   string `toml:"backend"`
	AssetsDir string `toml:"assets_dir"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() *Config {
	return &Config{
		Name:      "Candid Application",
		Width:     1280,
		Height:    720,
		VSync:     true,
		LogLevel:  "info",
		Backend:   "auto",
		AssetsDir: "assets",
	}
}

// LoadConfig reads a TOML configuration file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
