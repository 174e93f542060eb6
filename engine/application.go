package engine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/aurora/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// Directory scanned for loadable assets, relative to the working directory.
	AssetsDir string `toml:"assets_dir"`
	// Number of background workers servicing asset fetches.
	Workers int `toml:"workers"`
	// When true, the frame statistics overlay is refreshed every frame.
	ShowStats bool   `toml:"show_stats"`
	LogLevel  string `toml:"log_level"`
}

// DefaultApplicationConfig returns the configuration used when no config
// file is present on disk.
func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  1280,
		StartHeight: 720,
		Name:        "aurora",
		AssetsDir:   "assets",
		Workers:     4,
		ShowStats:   true,
		LogLevel:    "debug",
	}
}

// LoadApplicationConfig reads a TOML configuration file from disk. Missing
// optional fields fall back to defaults; an invalid window size is an error.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := &ApplicationConfig{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *ApplicationConfig) Validate() error {
	if cfg.Name == "" {
		cfg.Name = "aurora"
	}
	if cfg.StartWidth == 0 || cfg.StartHeight == 0 {
		return fmt.Errorf("invalid window size %dx%d", cfg.StartWidth, cfg.StartHeight)
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = "assets"
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	core.SetLogLevel(core.ParseLogLevel(cfg.LogLevel))
	return nil
}
