package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
	Prefabs PrefabsConfig `yaml:"prefabs"`
	Debug   bool          `yaml:"debug" env:"FREELOOK_DEBUG"`
}

type WindowConfig struct {
	Title  string `yaml:"title" env:"FREELOOK_WINDOW_TITLE"`
	Width  int    `yaml:"width" env:"FREELOOK_WINDOW_WIDTH"`
	Height int    `yaml:"height" env:"FREELOOK_WINDOW_HEIGHT"`
	TPS    int    `yaml:"tps" env:"FREELOOK_TPS"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"FREELOOK_LOG_LEVEL"`
	Format string `yaml:"format" env:"FREELOOK_LOG_FORMAT"`
}

type PrefabsConfig struct {
	Dir   string `yaml:"dir" env:"FREELOOK_PREFABS_DIR"`
	Watch bool   `yaml:"watch" env:"FREELOOK_PREFABS_WATCH"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "freelook",
			Width:  1280,
			Height: 720,
			TPS:    60,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Prefabs: PrefabsConfig{Dir: "prefabs"},
	}
}

// Load reads path over the defaults, then applies FREELOOK_* environment
// overrides. An empty path or a missing file keeps the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
			}
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("config: tps %d must be positive", c.Window.TPS)
	}
	return nil
}
