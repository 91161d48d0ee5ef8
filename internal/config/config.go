package config

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Save      SaveConfig      `yaml:"save"`
	Game      GameConfig      `yaml:"game"`
	Log       LogConfig       `yaml:"log"`
	Window    WindowConfig    `yaml:"window"`
	Chronicle ChronicleConfig `yaml:"chronicle"`
}

type SaveConfig struct {
	Backend string `yaml:"backend"` // file or sqlite
	Path    string `yaml:"path"`
	Backups int    `yaml:"backups"` // compressed copies kept beside the save
}

type GameConfig struct {
	Variant string `yaml:"variant"` // crops or network
	Seed    int64  `yaml:"seed"`    // 0 = pick from the clock
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

type ChronicleConfig struct {
	Path string `yaml:"path"`
}

// Load reads the embedded defaults and overlays the file at path, if any.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Save.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("save.backend must be file or sqlite, got %q", c.Save.Backend)
	}
	if strings.TrimSpace(c.Save.Path) == "" {
		return fmt.Errorf("save.path is empty")
	}
	if c.Save.Backups < 0 {
		return fmt.Errorf("save.backups must not be negative")
	}
	switch strings.ToLower(c.Game.Variant) {
	case "", "crops", "network":
	default:
		return fmt.Errorf("game.variant must be crops or network, got %q", c.Game.Variant)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Window.Width < 320 || c.Window.Height < 240 {
		return fmt.Errorf("window must be at least 320x240")
	}
	if c.Window.FPS <= 0 {
		c.Window.FPS = 60
	}
	return nil
}

func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Logger builds the process logger described by the log section.
func (l LogConfig) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(l.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
