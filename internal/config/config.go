package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the viewer config file, relative to the process working directory.
const DefaultPath = "config/drillview.yaml"

// Environment variables that override the file.
const (
	EnvProject  = "DRILLVIEW_PROJECT"
	EnvTheme    = "DRILLVIEW_THEME"
	EnvView     = "DRILLVIEW_VIEW"
	EnvLogLevel = "DRILLVIEW_LOG_LEVEL"
)

// Window holds the desktop window settings.
type Window struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	TargetFPS  int  `yaml:"target_fps"`
}

// Config holds viewer preferences. Persisted across runs; the project document itself is never
// written. TerrainRoughness is the noise amplitude of the ground surface in metres (0 gives a
// smooth interpolated surface) and TerrainSeed picks the noise pattern.
type Config struct {
	Project          string  `yaml:"project,omitempty"`
	Theme            string  `yaml:"theme"`
	View             string  `yaml:"view"`
	ShowGrid         bool    `yaml:"show_grid"`
	ShowTerrain      bool    `yaml:"show_terrain"`
	ShowFPS          bool    `yaml:"show_fps"`
	ShowMemAlloc     bool    `yaml:"show_memalloc"`
	WatchProject     bool    `yaml:"watch_project"`
	Damping3D        float32 `yaml:"damping_3d"`
	DampingPlan      float32 `yaml:"damping_plan"`
	TerrainRoughness float32 `yaml:"terrain_roughness"`
	TerrainSeed      int32   `yaml:"terrain_seed"`
	LogLevel         string  `yaml:"log_level"`
	LogFile          string  `yaml:"log_file"`
	Font             string  `yaml:"font,omitempty"`
	Window           Window  `yaml:"window"`
}

// Default returns default preferences (light theme, 3D view, grid on, overlays off).
func Default() Config {
	return Config{
		Theme:            "light",
		View:             "view3d",
		ShowGrid:         true,
		WatchProject:     true,
		Damping3D:        0.08,
		DampingPlan:      0.12,
		TerrainRoughness: 2,
		TerrainSeed:      1,
		LogLevel:         "info",
		LogFile:          "logs/drillview.txt",
		Window: Window{
			Width:     1280,
			Height:    800,
			TargetFPS: 60,
		},
	}
}

// Load reads preferences from path, layered over Default. A missing file is not an error.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays the DRILLVIEW_* variables found by lookup (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvProject); ok && v != "" {
		c.Project = v
	}
	if v, ok := lookup(EnvTheme); ok && v != "" {
		c.Theme = v
	}
	if v, ok := lookup(EnvView); ok && v != "" {
		c.View = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// SlogLevel maps LogLevel to a slog level: debug, info, warn, error, or a number. Unknown
// values give info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if n, err := strconv.Atoi(c.LogLevel); err == nil {
		return slog.Level(n)
	}
	return slog.LevelInfo
}
