package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is binder's runtime configuration.
type Config struct {
	// Collection is a file path or an http(s) URL.
	Collection  string
	PageSize    int
	SearchDelay time.Duration
	LogFile     string
	DefaultView string
	Watch       bool
}

const (
	defaultConfigPath    = "~/.config/binder/config.toml"
	defaultCollection    = "~/.local/share/binder/collection.json"
	defaultLogFile       = "~/.local/state/binder/binder.log"
	defaultPageSize      = 12
	defaultSearchDelayMS = 300
	defaultView          = "grid"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Collection:  mustExpand(defaultCollection),
		PageSize:    defaultPageSize,
		SearchDelay: defaultSearchDelayMS * time.Millisecond,
		LogFile:     mustExpand(defaultLogFile),
		DefaultView: defaultView,
	}
}

// Load locates and parses the binder config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Collection    string `toml:"collection"`
		PageSize      *int   `toml:"page_size"`
		SearchDelayMS *int   `toml:"search_delay_ms"`
		LogFile       string `toml:"log_file"`
		DefaultView   string `toml:"default_view"`
		Watch         bool   `toml:"watch"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if loc := strings.TrimSpace(raw.Collection); loc != "" {
		cfg.Collection = ExpandLocation(loc)
	}
	if raw.PageSize != nil && *raw.PageSize > 0 {
		cfg.PageSize = *raw.PageSize
	}
	if raw.SearchDelayMS != nil && *raw.SearchDelayMS >= 0 {
		cfg.SearchDelay = time.Duration(*raw.SearchDelayMS) * time.Millisecond
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if view := strings.ToLower(strings.TrimSpace(raw.DefaultView)); view != "" {
		cfg.DefaultView = view
	}
	cfg.Watch = raw.Watch

	return cfg, nil
}

// ExpandLocation expands a leading ~ in a collection path. URLs are returned
// unchanged.
func ExpandLocation(loc string) string {
	trimmed := strings.TrimSpace(loc)
	if IsURL(trimmed) {
		return trimmed
	}
	return mustExpand(trimmed)
}

// IsURL reports whether loc names an http(s) collection.
func IsURL(loc string) bool {
	lower := strings.ToLower(strings.TrimSpace(loc))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
