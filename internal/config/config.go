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

	"github.com/five82/atlas/internal/catalog"
)

// Config captures the settings atlas reads at startup.
type Config struct {
	CatalogURL string
	APIBind    string
	// RequestTimeout bounds every outbound request. Zero means requests may
	// stay pending indefinitely.
	RequestTimeout time.Duration
	LogFile        string
	LogLevel       string
	Server         Server
}

// Server configures the reference backend started by "atlas serve".
type Server struct {
	Listen   string
	Database string
}

const (
	defaultConfigPath = "~/.config/atlas/config.toml"
	defaultLogFile    = "~/.local/state/atlas/atlas.log"
	defaultDatabase   = "~/.local/share/atlas/atlas.db"
	defaultAPIBind    = "127.0.0.1:8080"
	defaultLogLevel   = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		CatalogURL: catalog.DefaultURL,
		APIBind:    defaultAPIBind,
		LogFile:    mustExpand(defaultLogFile),
		LogLevel:   defaultLogLevel,
		Server: Server{
			Listen:   defaultAPIBind,
			Database: mustExpand(defaultDatabase),
		},
	}
}

// Load locates and parses the atlas config, falling back to defaults when missing.
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
		CatalogURL     string `toml:"catalog_url"`
		APIBind        string `toml:"api_bind"`
		RequestTimeout string `toml:"request_timeout"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
		Server         struct {
			Listen   string `toml:"listen"`
			Database string `toml:"database"`
		} `toml:"server"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.CatalogURL = orDefault(raw.CatalogURL, cfg.CatalogURL)
	cfg.APIBind = orDefault(raw.APIBind, cfg.APIBind)
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, cfg.LogLevel))
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))
	cfg.Server.Listen = orDefault(raw.Server.Listen, cfg.Server.Listen)
	cfg.Server.Database = mustExpand(orDefault(raw.Server.Database, defaultDatabase))

	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: request_timeout: %w", err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("parse config: request_timeout must not be negative")
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
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
