package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings Filmcard needs to reach the backend and log.
type Config struct {
	APIURL         string
	Endpoint       string
	RequestTimeout time.Duration // zero leaves requests unbounded
	LogPath        string
	LogLevel       string
}

const (
	defaultConfigPath = "~/.config/filmcard/config.toml"
	defaultLogPath    = "~/.local/state/filmcard/filmcard.log"
	defaultAPIURL     = "127.0.0.1:8000"
	defaultEndpoint   = "/api/movie"
	defaultLogLevel   = "info"
)

type fileConfig struct {
	APIURL         string `toml:"api_url"`
	Endpoint       string `toml:"endpoint"`
	RequestTimeout string `toml:"request_timeout"`
	LogPath        string `toml:"log_path"`
	LogLevel       string `toml:"log_level"`
}

type envConfig struct {
	APIURL         string         `env:"FILMCARD_API_URL"`
	Endpoint       string         `env:"FILMCARD_ENDPOINT"`
	RequestTimeout *time.Duration `env:"FILMCARD_REQUEST_TIMEOUT"`
	LogPath        string         `env:"FILMCARD_LOG_PATH"`
	LogLevel       string         `env:"FILMCARD_LOG_LEVEL"`
}

// Load reads the config file, falling back to defaults when it is missing,
// then applies FILMCARD_* environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw fileConfig
	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	var overrides envConfig
	if err := env.Parse(&overrides); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config{
		APIURL:   firstNonEmpty(overrides.APIURL, raw.APIURL, defaultAPIURL),
		Endpoint: firstNonEmpty(overrides.Endpoint, raw.Endpoint, defaultEndpoint),
		LogPath:  mustExpand(firstNonEmpty(overrides.LogPath, raw.LogPath, defaultLogPath)),
		LogLevel: strings.ToLower(firstNonEmpty(overrides.LogLevel, raw.LogLevel, defaultLogLevel)),
	}

	switch timeout := strings.TrimSpace(raw.RequestTimeout); {
	case overrides.RequestTimeout != nil:
		cfg.RequestTimeout = *overrides.RequestTimeout
	case timeout != "":
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if cfg.RequestTimeout < 0 {
		return Config{}, fmt.Errorf("request_timeout must not be negative")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
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

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
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
