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

// Config holds perch runtime settings.
type Config struct {
	// APIURL is the catalog API root. Empty starts the embedded mock API.
	APIURL         string
	MockBind       string
	DBPath         string
	LogDir         string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration
	BusyTimeout    time.Duration
}

const (
	defaultConfigPath     = "~/.config/perch/config.toml"
	defaultMockBind       = "127.0.0.1:7488"
	defaultDBPath         = "~/.local/share/perch/perch.db"
	defaultLogDir         = "~/.local/share/perch/logs"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultRequestTimeout = 5 * time.Second
	defaultBusyTimeout    = 5 * time.Second
)

// Environment variables that override the file.
const (
	EnvAPIURL   = "PERCH_API_URL"
	EnvDBPath   = "PERCH_DB_PATH"
	EnvLogLevel = "PERCH_LOG_LEVEL"
	EnvLogDir   = "PERCH_LOG_DIR"
)

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the built-in configuration with paths expanded.
func Default() Config {
	return Config{
		MockBind:       defaultMockBind,
		DBPath:         mustExpand(defaultDBPath),
		LogDir:         mustExpand(defaultLogDir),
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
		RequestTimeout: defaultRequestTimeout,
		BusyTimeout:    defaultBusyTimeout,
	}
}

// Load parses the config at path (default location when empty), falling back
// to defaults when the file is missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
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
		APIURL                string `toml:"api_url"`
		MockBind              string `toml:"mock_bind"`
		DBPath                string `toml:"db_path"`
		LogDir                string `toml:"log_dir"`
		LogLevel              string `toml:"log_level"`
		LogFormat             string `toml:"log_format"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
		BusyTimeoutSeconds    int    `toml:"busy_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIURL = strings.TrimSpace(raw.APIURL)
	cfg.MockBind = orDefault(raw.MockBind, defaultMockBind)
	cfg.DBPath = mustExpand(orDefault(raw.DBPath, defaultDBPath))
	cfg.LogDir = mustExpand(orDefault(raw.LogDir, defaultLogDir))
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel))
	cfg.LogFormat = strings.ToLower(orDefault(raw.LogFormat, defaultLogFormat))
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if raw.BusyTimeoutSeconds > 0 {
		cfg.BusyTimeout = time.Duration(raw.BusyTimeoutSeconds) * time.Second
	}

	applyEnv(&cfg)
	return cfg, nil
}

// LogPath returns the perch log file path.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/perch.log")
	}
	return filepath.Join(c.LogDir, "perch.log")
}

// UsesMock reports whether perch should start its own catalog API.
func (c Config) UsesMock() bool {
	return strings.TrimSpace(c.APIURL) == ""
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvAPIURL); ok {
		cfg.APIURL = strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		cfg.DBPath = mustExpand(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogDir)); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
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
