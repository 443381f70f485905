// Package config resolves runtime settings from the environment (.env is
// loaded when present) and builds the process logger.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/thesavant42/cinesearch/internal/api"
)

// Environment variable names
const (
	EnvAPIKey   = "OMDB_API_KEY"
	EnvBaseURL  = "OMDB_BASE_URL"
	EnvDBPath   = "CINESEARCH_DB"
	EnvLogLevel = "CINESEARCH_LOG_LEVEL"
	EnvTimeout  = "CINESEARCH_TIMEOUT"
)

const (
	DefaultDBPath   = "cinesearch.db"
	DefaultLogLevel = "info"
	LogFileName     = "cinesearch.log"
)

// Config holds resolved settings. Flags override these after Load.
type Config struct {
	APIKey   string
	BaseURL  string
	DBPath   string
	LogLevel string
	Timeout  time.Duration
}

// Load reads .env (silently ignored if not found) and the environment
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		APIKey:   strings.TrimSpace(getenv(EnvAPIKey)),
		BaseURL:  strings.TrimSpace(getenv(EnvBaseURL)),
		DBPath:   strings.TrimSpace(getenv(EnvDBPath)),
		LogLevel: strings.TrimSpace(getenv(EnvLogLevel)),
		Timeout:  api.DefaultTimeout,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = api.DefaultBaseURL
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if raw := strings.TrimSpace(getenv(EnvTimeout)); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvTimeout, raw, err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("invalid %s %q: must be positive", EnvTimeout, raw)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// Validate checks the settings needed to talk to OMDb
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("no OMDb API key: set %s or pass -apikey", EnvAPIKey)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// LogPath returns the log file location, next to the database
func (c Config) LogPath() string {
	return filepath.Join(filepath.Dir(c.DBPath), LogFileName)
}

// NewLogger creates a logger writing to a rotating file next to the
// database. The TUI owns the terminal, so nothing is written to stderr.
func NewLogger(c Config) (*log.Logger, io.Closer) {
	rotator := &lumberjack.Logger{
		Filename:   c.LogPath(),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	return newLogger(rotator, c.LogLevel), rotator
}

func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "cinesearch",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
