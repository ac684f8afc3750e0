// Package config provides configuration for the chessboard server and CLI.
//
// Defaults come from NewConfig. Values are then overridden from the
// environment (optionally seeded from a .env file) and finally from
// command-line flags through ConfigBuilder.
package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// Log output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Analyze report formats.
const (
	ReportText = "text"
	ReportJSON = "json"
)

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string

	// RequestTimeout bounds the handling time of a single request.
	RequestTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            ":8080",
		RequestTimeout:  10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{
		Level:  "info",
		Format: FormatConsole,
	}
}

// EngineConfig holds settings applied to every new game.
type EngineConfig struct {
	// Placement is the starting placement for games created without one.
	// Empty means the standard initial placement.
	Placement string

	// SelfCheckFilter drops moves that leave the mover's king attacked.
	SelfCheckFilter bool
}

// NewEngineConfig creates an EngineConfig with default values.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{}
}

// StoreConfig selects the session store.
type StoreConfig struct {
	// DBPath is the SQLite database file. Empty keeps sessions in memory.
	DBPath string
}

// NewStoreConfig creates a StoreConfig with default values.
func NewStoreConfig() *StoreConfig {
	return &StoreConfig{}
}

// TokenConfig holds seat token settings.
type TokenConfig struct {
	// Secret signs seat tokens. Empty means a random per-process secret.
	Secret string

	// TTL is the token lifetime. Zero means tokens never expire.
	TTL time.Duration
}

// NewTokenConfig creates a TokenConfig with default values.
func NewTokenConfig() *TokenConfig {
	return &TokenConfig{
		TTL: 24 * time.Hour,
	}
}

// RenderConfig holds board rendering settings.
type RenderConfig struct {
	SquareSize  int
	AssetPrefix string
}

// NewRenderConfig creates a RenderConfig with default values.
func NewRenderConfig() *RenderConfig {
	return &RenderConfig{
		SquareSize:  64,
		AssetPrefix: "/assets/",
	}
}

// AnalyzeConfig holds settings for batch placement analysis.
type AnalyzeConfig struct {
	// Workers is the number of concurrent workers. Zero means one per CPU.
	Workers int

	// Format is the report format, ReportText or ReportJSON.
	Format string

	// Dedupe skips placements already seen in the same run.
	Dedupe bool
}

// NewAnalyzeConfig creates an AnalyzeConfig with default values.
func NewAnalyzeConfig() *AnalyzeConfig {
	return &AnalyzeConfig{
		Format: ReportText,
	}
}

// Config holds all configuration for a chessboard process.
type Config struct {
	Server  *ServerConfig
	Log     *LogConfig
	Engine  *EngineConfig
	Store   *StoreConfig
	Token   *TokenConfig
	Render  *RenderConfig
	Analyze *AnalyzeConfig
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Server:  NewServerConfig(),
		Log:     NewLogConfig(),
		Engine:  NewEngineConfig(),
		Store:   NewStoreConfig(),
		Token:   NewTokenConfig(),
		Render:  NewRenderConfig(),
		Analyze: NewAnalyzeConfig(),
	}
}

// Validate checks every section and returns the first problem found,
// wrapped with ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return invalid("server address is empty")
	}
	if c.Server.RequestTimeout <= 0 {
		return invalid("request timeout must be positive, got %s", c.Server.RequestTimeout)
	}
	if c.Server.ShutdownTimeout < 0 {
		return invalid("shutdown timeout must not be negative, got %s", c.Server.ShutdownTimeout)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return invalid("log level %q: %v", c.Log.Level, err)
	}
	if c.Log.Format != FormatConsole && c.Log.Format != FormatJSON {
		return invalid("log format %q is not %q or %q", c.Log.Format, FormatConsole, FormatJSON)
	}

	if c.Engine.Placement != "" {
		if _, err := engine.ParsePlacement(c.Engine.Placement); err != nil {
			return invalid("default placement: %v", err)
		}
	}

	if c.Token.TTL < 0 {
		return invalid("token ttl must not be negative, got %s", c.Token.TTL)
	}
	if c.Render.SquareSize <= 0 {
		return invalid("square size must be positive, got %d", c.Render.SquareSize)
	}

	if c.Analyze.Workers < 0 {
		return invalid("workers must not be negative, got %d", c.Analyze.Workers)
	}
	if c.Analyze.Format != ReportText && c.Analyze.Format != ReportJSON {
		return invalid("report format %q is not %q or %q", c.Analyze.Format, ReportText, ReportJSON)
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrap(errors.ErrInvalidConfig, fmt.Sprintf(format, args...))
}
