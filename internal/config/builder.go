package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// From starts a builder on top of an existing Config. The Config is
// modified in place.
func From(cfg *Config) *ConfigBuilder {
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithAddr sets the listen address.
func (b *ConfigBuilder) WithAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithRequestTimeout sets the per-request timeout.
func (b *ConfigBuilder) WithRequestTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Server.RequestTimeout = d
	return b
}

// WithLogLevel sets the log level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

// WithLogFormat sets the log format.
func (b *ConfigBuilder) WithLogFormat(format string) *ConfigBuilder {
	b.cfg.Log.Format = format
	return b
}

// WithPlacement sets the default starting placement.
func (b *ConfigBuilder) WithPlacement(placement string) *ConfigBuilder {
	b.cfg.Engine.Placement = placement
	return b
}

// WithSelfCheckFilter enables the self-check move filter.
func (b *ConfigBuilder) WithSelfCheckFilter(enabled bool) *ConfigBuilder {
	b.cfg.Engine.SelfCheckFilter = enabled
	return b
}

// WithDBPath sets the SQLite database path.
func (b *ConfigBuilder) WithDBPath(path string) *ConfigBuilder {
	b.cfg.Store.DBPath = path
	return b
}

// WithTokenSecret sets the seat token signing secret.
func (b *ConfigBuilder) WithTokenSecret(secret string) *ConfigBuilder {
	b.cfg.Token.Secret = secret
	return b
}

// WithTokenTTL sets the seat token lifetime.
func (b *ConfigBuilder) WithTokenTTL(ttl time.Duration) *ConfigBuilder {
	b.cfg.Token.TTL = ttl
	return b
}

// WithSquareSize sets the rendered square size in pixels.
func (b *ConfigBuilder) WithSquareSize(size int) *ConfigBuilder {
	b.cfg.Render.SquareSize = size
	return b
}

// WithWorkers sets the analyze worker count.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Analyze.Workers = n
	return b
}

// WithReportFormat sets the analyze report format.
func (b *ConfigBuilder) WithReportFormat(format string) *ConfigBuilder {
	b.cfg.Analyze.Format = format
	return b
}

// WithDedupe enables duplicate placement suppression.
func (b *ConfigBuilder) WithDedupe(enabled bool) *ConfigBuilder {
	b.cfg.Analyze.Dedupe = enabled
	return b
}
