// Package config loads and validates the DCLG service's tunables.
package config

import (
	"fmt"

	pkgconfig "github.com/bruhhgnik/DCLG-outfitrec/internal/platform/config"
)

// Config holds every tunable named in the generator's configuration
// section: cache sizing, candidate thresholds, assembly constraints, and
// the coherence formula's weights.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPPort int `env:"DCLG_HTTP_PORT" envDefault:"8080"`

	DatabaseURL string `env:"DATABASE_URL" envDefault:"postgres://localhost:5432/dclg"`

	// Cache
	CacheTTLSeconds int `env:"CACHE_TTL_SECONDS" envDefault:"300"`
	CacheCapacity   int `env:"CACHE_CAPACITY" envDefault:"2048"`

	// Candidate generation
	MinEdgeScore float64 `env:"MIN_EDGE_SCORE" envDefault:"0.5"`
	MaxLooks     int     `env:"MAX_LOOKS" envDefault:"10"`

	// Validity filter
	StrictAesthetics bool `env:"STRICT_AESTHETICS" envDefault:"false"`
	FormalitySpread  int  `env:"FORMALITY_SPREAD" envDefault:"2"`

	// LookAssembler
	IntraLookFormalitySpread int `env:"INTRA_LOOK_FORMALITY_SPREAD" envDefault:"2"`

	// CoherenceScorer weights
	CoherenceAlpha float64 `env:"COHERENCE_ALPHA" envDefault:"0.5"`
	CoherenceBeta  float64 `env:"COHERENCE_BETA" envDefault:"0.3"`
	CoherenceGamma float64 `env:"COHERENCE_GAMMA" envDefault:"0.2"`

	// Store resilience
	StoreCallTimeoutMillis int `env:"STORE_CALL_TIMEOUT_MS" envDefault:"300"`

	// Tracing
	TracingEnabled     bool   `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint    string `env:"TRACING_ENDPOINT" envDefault:"localhost:4318"`
	TracingServiceName string `env:"TRACING_SERVICE_NAME" envDefault:"dclg-service"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load dclg config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants the loader itself can't express.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("cache TTL seconds must be positive: %d", c.CacheTTLSeconds)
	}
	if c.CacheCapacity <= 0 {
		return fmt.Errorf("cache capacity must be positive: %d", c.CacheCapacity)
	}
	if c.MinEdgeScore < 0 || c.MinEdgeScore > 1 {
		return fmt.Errorf("min edge score must be in [0,1]: %f", c.MinEdgeScore)
	}
	if c.MaxLooks <= 0 {
		return fmt.Errorf("max looks must be positive: %d", c.MaxLooks)
	}
	if c.FormalitySpread < 0 {
		return fmt.Errorf("formality spread must be non-negative: %d", c.FormalitySpread)
	}
	if c.IntraLookFormalitySpread < 0 {
		return fmt.Errorf("intra-look formality spread must be non-negative: %d", c.IntraLookFormalitySpread)
	}
	return nil
}
