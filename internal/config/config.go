package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// TokenConfig holds session token signing configuration.
type TokenConfig struct {
	// Secret signs session tokens. It is process-wide configuration: absence
	// is a fatal startup error, never a per-request failure.
	Secret    string        `env:"TOKEN_SECRET"`
	Issuer    string        `env:"TOKEN_ISSUER"     envDefault:"user-verification-api"`
	Audience  string        `env:"TOKEN_AUDIENCE"   envDefault:"user-verification-api"`
	ExpiresIn time.Duration `env:"TOKEN_EXPIRES_IN" envDefault:"24h"`
}

// Config holds the service configuration, parsed once at startup.
type Config struct {
	Host          string `env:"HOST" envDefault:"0.0.0.0"`
	Port          int    `env:"PORT" envDefault:"8080"`
	MongoURI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"user_verification"`

	// FrontBaseURL is the default base for verification and reset links when a
	// request does not supply its own.
	FrontBaseURL string `env:"FRONT_BASE_URL" envDefault:"http://localhost:3000/verify"`

	Token TokenConfig
}

// NewConfig creates a Config instance from environment variables.
func NewConfig(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate service configuration")
	}

	return &cfg
}

// validate checks if the service configuration is valid.
func (c *Config) validate() error {
	if c.Token.Secret == "" {
		return fmt.Errorf("missing TOKEN_SECRET environment variable")
	}
	if c.Token.ExpiresIn <= 0 {
		return fmt.Errorf("TOKEN_EXPIRES_IN must be positive")
	}

	return nil
}
