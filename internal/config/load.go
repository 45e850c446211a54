package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for all environment variables read by Load,
// e.g. ITEMAPI_SERVER_PORT or ITEMAPI_DATABASE_URL.
const envPrefix = "ITEMAPI"

// Default values applied when the corresponding environment variable is unset.
const (
	defaultServerPort = 8080
	defaultLogLevel   = "info"
)

// Load reads configuration from environment variables, applies defaults,
// and validates the result.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.log_level", defaultLogLevel)

	// Environment variables take precedence over defaults.
	// Keys are mapped as server.port -> ITEMAPI_SERVER_PORT.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults must be bound explicitly so viper knows
	// to look them up in the environment.
	if err := v.BindEnv("database.url"); err != nil {
		return nil, fmt.Errorf("failed to bind database.url: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the loaded configuration against the struct validation tags.
func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			fields = append(
				fields,
				fmt.Sprintf("%s (%s)", fieldErr.Namespace(), fieldErr.Tag()),
			)
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
	}

	return fmt.Errorf("configuration validation failed: %w", err)
}
