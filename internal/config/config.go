package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the process-wide configuration for the HTTP server (the CLI
// takes its settings from flags instead): which environment to run as, how
// verbosely to log, and the
// server's listen/timeout/CORS settings. There is no database, broker, or
// worker-pool configuration here -- the compute core has no persistence or
// streaming concerns to configure.
type Config struct {
	Environment string       `mapstructure:"environment" validate:"oneof=development staging production"`
	LogLevel    string       `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	Server      ServerConfig `mapstructure:"server"`
}

// ServerConfig controls the HTTP listener and the per-request compute
// budget: how long a single indicator-batch or options-analytics call may
// run before the transport gives up and returns a timeout error (503).
type ServerConfig struct {
	HTTPPort       int    `mapstructure:"http_port" validate:"min=1024,max=65535"`
	Host           string `mapstructure:"host"`
	ReadTimeout    int    `mapstructure:"read_timeout" validate:"min=1"`
	WriteTimeout   int    `mapstructure:"write_timeout" validate:"min=1"`
	RequestTimeout int    `mapstructure:"request_timeout" validate:"min=1"`
	EnableCORS     bool   `mapstructure:"enable_cors"`
}

// Load reads configuration from a .env file (if present) layered under
// environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load("config/.env"); err != nil {
		if os.Getenv("ENVIRONMENT") == "" {
			fmt.Printf("Warning: No .env file found, using environment variables only\n")
		}
	}

	viper.SetConfigType("env")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.BindEnv("server.http_port", "SERVER_HTTP_PORT")
	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	viper.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	viper.BindEnv("server.request_timeout", "SERVER_REQUEST_TIMEOUT")
	viper.BindEnv("server.enable_cors", "SERVER_ENABLE_CORS")

	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate checks the fields Load cannot express through viper's own
// struct tags (viper has no bind-time oneof/range enforcement).
func (c *Config) Validate() error {
	if c.Server.HTTPPort == 0 {
		return errors.New("HTTP port is required")
	}
	switch c.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}
	return nil
}

// String renders the config for startup logging. Nothing here is
// sensitive, but the method is kept for parity with how the rest of this
// codebase logs its configuration.
func (c *Config) String() string {
	return fmt.Sprintf("%+v", *c)
}

func setDefaults() {
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	viper.SetDefault("server.http_port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", 10)
	viper.SetDefault("server.write_timeout", 10)
	viper.SetDefault("server.request_timeout", 5)
	viper.SetDefault("server.enable_cors", true)
}
