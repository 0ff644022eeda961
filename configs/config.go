// Package configs loads the process configuration for capacities-mcp.
//
// Configuration comes from environment variables with the prefix
// "CAPACITIES_", optionally merged with a YAML file (CAPACITIES_CONFIG_FILE)
// for the non-secret settings. Environment variables always win over file
// values. The configuration is loaded once at startup and treated as
// immutable afterwards; no other component reads the process environment.
package configs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/wavilikhin/capacities-mcp/internal/domain"
)

// DefaultAPIHost is the fixed base origin of the Capacities API.
const DefaultAPIHost = "https://api.capacities.io"

// FileConfig is the structure of the optional YAML configuration file.
// The API token deliberately has no file field: secrets stay in the
// environment.
type FileConfig struct {
	APIHost        string `yaml:"api_host"`
	DefaultSpaceID string `yaml:"default_space_id"`
	LogFile        string `yaml:"log_file"`
}

// Config is the effective application configuration, merged from the file
// and environment variables.
type Config struct {
	// ConfigFilePath is resolved from the environment first so the file can
	// be located; empty means no file is read.
	ConfigFilePath string `envconfig:"CONFIG_FILE"`

	APIToken       string `envconfig:"API_TOKEN"`
	APIHost        string `envconfig:"API_HOST"`
	DefaultSpaceID string `envconfig:"DEFAULT_SPACE_ID"`

	ListenAddr        string        `envconfig:"LISTEN_ADDR" default:":8080"`
	HTTPClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"30s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE" default:"/tmp/capacities-mcp.log"`

	OtelExporterOtlpEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

// ParsedLogLevel returns the slog.Level for the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// Load builds the effective configuration: environment first (to locate the
// file), then the YAML file, then the environment again so env vars override
// file values. The API token is required and the default space id, when
// present, must already be a valid UUID; both are checked here so a
// misconfigured server never starts.
func Load() (*Config, error) {
	var initialCfg Config
	if err := envconfig.Process("capacities", &initialCfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	finalCfg := initialCfg
	if initialCfg.ConfigFilePath != "" {
		yamlFile, err := os.ReadFile(initialCfg.ConfigFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", initialCfg.ConfigFilePath, err)
		}
		var fileCfg FileConfig
		if err := yaml.Unmarshal(yamlFile, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file %q: %w", initialCfg.ConfigFilePath, err)
		}
		if fileCfg.APIHost != "" {
			finalCfg.APIHost = fileCfg.APIHost
		}
		if fileCfg.DefaultSpaceID != "" {
			finalCfg.DefaultSpaceID = fileCfg.DefaultSpaceID
		}
		if fileCfg.LogFile != "" {
			finalCfg.LogFile = fileCfg.LogFile
		}

		// Process the environment again so env vars win over file values.
		if err := envconfig.Process("capacities", &finalCfg); err != nil {
			return nil, fmt.Errorf("failed to process overriding environment variables: %w", err)
		}
	}

	finalCfg.APIToken = strings.TrimSpace(finalCfg.APIToken)
	if finalCfg.APIToken == "" {
		return nil, domain.NewConfigError(
			"missing Capacities API token",
			"Set CAPACITIES_API_TOKEN to a token generated in the Capacities desktop app.",
		)
	}

	if finalCfg.APIHost == "" {
		finalCfg.APIHost = DefaultAPIHost
	}

	finalCfg.DefaultSpaceID = strings.TrimSpace(finalCfg.DefaultSpaceID)
	if finalCfg.DefaultSpaceID != "" && !domain.ValidSpaceID(finalCfg.DefaultSpaceID) {
		return nil, domain.NewValidationError(
			fmt.Sprintf("CAPACITIES_DEFAULT_SPACE_ID %q is not a valid UUID", finalCfg.DefaultSpaceID),
			"Use the canonical 8-4-4-4-12 UUID form shown in the Capacities space settings.",
		)
	}

	return &finalCfg, nil
}
