package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/stigmergic-org/simplepage-stats/internal/shared/validators"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix       = "SIMPLEPAGE"
	envPlausibleKey = "PLAUSIBLE_API_KEY"
	dotEnvFile      = ".env"
)

// LoadConfig reads configuration from file, applies environment overrides and validates it.
//
// Environment variables use the SIMPLEPAGE_ prefix with dots replaced by underscores
// (e.g. SIMPLEPAGE_PLAUSIBLE_SITE_ID). The API key may also be supplied as PLAUSIBLE_API_KEY.
// A .env file in the working directory is loaded first when present.
var LoadConfig = func(configPath string) (*Config, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", dotEnvFile, err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.BindEnv("plausible.api_key", envPrefix+"_PLAUSIBLE_API_KEY", envPlausibleKey); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// setDefaults registers defaults so that env overrides work for keys absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("plausible.api_url", "https://plausible.io/api/v2/query")
	v.SetDefault("plausible.timeout_seconds", 30)
	v.SetDefault("output.snapshot_key", "data.json")
	v.SetDefault("output.html_key", "index.html")
	v.SetDefault("refresh.interval_minutes", 1440)
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "Config.Server.Port" -> "server.port")
	if e.StructNamespace() != "" {
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			field = strings.ToLower(strings.Join(parts[1:], "."))
		}
	}

	switch tag {
	case "required":
		return fmt.Sprintf("%s (required)", field)
	case "min", "max", "oneof":
		return fmt.Sprintf("%s (%s=%s)", field, tag, e.Param())
	default:
		return fmt.Sprintf("%s (%s)", field, tag)
	}
}
