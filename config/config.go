package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Cache   CacheConfig
	Suggest SuggestConfig
	Refresh RefreshConfig
	Images  ImagesConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog backend configuration.
type CatalogConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Bucket  string `mapstructure:"bucket"`
}

// CacheConfig holds cache slot configuration.
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory", "file", or "redis"
	Path     string        `mapstructure:"path"`
	RedisURL string        `mapstructure:"redis_url"`
	RedisKey string        `mapstructure:"redis_key"`
	Expiry   time.Duration `mapstructure:"expiry"`
}

// SuggestConfig holds suggestion composer configuration.
type SuggestConfig struct {
	Backend     string `mapstructure:"backend"` // "catalog" or "meili"
	Limit       int    `mapstructure:"limit"`
	MeiliURL    string `mapstructure:"meili_url"`
	MeiliAPIKey string `mapstructure:"meili_api_key"`
	MeiliIndex  string `mapstructure:"meili_index"`
}

// RefreshConfig holds the scheduled catalog refresh configuration.
type RefreshConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// ImagesConfig holds image generation collaborator configuration.
type ImagesConfig struct {
	GeneratorURL string `mapstructure:"generator_url"`
	Debug        bool   `mapstructure:"debug"`
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/drinkslane/")

	v.SetEnvPrefix("DRINKSLANE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Keys without a default are unknown to Unmarshal unless bound, so an
	// env-only deployment could never supply them.
	for _, key := range []string{
		"catalog.base_url",
		"catalog.api_key",
		"cache.redis_url",
		"suggest.meili_url",
		"suggest.meili_api_key",
		"images.generator_url",
		"images.debug",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	// Config file is optional; env vars and defaults cover the rest.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog backend defaults
	v.SetDefault("catalog.bucket", "product-images")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.path", "data/catalog-cache.json")
	v.SetDefault("cache.redis_key", "drinkslane:catalog")
	v.SetDefault("cache.expiry", "1h")

	// Suggestion defaults
	v.SetDefault("suggest.backend", "catalog")
	v.SetDefault("suggest.limit", 6)
	v.SetDefault("suggest.meili_index", "products")

	// Refresh defaults
	v.SetDefault("refresh.enabled", true)
	v.SetDefault("refresh.schedule", "@every 15m")
}

// validate validates the configuration.
func validate(config *Config) error {
	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required (set DRINKSLANE_CATALOG_BASE_URL)")
	}

	switch config.Cache.Type {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("cache type must be 'memory', 'file', or 'redis', got: %s", config.Cache.Type)
	}
	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	switch config.Suggest.Backend {
	case "catalog", "meili":
	default:
		return fmt.Errorf("suggest backend must be 'catalog' or 'meili', got: %s", config.Suggest.Backend)
	}
	if config.Suggest.Backend == "meili" && config.Suggest.MeiliURL == "" {
		return fmt.Errorf("Meilisearch URL is required when suggest backend is 'meili'")
	}

	return nil
}
