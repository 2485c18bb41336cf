package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// Config holds environment-based settings
type Config struct {
	Environment    string
	LogLevel       string
	ServerAddress  string
	SiteURL        string
	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string
	CacheTTL      time.Duration

	// remote content api; when set the page reads from it instead of the database
	ContentAPIURL   string
	ProviderTimeout time.Duration
	RenderTimeout   time.Duration

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string

	MQTTBrokerURL   string
	MQTTTopicPrefix string

	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string
	UploadDir       string
	AssetsDir       string

	ContactRate  rate.Limit
	ContactBurst int
}

// AdminEnabled reports whether every admin credential is configured.
func (c *Config) AdminEnabled() bool {
	return c.JWTSecret != "" && c.AdminEmail != "" && c.AdminPasswordHash != ""
}

func (c *Config) Development() bool {
	return c.Environment == "development"
}

// Load reads configuration from an optional .env file and the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Environment:    get("APP_ENV", "production"),
		LogLevel:       get("LOG_LEVEL", "info"),
		ServerAddress:  get("SERVER_ADDRESS", ":8080"),
		SiteURL:        get("SITE_URL", "http://localhost:8080"),
		DatabaseURL:    getenv("DATABASE_URL"),
		MigrationsPath: get("MIGRATIONS_PATH", "./migrations"),

		RedisAddress:  getenv("REDIS_ADDRESS"),
		RedisUsername: getenv("REDIS_USERNAME"),
		RedisPassword: getenv("REDIS_PASSWORD"),

		ContentAPIURL: getenv("CONTENT_API_URL"),

		JWTSecret:         getenv("JWT_SECRET"),
		AdminEmail:        getenv("ADMIN_EMAIL"),
		AdminPasswordHash: getenv("ADMIN_PASSWORD_HASH"),

		MQTTBrokerURL:   getenv("MQTT_BROKER_URL"),
		MQTTTopicPrefix: get("MQTT_TOPIC_PREFIX", "naulin"),

		UseSpaces:       getenv("USE_SPACES") == "true",
		SpacesEndpoint:  getenv("SPACES_ENDPOINT"),
		SpacesRegion:    getenv("SPACES_REGION"),
		SpacesBucket:    getenv("SPACES_BUCKET"),
		SpacesCDNURL:    getenv("SPACES_CDN_URL"),
		SpacesAccessKey: getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: getenv("SPACES_SECRET_KEY"),
		UploadDir:       get("UPLOAD_DIR", "./uploads"),
		AssetsDir:       get("ASSETS_DIR", "./assets"),
	}

	if cfg.DatabaseURL == "" && cfg.ContentAPIURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required unless CONTENT_API_URL is set")
	}

	var err error
	if cfg.CacheTTL, err = duration(get("CACHE_TTL", "5m"), "CACHE_TTL"); err != nil {
		return nil, err
	}
	if cfg.ProviderTimeout, err = duration(get("PROVIDER_TIMEOUT", "3s"), "PROVIDER_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.RenderTimeout, err = duration(get("RENDER_TIMEOUT", "4s"), "RENDER_TIMEOUT"); err != nil {
		return nil, err
	}

	r, err := strconv.ParseFloat(get("CONTACT_RATE", "0.2"), 64)
	if err != nil || r <= 0 {
		return nil, fmt.Errorf("invalid CONTACT_RATE %q", getenv("CONTACT_RATE"))
	}
	cfg.ContactRate = rate.Limit(r)

	if cfg.ContactBurst, err = strconv.Atoi(get("CONTACT_BURST", "3")); err != nil || cfg.ContactBurst < 1 {
		return nil, fmt.Errorf("invalid CONTACT_BURST %q", getenv("CONTACT_BURST"))
	}

	if cfg.UseSpaces && (cfg.SpacesBucket == "" || cfg.SpacesEndpoint == "") {
		return nil, fmt.Errorf("SPACES_BUCKET and SPACES_ENDPOINT are required when USE_SPACES=true")
	}

	return cfg, nil
}

func duration(v, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
