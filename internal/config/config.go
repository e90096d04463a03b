package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port" validate:"required,numeric"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`
	HTTPTimeout     time.Duration `json:"http_timeout" validate:"gt=0"`
	OutboundTimeout time.Duration `json:"outbound_timeout" validate:"gt=0"`

	// YouTube channel and upstreams
	YouTubeAPIKey   string `json:"-"`
	ChannelHandle   string `json:"channel_handle" validate:"required,excludes=@"`
	ChannelName     string `json:"channel_name" validate:"required"`
	ChannelURL      string `json:"channel_url" validate:"required,url"`
	DataAPIEndpoint string `json:"data_api_endpoint" validate:"omitempty,url"`
	WebBaseURL      string `json:"web_base_url" validate:"required,url"`

	// Pipeline tuning
	FallbackMaxVideos    int `json:"fallback_max_videos" validate:"min=1,max=50"`
	HydrationConcurrency int `json:"hydration_concurrency" validate:"min=1,max=50"`
	FeaturedCount        int `json:"featured_count" validate:"min=0"`

	// Redis configuration
	RedisURL    string        `json:"redis_url"`
	RedisPrefix string        `json:"redis_prefix"`
	CacheTTL    time.Duration `json:"cache_ttl" validate:"gt=0"`

	// CloudFlare R2 Configuration
	R2Endpoint  string `json:"r2_endpoint" validate:"omitempty,url"`
	R2AccessKey string `json:"-"`
	R2SecretKey string `json:"-"`
	R2Bucket    string `json:"r2_bucket"`
	R2AccountID string `json:"r2_account_id"`

	// Storage
	SnapshotPath    string `json:"snapshot_path" validate:"required"`
	PlaceholderPath string `json:"placeholder_path"`

	// Logging
	LogLevel string `json:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFile  string `json:"log_file"`

	// Security
	AdminAPIKey string `json:"-"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := FromEnv()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// FromEnv builds a Config from the current environment without validating it.
func FromEnv() *Config {
	handle := getEnv("YOUTUBE_CHANNEL_HANDLE", "nandathirdeye1152")

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		OutboundTimeout: getEnvAsDuration("OUTBOUND_TIMEOUT", 10*time.Second),

		YouTubeAPIKey:   getEnv("YOUTUBE_API_KEY", ""),
		ChannelHandle:   handle,
		ChannelName:     getEnv("YOUTUBE_CHANNEL_NAME", "Nanda Third Eye"),
		ChannelURL:      getEnv("YOUTUBE_CHANNEL_URL", "https://www.youtube.com/@"+handle),
		DataAPIEndpoint: getEnv("YOUTUBE_DATA_API_ENDPOINT", ""),
		WebBaseURL:      getEnv("YOUTUBE_WEB_BASE_URL", "https://www.youtube.com"),

		FallbackMaxVideos:    getEnvAsInt("FALLBACK_MAX_VIDEOS", 50),
		HydrationConcurrency: getEnvAsInt("HYDRATION_CONCURRENCY", 10),
		FeaturedCount:        getEnvAsInt("FEATURED_COUNT", 6),

		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_PREFIX", "ytfeed:"),
		CacheTTL:    getEnvAsDuration("CACHE_TTL", 24*time.Hour),

		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "ytfeed"),
		R2AccountID: getEnv("CLOUDFLARE_ACCOUNT_ID", ""),

		SnapshotPath:    getEnv("SNAPSHOT_PATH", "./data"),
		PlaceholderPath: getEnv("PLACEHOLDER_PATH", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

// HasAPIKey reports whether the authenticated Data API path can be used.
func (c *Config) HasAPIKey() bool {
	return c.YouTubeAPIKey != ""
}

// R2Enabled reports whether the S3-compatible snapshot archive is configured.
func (c *Config) R2Enabled() bool {
	return c.R2Endpoint != "" && c.R2AccessKey != "" && c.R2SecretKey != ""
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
