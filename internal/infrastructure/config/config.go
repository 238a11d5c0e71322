// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	AWS       AWSConfig       `mapstructure:"aws"`
	AI        AIConfig        `mapstructure:"ai"`
	Webhooks  WebhookConfig   `mapstructure:"webhooks"`
	WordPress WordPressConfig `mapstructure:"wordpress"`
	Import    ImportConfig    `mapstructure:"import"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	BaseURL     string `mapstructure:"base_url"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	EnableCORS        bool          `mapstructure:"enable_cors"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
	EnableCompression bool          `mapstructure:"enable_compression"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	SeedData        bool          `mapstructure:"seed_data"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	MaxRetries   int           `mapstructure:"max_retries"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolSize     int           `mapstructure:"pool_size"`
	SettingsTTL  time.Duration `mapstructure:"settings_ttl"`
}

// AuthConfig contains admin authentication configuration
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	JWTExpiration time.Duration `mapstructure:"jwt_expiration"`
	AdminUsername string        `mapstructure:"admin_username"`
	AdminPassword string        `mapstructure:"admin_password"`
	BCryptCost    int           `mapstructure:"bcrypt_cost"`
}

// AWSConfig contains AWS service configuration for image storage
type AWSConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Endpoint        string `mapstructure:"endpoint"`
	S3Bucket        string `mapstructure:"s3_bucket"`
	CDNBaseURL      string `mapstructure:"cdn_base_url"`
}

// AIConfig contains AI provider configuration
type AIConfig struct {
	APIKey             string        `mapstructure:"api_key"`
	BaseURL            string        `mapstructure:"base_url"`
	TextModel          string        `mapstructure:"text_model"`
	ImageModel         string        `mapstructure:"image_model"`
	VideoModel         string        `mapstructure:"video_model"`
	VideoFallbackModel string        `mapstructure:"video_fallback_model"`
	MaxTokens          int           `mapstructure:"max_tokens"`
	Temperature        float64       `mapstructure:"temperature"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	VideoPollInterval  time.Duration `mapstructure:"video_poll_interval"`
	VideoDeadline      time.Duration `mapstructure:"video_deadline"`
}

// WebhookConfig contains outbound webhook client settings. The webhook
// URLs themselves live in the site settings row, not here.
type WebhookConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// WordPressConfig contains the source blog for imports
type WordPressConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ImportConfig contains batch import pacing
type ImportConfig struct {
	ItemDelay time.Duration `mapstructure:"item_delay"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/receitario")
	}

	v.SetEnvPrefix("RECEITARIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Receitario")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.base_url", "https://receitario.com.br")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.enable_cors", true)
	v.SetDefault("server.enable_compression", true)

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite_path", "receitario.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.seed_data", true)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.settings_ttl", "5m")

	// Auth defaults
	v.SetDefault("auth.jwt_expiration", "24h")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.admin_username", "admin")

	// AI defaults
	v.SetDefault("ai.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("ai.text_model", "gemini-2.5-flash")
	v.SetDefault("ai.image_model", "imagen-4.0-generate-001")
	v.SetDefault("ai.video_model", "veo-3.1-generate-preview")
	v.SetDefault("ai.video_fallback_model", "veo-3.0-generate-001")
	v.SetDefault("ai.max_tokens", 8192)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.request_timeout", "90s")
	v.SetDefault("ai.video_poll_interval", "5s")
	v.SetDefault("ai.video_deadline", "10m")

	// Webhook defaults
	v.SetDefault("webhooks.timeout", "30s")

	// WordPress defaults
	v.SetDefault("wordpress.timeout", "30s")

	// Import defaults
	v.SetDefault("import.item_delay", "500ms")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("database.sqlite_path is required for the sqlite driver")
		}
	case "postgres":
		if c.Database.Database == "" {
			return fmt.Errorf("database.database is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" && c.App.Environment == "production" {
		return fmt.Errorf("auth.jwt_secret is required in production")
	}

	if c.AI.VideoPollInterval <= 0 {
		return fmt.Errorf("ai.video_poll_interval must be positive")
	}

	if c.Import.ItemDelay < 500*time.Millisecond {
		c.Import.ItemDelay = 500 * time.Millisecond
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Username,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// RedisAddr returns the host:port pair for the Redis client
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
