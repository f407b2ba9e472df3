package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	S3     S3Config
	Engine EngineConfig
	Pool   PoolConfig
	CORS   CORSConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds the template cache settings.
type RedisConfig struct {
	URL         string        `mapstructure:"url"`
	TemplateTTL time.Duration `mapstructure:"template_ttl"`
}

// S3Config holds the raw payload archive settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EngineConfig holds analysis engine client settings. Every call carries the
// same fixed timeout; there is no retry.
type EngineConfig struct {
	Provider      string `mapstructure:"provider"`
	BaseURL       string `mapstructure:"base_url"`
	APIKey        string `mapstructure:"api_key"`
	ClientID      string `mapstructure:"client_id"`
	ClientVersion string `mapstructure:"client_version"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
}

// PoolConfig holds batch worker pool settings.
type PoolConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the DEALDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DEALDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "dealdesk")
	v.SetDefault("db.password", "dealdesk_secret")
	v.SetDefault("db.name", "dealdesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Redis defaults
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.template_ttl", "10m")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "dealdesk-raw-payloads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Engine defaults
	v.SetDefault("engine.provider", "deallens")
	v.SetDefault("engine.base_url", "")
	v.SetDefault("engine.api_key", "")
	v.SetDefault("engine.client_id", "dealdesk-backend")
	v.SetDefault("engine.client_version", "1.0.0")
	v.SetDefault("engine.timeout_secs", 60)

	// Pool defaults
	v.SetDefault("pool.concurrency", 4)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "DEALDESK_SERVER_PORT",
		"server.read_timeout":   "DEALDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "DEALDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":    "DEALDESK_SERVER_ENVIRONMENT",
		"db.host":               "DEALDESK_DB_HOST",
		"db.port":               "DEALDESK_DB_PORT",
		"db.user":               "DEALDESK_DB_USER",
		"db.password":           "DEALDESK_DB_PASSWORD",
		"db.name":               "DEALDESK_DB_NAME",
		"db.sslmode":            "DEALDESK_DB_SSLMODE",
		"db.max_open":           "DEALDESK_DB_MAX_OPEN",
		"db.max_idle":           "DEALDESK_DB_MAX_IDLE",
		"redis.url":             "DEALDESK_REDIS_URL",
		"redis.template_ttl":    "DEALDESK_REDIS_TEMPLATE_TTL",
		"s3.region":             "DEALDESK_S3_REGION",
		"s3.bucket":             "DEALDESK_S3_BUCKET",
		"s3.endpoint":           "DEALDESK_S3_ENDPOINT",
		"s3.access_key":         "DEALDESK_S3_ACCESS_KEY",
		"s3.secret_key":         "DEALDESK_S3_SECRET_KEY",
		"s3.presign_expiry":     "DEALDESK_S3_PRESIGN_EXPIRY",
		"engine.provider":       "DEALDESK_ENGINE_PROVIDER",
		"engine.base_url":       "DEALDESK_ENGINE_BASE_URL",
		"engine.api_key":        "DEALDESK_ENGINE_API_KEY",
		"engine.client_id":      "DEALDESK_ENGINE_CLIENT_ID",
		"engine.client_version": "DEALDESK_ENGINE_CLIENT_VERSION",
		"engine.timeout_secs":   "DEALDESK_ENGINE_TIMEOUT_SECS",
		"pool.concurrency":      "DEALDESK_POOL_CONCURRENCY",
		"cors.allowed_origins":  "DEALDESK_CORS_ALLOWED_ORIGINS",
		"log.level":             "DEALDESK_LOG_LEVEL",
		"log.format":            "DEALDESK_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DEALDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DEALDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Redis = RedisConfig{
		URL:         v.GetString("redis.url"),
		TemplateTTL: v.GetDuration("redis.template_ttl"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Engine = EngineConfig{
		Provider:      v.GetString("engine.provider"),
		BaseURL:       v.GetString("engine.base_url"),
		APIKey:        v.GetString("engine.api_key"),
		ClientID:      v.GetString("engine.client_id"),
		ClientVersion: v.GetString("engine.client_version"),
		TimeoutSecs:   v.GetInt("engine.timeout_secs"),
	}
	cfg.Pool = PoolConfig{
		Concurrency: v.GetInt("pool.concurrency"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
