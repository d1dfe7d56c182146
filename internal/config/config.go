package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               string `mapstructure:"port"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	Name               string `mapstructure:"name"`
	SSLMode            string `mapstructure:"sslmode"`
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSec int    `mapstructure:"conn_max_lifetime_sec"`
	// ConnectAttempts bounds the startup pings while PostgreSQL comes up.
	ConnectAttempts int `mapstructure:"connect_attempts"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// GatewayConfig holds settings of the same-origin gateway.
type GatewayConfig struct {
	Port string `mapstructure:"port"`
	// BackendBaseURL is the single base URL used both to call the backend API
	// and to build absolute file URLs for preview and download.
	BackendBaseURL string        `mapstructure:"backend_base_url"`
	BackendTimeout time.Duration `mapstructure:"backend_timeout"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	MaxUploadBytes int           `mapstructure:"max_upload_bytes"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables and an optional config.yaml.
type AppConfig struct {
	Env      string         `mapstructure:"env"`
	Timezone string         `mapstructure:"timezone"`
	Port     string         `mapstructure:"port"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Database DatabaseConfig `mapstructure:"database"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
}

// DefaultBackendBaseURL is used when API_BASE_URL is not set.
const DefaultBackendBaseURL = "http://localhost:8080"

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"env":                            "APP_ENV",
	"timezone":                       "APP_TIMEZONE",
	"port":                           "PORT",
	"gateway.port":                   "GATEWAY_PORT",
	"gateway.backend_base_url":       "API_BASE_URL",
	"gateway.backend_timeout":        "BACKEND_TIMEOUT",
	"gateway.jwt_secret":             "JWT_SECRET",
	"gateway.max_upload_bytes":       "MAX_UPLOAD_BYTES",
	"database.host":                  "DB_HOST",
	"database.port":                  "DB_PORT",
	"database.user":                  "DB_USER",
	"database.password":              "DB_PASSWORD",
	"database.name":                  "DB_NAME",
	"database.sslmode":               "DB_SSLMODE",
	"database.max_open_conns":        "DB_MAX_OPEN_CONNS",
	"database.max_idle_conns":        "DB_MAX_IDLE_CONNS",
	"database.conn_max_lifetime_sec": "DB_CONN_MAX_LIFETIME_SEC",
	"database.connect_attempts":      "DB_CONNECT_ATTEMPTS",
	"minio.endpoint":                 "MINIO_ENDPOINT",
	"minio.access_key":               "MINIO_ACCESS_KEY",
	"minio.secret_key":               "MINIO_SECRET_KEY",
	"minio.bucket":                   "MINIO_BUCKET",
	"minio.use_ssl":                  "MINIO_USE_SSL",
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// A config.yaml in the working directory or ./config is optional; environment variables take precedence.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Gateway.BackendBaseURL = strings.TrimRight(cfg.Gateway.BackendBaseURL, "/")
	if cfg.Gateway.BackendBaseURL == "" {
		cfg.Gateway.BackendBaseURL = DefaultBackendBaseURL
	}
	return &cfg, nil
}

// Location returns the configured time zone, falling back to UTC when unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("port", "8080") // default only for non-sensitive value
	v.SetDefault("gateway.port", "3000")
	v.SetDefault("gateway.backend_base_url", DefaultBackendBaseURL)
	v.SetDefault("gateway.backend_timeout", 0)
	v.SetDefault("gateway.jwt_secret", "")
	v.SetDefault("gateway.max_upload_bytes", 20<<20)
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_sec", 300)
	v.SetDefault("database.connect_attempts", 5)
	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", "")
	v.SetDefault("minio.use_ssl", false)
}
