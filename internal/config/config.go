// FilePath: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Keycloak  KeycloakConfig
	Auth      AuthConfig
	Model     ModelConfig
	FileStore FileStoreConfig
	CORS      CORSConfig
	Devices   DevicesConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	ReadingsDB PostgresConfig `mapstructure:"readings"`
	AppDB      PostgresConfig `mapstructure:"app"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// TTLOrDefault returns the configured cache TTL, falling back to 5s when
// unset so a missing config never disables expiry.
func (r RedisConfig) TTLOrDefault() time.Duration {
	if r.CacheTTL <= 0 {
		return 5 * time.Second
	}
	return r.CacheTTL
}

type KeycloakConfig struct {
	URL          string `mapstructure:"url"`
	Realm        string `mapstructure:"realm"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	AdminUser    string `mapstructure:"admin_user"`
	AdminPass    string `mapstructure:"admin_pass"`
}

// AuthConfig covers the locally re-signed bearer token handed to the
// dashboard after the identity provider accepts a login.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// ModelConfig points at the hosted multimodal model endpoint.
type ModelConfig struct {
	Endpoint    string        `mapstructure:"endpoint"`
	APIKey      string        `mapstructure:"api_key"`
	ChatModel   string        `mapstructure:"chat_model"`
	VisionModel string        `mapstructure:"vision_model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type FileStoreConfig struct {
	BasePath     string `mapstructure:"base_path"`
	MaxImageSize int64  `mapstructure:"max_image_size"`
	PublicPath   string `mapstructure:"public_path"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DevicesConfig names the two device streams the snapshot endpoint joins.
type DevicesConfig struct {
	WasteSensorID  string `mapstructure:"waste_sensor_id"`
	WeightSensorID string `mapstructure:"weight_sensor_id"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("WASTEHUB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.readings.sslmode", "disable")
	viper.SetDefault("database.app.sslmode", "disable")

	// Redis defaults
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.cache_ttl", "5s")

	// Auth defaults
	viper.SetDefault("auth.token_ttl", "24h")

	// Model defaults
	viper.SetDefault("model.chat_model", "claude-3-5-sonnet-20241022")
	viper.SetDefault("model.vision_model", "claude-3-5-sonnet-20241022")
	viper.SetDefault("model.max_tokens", 1024)
	viper.SetDefault("model.timeout", "60s")

	// FileStore defaults
	viper.SetDefault("filestore.base_path", "./data/images")
	viper.SetDefault("filestore.max_image_size", 10*1024*1024) // 10MB
	viper.SetDefault("filestore.public_path", "/api/files")

	// CORS defaults
	viper.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})

	// Device defaults match the deployed sensor fleet
	viper.SetDefault("devices.waste_sensor_id", "waste-sensor-001")
	viper.SetDefault("devices.weight_sensor_id", "weight-sensor-001")
}

func validateConfig(config *Config) error {
	if config.Database.ReadingsDB.Host == "" {
		return fmt.Errorf("readings database host is required")
	}
	if config.Database.AppDB.Host == "" {
		return fmt.Errorf("app database host is required")
	}
	if config.Keycloak.URL == "" {
		return fmt.Errorf("keycloak URL is required")
	}
	if config.Auth.JWTSecret == "" {
		return fmt.Errorf("auth JWT secret is required")
	}
	if config.Model.Endpoint == "" {
		return fmt.Errorf("model endpoint is required")
	}
	return nil
}
