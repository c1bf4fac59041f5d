package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the server configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Debug    bool           `mapstructure:"debug"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// OpenAIConfig configures the optional text analysis service.
type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// GetDSN returns the Postgres connection string.
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Best effort; a missing .env just means plain env vars are used
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("database.host", getEnv("DB_HOST", "localhost"))
	viper.SetDefault("database.port", getEnvInt("DB_PORT", 5432))
	viper.SetDefault("database.user", getEnv("DB_USER", "postgres"))
	viper.SetDefault("database.password", getEnv("DB_PASSWORD", ""))
	viper.SetDefault("database.name", getEnv("DB_NAME", "daybook"))
	viper.SetDefault("database.ssl_mode", getEnv("DB_SSL_MODE", "disable"))
	viper.SetDefault("server.host", getEnv("SERVER_HOST", "localhost"))
	viper.SetDefault("server.port", getEnvInt("SERVER_PORT", 8080))
	viper.SetDefault("openai.api_key", getEnv("OPENAI_API_KEY", ""))
	viper.SetDefault("openai.model", getEnv("OPENAI_MODEL", "gpt-4o-mini"))
	viper.SetDefault("debug", getEnv("DEBUG", "") != "")

	viper.AutomaticEnv()

	// Config file is optional; defaults and env vars cover everything
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
