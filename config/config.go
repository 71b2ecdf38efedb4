package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB   int    `mapstructure:"REDIS_SESSION_DB"`
	RedisTaskQueueDB int    `mapstructure:"REDIS_TASK_QUEUE_DB"`

	// Remote scheduling backend.
	BackendAPIURL         string `mapstructure:"BACKEND_API_URL"`
	BackendCalendarID     int    `mapstructure:"BACKEND_CALENDAR_ID"`
	BackendTimeoutSeconds int    `mapstructure:"BACKEND_TIMEOUT_SECONDS"`

	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_TASK_QUEUE_DB", 1)
	viper.SetDefault("BACKEND_API_URL", "http://localhost:5000/api")
	viper.SetDefault("BACKEND_CALENDAR_ID", 2)
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	viper.SetDefault("SESSION_TTL_MINUTES", 120)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
