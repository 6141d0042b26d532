package utils

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Order    OrderConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32

	// AutoMigrate applies pending schema migrations on startup.
	AutoMigrate bool
}

type SessionConfig struct {
	ExpiryHours int
}

type OrderConfig struct {
	// StoreTimeout bounds every persistence call made by the services.
	StoreTimeout time.Duration
	// TransitionRetries is how many times a status change is re-validated
	// after losing a compare-and-swap race before giving up with a conflict.
	TransitionRetries int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "storefront-admin")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("STORE_TIMEOUT", "5s")
	viper.SetDefault("ORDER_TRANSITION_RETRIES", 3)

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env is fine, the environment still applies.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isNotExist(err) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			Name:        viper.GetString("DB_NAME"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			MaxConns:    viper.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Order: OrderConfig{
			StoreTimeout:      viper.GetDuration("STORE_TIMEOUT"),
			TransitionRetries: viper.GetInt("ORDER_TRANSITION_RETRIES"),
		},
	}

	if config.Order.TransitionRetries < 1 {
		config.Order.TransitionRetries = 1
	}

	return config, nil
}
