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

	// Redis configuration (booking identity sessions).
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	SessionTTLMin  int    `mapstructure:"SESSION_TTL_MIN"`

	// Persistence gateway. Driver is "firestore" or "mongo".
	GatewayDriver     string `mapstructure:"GATEWAY_DRIVER"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	BookingCollection string `mapstructure:"BOOKING_COLLECTION"`
	// BookingScope is "user" (bookings nested under each identity) or
	// "shared" (one flat collection).
	BookingScope string `mapstructure:"BOOKING_SCOPE"`

	// Firebase project configuration.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseAPIKey          string `mapstructure:"FIREBASE_API_KEY"`

	// AppID is the tenant identifier bookings are filed under. Hosting
	// environments may inject it; otherwise the fallback applies.
	AppID string `mapstructure:"APP_ID"`
	// InitialAuthToken is an optional custom sign-in token injected by the
	// hosting environment. Empty means anonymous sign-in.
	InitialAuthToken string `mapstructure:"INITIAL_AUTH_TOKEN"`

	// MessageDisplayMS is how long a success/failure status stays visible
	// before the workflow returns to idle.
	MessageDisplayMS int `mapstructure:"MESSAGE_DISPLAY_MS"`

	// CatalogFile optionally overrides the built-in package/add-on catalog.
	CatalogFile string `mapstructure:"CATALOG_FILE"`
}

var AppConfig Config

// LoadConfig initializes Viper to load config values from env, file, or defaults.
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
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("SESSION_TTL_MIN", 720)
	viper.SetDefault("GATEWAY_DRIVER", "firestore")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "pinkmint")
	viper.SetDefault("BOOKING_COLLECTION", "bookings")
	viper.SetDefault("BOOKING_SCOPE", "user")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("FIREBASE_PROJECT_ID", "")
	viper.SetDefault("FIREBASE_API_KEY", "")
	viper.SetDefault("APP_ID", "default-app-id")
	viper.SetDefault("INITIAL_AUTH_TOKEN", "")
	viper.SetDefault("MESSAGE_DISPLAY_MS", 5000)
	viper.SetDefault("CATALOG_FILE", "")

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
