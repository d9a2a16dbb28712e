package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-based settings
type Config struct {
	ServerAddress string
	LogLevel      string

	// Persistence backend: file (default), redis or postgres.
	StoreBackend string
	DataDir      string
	DatabaseURL  string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBroker string

	BackupDir       string
	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string

	// How long after its start a prayer is shown as "current".
	ActiveWindow time.Duration
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		StoreBackend:  getEnv("STORE_BACKEND", "file"),
		DataDir:       getEnv("DATA_DIR", "./data"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		MQTTBroker:    os.Getenv("MQTT_BROKER"),

		BackupDir:       getEnv("BACKUP_DIR", "./backups"),
		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),
	}

	minutes := 30
	if raw := os.Getenv("PRAYER_ACTIVE_WINDOW_MINUTES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid PRAYER_ACTIVE_WINDOW_MINUTES %q", raw)
		}
		minutes = n
	}
	cfg.ActiveWindow = time.Duration(minutes) * time.Minute

	switch cfg.StoreBackend {
	case "file":
	case "redis":
		if cfg.RedisAddress == "" {
			return nil, fmt.Errorf("STORE_BACKEND=redis requires REDIS_ADDRESS")
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("STORE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.UseSpaces && (cfg.SpacesEndpoint == "" || cfg.SpacesBucket == "") {
		return nil, fmt.Errorf("USE_SPACES requires SPACES_ENDPOINT and SPACES_BUCKET")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
