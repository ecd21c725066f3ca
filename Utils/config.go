package utils

import (
	"errors"
	"os"
	"time"
)

// Config holds all process configuration. It is loaded once in main and
// passed to service constructors; nothing reads the environment after
// startup.
type Config struct {
	Port string

	MongoURI string
	MongoDB  string

	JWTSecret string
	TokenTTL  time.Duration

	RedisAddr string

	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageRegion    string
	StorageEndpoint  string
	StorageBaseURL   string
}

// DefaultTokenTTL matches the 10-day expiry of issued bearer tokens.
const DefaultTokenTTL = 240 * time.Hour

// LoadConfig reads configuration from the environment. Call godotenv.Load
// first if a .env file should be honored.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             os.Getenv("GO_SERVER_PORT"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          os.Getenv("MONGO_DB"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TokenTTL:         DefaultTokenTTL,
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		StorageAccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		StorageBucket:    os.Getenv("STORAGE_BUCKET"),
		StorageRegion:    os.Getenv("STORAGE_REGION"),
		StorageEndpoint:  os.Getenv("STORAGE_ENDPOINT"),
		StorageBaseURL:   os.Getenv("STORAGE_BASE_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "vidhive"
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, errors.New("invalid TOKEN_TTL: " + err.Error())
		}
		cfg.TokenTTL = d
	}

	return cfg, nil
}
