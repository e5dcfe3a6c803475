package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backend identifiers for avatar uploads.
const (
	StorageLocal      = "local"
	StorageCloudinary = "cloudinary"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	DatabaseURL         string
	RedisURL            string
	JWTSecret           string
	TokenTTL            time.Duration
	BcryptCost          int
	StorageBackend      string
	UploadDir           string
	MaxUploadMB         int
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
	LoginRateLimit      int
	LoginRateWindow     time.Duration
	RosterCacheTTL      time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PORTAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Arizona Prime API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("token.ttl", "168h")
	v.SetDefault("bcrypt.cost", 10)
	v.SetDefault("storage.backend", StorageLocal)
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_mb", 3)
	v.SetDefault("cloudinary.folder", "arizona-prime/avatars")
	v.SetDefault("login.rate_limit", 10)
	v.SetDefault("login.rate_window", "1m")
	v.SetDefault("roster.cache_ttl", "30s")

	ttl, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	window, err := time.ParseDuration(v.GetString("login.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid login rate window: %w", err)
	}

	rosterTTL, err := time.ParseDuration(v.GetString("roster.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid roster cache ttl: %w", err)
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		JWTSecret:           v.GetString("jwt.secret"),
		TokenTTL:            ttl,
		BcryptCost:          v.GetInt("bcrypt.cost"),
		StorageBackend:      strings.ToLower(v.GetString("storage.backend")),
		UploadDir:           v.GetString("upload.dir"),
		MaxUploadMB:         v.GetInt("upload.max_mb"),
		CloudinaryCloudName: v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:    v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret: v.GetString("cloudinary.api_secret"),
		CloudinaryFolder:    v.GetString("cloudinary.folder"),
		LoginRateLimit:      v.GetInt("login.rate_limit"),
		LoginRateWindow:     window,
		RosterCacheTTL:      rosterTTL,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 3
	}

	if cfg.StorageBackend != StorageLocal && cfg.StorageBackend != StorageCloudinary {
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return cfg, nil
}
