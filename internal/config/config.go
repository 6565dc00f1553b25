package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// JWT configuration
	JWT JWTConfig

	// Built-in accounts and anonymous access
	Auth AuthConfig

	// Google OAuth configuration
	GoogleOAuth GoogleOAuthConfig

	// CORS configuration
	CORS CORSConfig

	// Local fallback store
	LocalStore LocalStoreConfig

	// Session revocation backend
	Session SessionConfig

	// Itinerary editing rules
	Itinerary ItineraryConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Enabled      bool
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxConns     int32
	MinConns     int32
	MaxLifetime  time.Duration
	ConnTimeout  time.Duration
	QueryTimeout time.Duration
	ConnRetries  int
	Migrate      bool
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

// AuthConfig holds the fixed admin and demo accounts
type AuthConfig struct {
	AdminEmail     string
	AdminPassword  string
	DemoEmail      string
	DemoPassword   string
	AllowAnonymous bool
}

// GoogleOAuthConfig holds Google OAuth configuration
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// Where the browser lands with the issued token
	FrontendCallbackURL string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

// LocalStoreConfig selects and configures the local key-value medium
type LocalStoreConfig struct {
	Driver     string // memory | sqlite | valkey
	SQLitePath string
	ValkeyURI  string
	KeyPrefix  string
	Seed       bool
}

// SessionConfig configures where revoked tokens are remembered
type SessionConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// ItineraryConfig holds itinerary editing behaviour
type ItineraryConfig struct {
	AutosaveDelay time.Duration
	StrictDates   bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("Warning: .env file not found: %v", err)
		}
	}

	config := FromEnv()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FromEnv builds a Config from the current environment without reading .env files
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{
			Enabled:      getBoolEnv("REMOTE_STORE_ENABLED", true),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Name:         getEnv("DB_NAME", "postgres"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxConns:     getInt32Env("DB_MAX_CONNS", 5),
			MinConns:     getInt32Env("DB_MIN_CONNS", 0),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", time.Hour),
			ConnTimeout:  getDurationEnv("DB_CONN_TIMEOUT", 10*time.Second),
			QueryTimeout: getDurationEnv("DB_QUERY_TIMEOUT", 30*time.Second),
			ConnRetries:  getIntEnv("DB_CONN_RETRIES", 3),
			Migrate:      getBoolEnv("DB_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenTTL: getDurationEnv("JWT_ACCESS_TTL", 7*24*time.Hour), // 7 days
		},
		Auth: AuthConfig{
			AdminEmail:     getEnv("ADMIN_EMAIL", "admin@globetrotter.com"),
			AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
			DemoEmail:      getEnv("DEMO_EMAIL", "demo@globetrotter.com"),
			DemoPassword:   getEnv("DEMO_PASSWORD", "demo123"),
			AllowAnonymous: getBoolEnv("AUTH_ALLOW_ANONYMOUS", true),
		},
		GoogleOAuth: GoogleOAuthConfig{
			ClientID:            getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret:        getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:         getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback"),
			FrontendCallbackURL: getEnv("GOOGLE_FRONTEND_CALLBACK_URL", "http://localhost:5173/auth/callback"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getStringSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getStringSliceEnv("CORS_ALLOWED_HEADERS", []string{"*"}),
			AllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", true),
		},
		LocalStore: LocalStoreConfig{
			Driver:     strings.ToLower(getEnv("LOCAL_STORE_DRIVER", "sqlite")),
			SQLitePath: getEnv("LOCAL_STORE_SQLITE_PATH", "globetrotter-local.db"),
			ValkeyURI:  getEnv("LOCAL_STORE_VALKEY_URI", "redis://localhost:6379"),
			KeyPrefix:  getEnv("LOCAL_STORE_KEY_PREFIX", "globe_trotter_"),
			Seed:       getBoolEnv("LOCAL_STORE_SEED", true),
		},
		Session: SessionConfig{
			RedisAddr:     getEnv("SESSION_REDIS_ADDR", ""),
			RedisPassword: getEnv("SESSION_REDIS_PASSWORD", ""),
			RedisDB:       getIntEnv("SESSION_REDIS_DB", 0),
		},
		Itinerary: ItineraryConfig{
			AutosaveDelay: getDurationEnv("ITINERARY_AUTOSAVE_DELAY", 500*time.Millisecond),
			StrictDates:   getBoolEnv("ITINERARY_STRICT_DATES", false),
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Enabled && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required when REMOTE_STORE_ENABLED=true")
	}
	if !c.Database.Enabled {
		log.Println("Warning: remote store disabled. Trips are kept in the local store only.")
	}

	switch c.LocalStore.Driver {
	case "memory", "sqlite", "valkey":
	default:
		return fmt.Errorf("LOCAL_STORE_DRIVER must be memory, sqlite or valkey, got %q", c.LocalStore.Driver)
	}
	if c.LocalStore.Driver == "sqlite" && c.LocalStore.SQLitePath == "" {
		return fmt.Errorf("LOCAL_STORE_SQLITE_PATH is required for the sqlite driver")
	}

	if c.Itinerary.AutosaveDelay <= 0 {
		return fmt.Errorf("ITINERARY_AUTOSAVE_DELAY must be positive")
	}

	if len(c.JWT.Secret) < 16 {
		log.Println("Warning: JWT_SECRET is shorter than 16 characters.")
	}

	if c.GoogleOAuth.ClientID == "" || c.GoogleOAuth.ClientSecret == "" {
		log.Println("Warning: Google OAuth credentials not configured. Google login will not work.")
	}

	return nil
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&connect_timeout=%d",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
		int(c.Database.ConnTimeout.Seconds()),
	)
}

// IsGoogleOAuthConfigured checks if Google OAuth is properly configured
func (c *Config) IsGoogleOAuthConfigured() bool {
	return c.GoogleOAuth.ClientID != "" && c.GoogleOAuth.ClientSecret != ""
}

// IsSessionRedisConfigured reports whether revoked tokens go to Redis
func (c *Config) IsSessionRedisConfigured() bool {
	return c.Session.RedisAddr != ""
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt32Env(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intValue)
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := []string{}
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
