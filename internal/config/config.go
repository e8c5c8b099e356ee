// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Ledger      LedgerConfig
	Payout      PayoutConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	ReadTimeout    int
	WriteTimeout   int
	IdleTimeout    int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	// Backend selects the store implementation: "memory" or "postgres".
	Backend      string
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL int // in hours
}

// LedgerConfig is the externally supplied deployment wiring of the
// ledger: who the admin is, which identity the content registry uses,
// where platform funds go, the initial fee and the timelock delay for
// admin mutations.
type LedgerConfig struct {
	AdminAddress           uuid.UUID
	AdminKeyHash           string
	PlatformWallet         uuid.UUID
	ContentRegistryAddress uuid.UUID
	InitialFeePercent      uint64
	TimelockDelay          time.Duration
}

type PayoutConfig struct {
	StripeSecretKey string
	Currency        string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Host:           getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:    getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout:   getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:    getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
			AllowedOrigins: getEnvAsSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Backend:      getEnv("STORE_BACKEND", "memory"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "creator_ledger"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET", "change-me-in-production"),
			AccessTokenTTL: getEnvAsInt("JWT_ACCESS_TTL", 24),
		},
		Ledger: LedgerConfig{
			AdminAddress:           getEnvAsUUID("ADMIN_ADDRESS"),
			AdminKeyHash:           getEnv("ADMIN_KEY_HASH", ""),
			PlatformWallet:         getEnvAsUUID("PLATFORM_WALLET"),
			ContentRegistryAddress: getEnvAsUUID("CONTENT_REGISTRY_ADDRESS"),
			InitialFeePercent:      getEnvAsUint("PLATFORM_FEE_PERCENT", 5),
			TimelockDelay:          getEnvAsDuration("TIMELOCK_DELAY", 0),
		},
		Payout: PayoutConfig{
			StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
			Currency:        getEnv("PAYOUT_CURRENCY", "usd"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Ledger.AdminAddress == uuid.Nil {
		return fmt.Errorf("ADMIN_ADDRESS is required")
	}
	if c.Ledger.PlatformWallet == uuid.Nil {
		return fmt.Errorf("PLATFORM_WALLET is required")
	}
	if c.Ledger.ContentRegistryAddress == uuid.Nil {
		return fmt.Errorf("CONTENT_REGISTRY_ADDRESS is required")
	}
	if c.Ledger.InitialFeePercent > 100 {
		return fmt.Errorf("PLATFORM_FEE_PERCENT must be between 0 and 100")
	}

	if c.Environment == "production" {
		if c.JWT.SecretKey == "change-me-in-production" {
			return fmt.Errorf("JWT secret key must be changed in production")
		}
		if c.Database.Backend == "postgres" && c.Database.Password == "" {
			return fmt.Errorf("database password is required in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsUint(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintValue
		}
	}
	return defaultValue
}

func getEnvAsUUID(key string) uuid.UUID {
	if value := os.Getenv(key); value != "" {
		if id, err := uuid.Parse(value); err == nil {
			return id
		}
	}
	return uuid.Nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
