// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/techstore/techstore-backend/internal/models"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Node        NodeConfig
	Peer        PeerConfig
	Auth        AuthConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
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

// NodeConfig identifies which of the two nodes this process is.
type NodeConfig struct {
	Name models.NodeID
}

// PeerConfig points at the other node's gateway. Forwards are best-effort and
// bounded by ForwardTimeout (seconds).
type PeerConfig struct {
	BaseURL        string
	ForwardTimeout int
}

type AuthConfig struct {
	SecretKey string
	TokenTTL  int // in hours
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "techstore"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		},
		Node: NodeConfig{
			Name: models.NodeID(getEnv("NODE_NAME", string(models.NodeBranch))),
		},
		Peer: PeerConfig{
			BaseURL:        getEnv("PEER_BASE_URL", ""),
			ForwardTimeout: getEnvAsInt("PEER_FORWARD_TIMEOUT", 3),
		},
		Auth: AuthConfig{
			SecretKey: getEnv("AUTH_SECRET", "techstore-secret-change-in-production"),
			TokenTTL:  getEnvAsInt("AUTH_TOKEN_TTL", 24),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if !c.Node.Name.Valid() {
		return fmt.Errorf("NODE_NAME must be %q or %q, got %q",
			models.NodeHub, models.NodeBranch, c.Node.Name)
	}

	if c.Environment == "production" {
		if c.Auth.SecretKey == "techstore-secret-change-in-production" {
			return fmt.Errorf("auth secret key must be changed in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database password is required in production")
		}
		if c.Peer.BaseURL == "" {
			return fmt.Errorf("peer base URL is required in production")
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
