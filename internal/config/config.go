package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultFaireBaseURL = "https://www.faire.com/external-api/v2"

// Config is the full service configuration, read once from the environment
// at startup and passed explicitly to every component that needs it.
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Faire    FaireConfig
	Snapshot SnapshotConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	S3       S3Config
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URL string
}

type FaireConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type SnapshotConfig struct {
	Path string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether the redis snapshot store is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type KafkaConfig struct {
	Brokers     []string
	OrdersTopic string
}

// Enabled reports whether event publishing is configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Enabled reports whether snapshot archiving is configured.
func (s S3Config) Enabled() bool { return s.Bucket != "" }

// Load reads configuration from the environment. Missing required values
// are fatal: the caller is expected to exit.
func Load() (*Config, error) {
	cfg := &Config{
		Env: getEnvString("ENV", "dev"),
		Server: ServerConfig{
			Port:         getEnvInt("PORT", 8001),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Faire: FaireConfig{
			BaseURL: getEnvString("FAIRE_BASE_URL", defaultFaireBaseURL),
			APIKey:  os.Getenv("FAIRE_API_KEY"),
			Timeout: time.Duration(getEnvInt("FAIRE_TIMEOUT", 30)) * time.Second,
		},
		Snapshot: SnapshotConfig{
			Path: getEnvString("SNAPSHOT_PATH", "orders.json"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(os.Getenv("KAFKA_BROKERS")),
			OrdersTopic: getEnvString("KAFKA_ORDERS_TOPIC", "faire.orders"),
		},
		S3: S3Config{
			Bucket:          os.Getenv("S3_BUCKET"),
			Region:          os.Getenv("S3_REGION"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	if c.Faire.APIKey == "" {
		return fmt.Errorf("config: FAIRE_API_KEY is required")
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitList(value string) []string {
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
