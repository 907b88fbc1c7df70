package config

import (
	"os"
	"strconv"
	"time"
)

type PolizaServiceConfig struct {
	Port        string
	APIToken    string
	VelneoCfg   VelneoAPIConfig
	AzureCfg    AzureAPIConfig
	AuthCfg     AuthAPIConfig
	PostgresCfg PostgresConfig
	RedisCfg    RedisConfig
	MinioCfg    MinioConfig
	RabbitMQCfg RabbitMQConfig
	SessionTTL  time.Duration
}

// VelneoAPIConfig points at the middleware that fronts the Velneo backend
// (clients, companies, maestros, póliza creation).
type VelneoAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AzureAPIConfig points at the document-intelligence processing endpoint.
type AzureAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AuthAPIConfig struct {
	BaseURL string
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MinioConfig struct {
	MinioURL       string
	MinioAccessKey string
	MinioSecretKey string
	MinioLocation  string
	MinioSecure    string
}

type RabbitMQConfig struct {
	Username string
	Password string
	Host     string
	Port     string
}

func New() *PolizaServiceConfig {
	return &PolizaServiceConfig{
		Port:     getEnvOrDefault("PORT", "8086"),
		APIToken: getEnvOrDefault("API_TOKEN", ""),
		VelneoCfg: VelneoAPIConfig{
			BaseURL: getEnvOrDefault("VELNEO_API_BASE_URL", "https://localhost:7191/api"),
			Timeout: getDurationOrDefault("VELNEO_API_TIMEOUT", 30*time.Second),
		},
		AzureCfg: AzureAPIConfig{
			BaseURL: getEnvOrDefault("AZURE_DOCUMENT_BASE_URL", "https://localhost:7191/api"),
			Timeout: getDurationOrDefault("AZURE_DOCUMENT_TIMEOUT", 30*time.Second),
		},
		AuthCfg: AuthAPIConfig{
			BaseURL: getEnvOrDefault("AUTH_API_BASE_URL", "https://localhost:7191/api"),
		},
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "poliza_service"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getIntOrDefault("REDIS_DB", 0),
		},
		MinioCfg: MinioConfig{
			MinioURL:       getEnvOrDefault("MINIO_ENDPOINT", "http://localhost:9407"),
			MinioAccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", "minio"),
			MinioSecretKey: getEnvOrDefault("MINIO_SECRET_KEY", "minio123"),
			MinioLocation:  getEnvOrDefault("MINIO_LOCATION", "us-east-1"),
			MinioSecure:    getEnvOrDefault("MINIO_SECURE", "false"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		SessionTTL: getDurationOrDefault("WIZARD_SESSION_TTL", 2*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return n
		}
	}
	return defaultValue
}

// getDurationOrDefault reads a timeout expressed in whole seconds.
func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
