package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string

	// Database
	DBUser               string
	DBPassword           string
	DBHost               string
	DBPort               string
	DBName               string
	DBMaxConns           int
	DBMaxConnIdle        time.Duration
	DBMaxConnLife        time.Duration
	AutoMigrate          bool
	CategoriesPath       string
	CategoriesSchemaPath string

	// Security
	APIKey         string   // API key for server-to-server authentication
	TrustedProxies []string // Proxies allowed to set X-Forwarded-For
	SessionSecret  string   // HMAC secret for session tokens
	SessionTTL     time.Duration

	// Infrastructure
	RedisURL         string
	NotificationTTL  time.Duration
	KafkaBrokers     []string
	KafkaTopicPrefix string
	SentryDSN        string

	// Storage gateway
	StorageGatewayURL   string
	StorageGatewayToken string
	StorageTimeout      time.Duration

	// Workers and events
	MembershipSweepInterval time.Duration
	EventMaxRetries         int
	EventRetryDelay         time.Duration
	EventDeadLetterPath     string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),

		DBUser:               getEnv("DB_USER", "postgres"),
		DBPassword:           getEnv("DB_PASSWORD", "postgres"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBName:               getEnv("DB_NAME", "mivy"),
		DBMaxConns:           getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdle:        getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdle),
		DBMaxConnLife:        getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLife),
		AutoMigrate:          getEnvAsBool("AUTO_MIGRATE", true),
		CategoriesPath:       getEnv("CATEGORIES_PATH", ConfigPathCategories),
		CategoriesSchemaPath: getEnv("CATEGORIES_SCHEMA_PATH", ConfigPathCategoriesSchema),

		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsSlice("TRUSTED_PROXIES"),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		SessionTTL:     getEnvAsDuration("SESSION_TTL", DefaultSessionTTL),

		RedisURL:         getEnv("REDIS_URL", ""),
		NotificationTTL:  getEnvAsDuration("NOTIFICATION_TTL", DefaultNotificationTTL),
		KafkaBrokers:     getEnvAsSlice("KAFKA_BROKERS"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", DefaultKafkaTopicPrefix),
		SentryDSN:        getEnv("SENTRY_DSN", ""),

		StorageGatewayURL:   getEnv("STORAGE_GATEWAY_URL", ""),
		StorageGatewayToken: getEnv("STORAGE_GATEWAY_TOKEN", ""),
		StorageTimeout:      getEnvAsDuration("STORAGE_TIMEOUT", DefaultStorageTimeout),

		MembershipSweepInterval: getEnvAsDuration("MEMBERSHIP_SWEEP_INTERVAL", DefaultMembershipSweepInterval),
		EventMaxRetries:         getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:         getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath:     getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate secrets are set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back on parse errors
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}

// getEnvAsDuration parses a Go duration string such as "15m"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}

// getEnvAsBool parses true/false style values
func getEnvAsBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

// getEnvAsSlice splits a comma separated variable, dropping empty entries
func getEnvAsSlice(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return BuildDBConnString(c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// BuildDBConnString assembles a postgres URL with the credentials escaped
func BuildDBConnString(user, password, host, port, name string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// IsDevelopment reports whether the service runs in a dev environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev" || c.Environment == "development"
}
