package config

import "time"

const (
	// Configuration file paths
	ConfigPathCategories       = "configs/categories.yaml"
	ConfigPathCategoriesSchema = "configs/schemas/categories.schema.json"
)

// Defaults applied when the environment does not set a value
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultServiceName = "mivy-api"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"

	DefaultDBMaxConns    = 20
	DefaultDBMaxConnIdle = 30 * time.Minute
	DefaultDBMaxConnLife = time.Hour

	DefaultSessionTTL       = 7 * 24 * time.Hour
	DefaultNotificationTTL  = 30 * 24 * time.Hour
	DefaultKafkaTopicPrefix = "mivy"
	DefaultStorageTimeout   = 30 * time.Second

	DefaultMembershipSweepInterval = 15 * time.Minute
	DefaultEventMaxRetries         = 5
	DefaultEventRetryDelay         = 2 * time.Second
	DefaultEventDeadLetterPath     = "logs/event_deadletter.jsonl"
)

// Example values shipped in .env.example that must not reach production
const (
	ExampleDBPassword    = "change_this_secure_password"
	ExampleAPIKey        = "generate_with_openssl_rand_hex_32"
	ExampleSessionSecret = "generate_with_openssl_rand_hex_64"
)
