package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// =============================================================================
// Logger Configuration
// =============================================================================

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingMivy        = "Starting Mivy"
	LogMsgConfigurationLoaded = "Configuration loaded"
)

// Environments that get source locations in log lines
const (
	EnvironmentDev         = "dev"
	EnvironmentDevelopment = "development"
)

// =============================================================================
// Sentry
// =============================================================================

const (
	LogMsgSentryDisabled    = "Sentry DSN not set, error reporting disabled"
	LogMsgSentryInitialized = "Sentry initialized"
	ErrMsgSentryInitFailed  = "failed to initialize sentry"

	// SentryFlushTimeout bounds how long shutdown waits for queued reports
	SentryFlushTimeout = 2 * time.Second

	// SentryTracesSampleRate is the fraction of transactions traced
	SentryTracesSampleRate = 0.1
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgKafkaDisabled                  = "KAFKA_BROKERS not set, event forwarding disabled"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	ErrMsgFailedCreateKafkaWriter        = "failed to create kafka writer"
)

// =============================================================================
// Category Catalog
// =============================================================================

const (
	LogMsgLoadingCategories = "Loading creator category catalog..."
	LogMsgCategoriesLoaded  = "Creator category catalog loaded"
	ErrMsgFailedLoadCatalog = "failed to load category catalog"
	ErrMsgInvalidCatalog    = "invalid category catalog"
)

// =============================================================================
// Service Wiring
// =============================================================================

const (
	// ExpiryPoolWorkers drain stale memberships found on the read path
	ExpiryPoolWorkers   = 2
	ExpiryPoolQueueSize = 256

	LogMsgServicesInitialized   = "Services initialized"
	ErrMsgFailedCreateTokens    = "failed to create session token manager"
	ErrMsgFailedCreateNotifyDB  = "failed to create notification store"
	LogMsgStorageNotConfigured  = "STORAGE_GATEWAY_URL not set, uploads will be rejected"
	LogMsgNotificationStoreOpen = "Notification store ready"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgCreatorStatsRegistered     = "Creator stats handlers registered"
	LogMsgMembershipWorkerSubscribed = "Membership worker subscribed"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgWorkerShutdownFailed       = "Membership worker shutdown failed"
	LogMsgKafkaCloseFailed           = "Kafka forwarder close failed"
	LogMsgNotificationCloseFailed    = "Notification store close failed"
)
