package event

import "time"

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Retry configuration constants
const (
	// RetryQueueBufferSize is the buffer size for the retry queue
	RetryQueueBufferSize = 1000

	// RetryInitialDelaySeconds is the default base retry delay in seconds
	RetryInitialDelaySeconds = 2

	// RetryMaxAttempts is the default maximum number of retry attempts
	RetryMaxAttempts = 5
)

// DeadLetterFilePermissions is the file permission mode for dead-letter files
const DeadLetterFilePermissions = 0644

// Kafka forwarder settings
const (
	KafkaWriteTimeout = 10 * time.Second
	KafkaMaxAttempts  = 3
	KafkaBatchTimeout = 50 * time.Millisecond
)

// Log message constants
const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventDeadLettered     = "event_dead_lettered"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"

	LogMsgKafkaForwardFailed = "Failed to forward event to kafka"
	LogMsgKafkaForwarderOn   = "Kafka event forwarder enabled"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay calculates the exponential backoff delay for retry attempts.
// Formula: baseDelay * 2^(attempt-1), so 2s, 4s, 8s, 16s, 32s for the default base.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
