package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/osse101/Mivy_Go/internal/config"
	"github.com/osse101/Mivy_Go/internal/event"
	"github.com/osse101/Mivy_Go/internal/logger"
)

// InitializeEventSystem creates and configures the event bus and resilient publisher.
// It applies default values for retry configuration if not specified in config,
// creates the dead-letter directory, and initializes the resilient publisher
// with exponential backoff retry logic.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	maxRetries := cfg.EventMaxRetries
	if maxRetries == 0 {
		maxRetries = EventDefaultMaxRetries
	}

	retryDelay := cfg.EventRetryDelay
	if retryDelay == 0 {
		retryDelay = EventDefaultRetryDelay
	}

	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = EventDefaultDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	resilientPublisher, err := event.NewResilientPublisher(eventBus, maxRetries, retryDelay, deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	logger.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, resilientPublisher, nil
}

// InitializeKafkaForwarder returns nil when no brokers are configured
func InitializeKafkaForwarder(cfg *config.Config) (*event.KafkaForwarder, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info(LogMsgKafkaDisabled)
		return nil, nil
	}

	writer, err := event.NewKafkaWriter(cfg.KafkaBrokers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateKafkaWriter, err)
	}
	return event.NewKafkaForwarder(writer, cfg.KafkaTopicPrefix), nil
}
