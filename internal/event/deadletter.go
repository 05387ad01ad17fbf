package event

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/osse101/Mivy_Go/internal/logger"
)

// DeadLetterSchemaVersion is the current version of the dead-letter log format.
// Increment this when changing the DeadLetterEntry structure.
const DeadLetterSchemaVersion = "1.0"

// DeadLetterWriter appends failed events to a JSON-lines file
type DeadLetterWriter struct {
	file *os.File
	mu   sync.Mutex
}

// DeadLetterEntry represents an event that failed to publish after all retries
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// NewDeadLetterWriter opens (or creates) the dead-letter file for appending
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to open dead-letter file %s: %w", path, err)
	}
	return &DeadLetterWriter{file: f}, nil
}

// Write appends one failed event to the dead-letter file
func (dlw *DeadLetterWriter) Write(event Event, attempts int, lastError error) error {
	dlw.mu.Lock()
	defer dlw.mu.Unlock()

	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now().UTC(),
		Event:         event,
		Attempts:      attempts,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	logger.Warn(LogMsgEventDeadLettered,
		"event_type", event.Type,
		"attempts", attempts,
		"error", entry.LastError)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode dead-letter entry: %w", err)
	}
	_, err = dlw.file.Write(append(data, '\n'))
	return err
}

// Close closes the dead-letter file
func (dlw *DeadLetterWriter) Close() error {
	dlw.mu.Lock()
	defer dlw.mu.Unlock()
	return dlw.file.Close()
}
