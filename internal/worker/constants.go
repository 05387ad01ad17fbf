package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for the job pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgJobQueueFull    = "Job queue full, dropping job"
)

// ============================================================================
// Log Messages - Shared
// ============================================================================

const (
	LogMsgWorkerShuttingDown     = "Shutting down worker"
	LogMsgWorkerShutdownComplete = "Worker shutdown complete"
	LogMsgWorkerShutdownTimeout  = "Worker shutdown timeout"
	LogMsgTimerCancelled         = "Cancelled pending execution"
)

// ============================================================================
// Log Messages - Membership Worker
// ============================================================================

// Log messages for membership expiry
const (
	LogMsgMembershipWorkerStart = "Starting membership worker"
	LogMsgSweepCompleted        = "Membership expiry sweep completed"
	LogMsgSweepFailed           = "Membership expiry sweep failed"
	LogMsgExpiryScheduled       = "Membership expiry scheduled"
	LogMsgExpiryFailed          = "Failed to expire membership"
)

// ============================================================================
// Defaults
// ============================================================================

// Defaults for the membership worker and job pool
const (
	DefaultSweepInterval = 15 * time.Minute
	DefaultJobTimeout    = 30 * time.Second
	DefaultPoolWorkers   = 2
	DefaultPoolQueueSize = 256
)

// MembershipWorkerName identifies the worker in logs
const MembershipWorkerName = "membership worker"

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
