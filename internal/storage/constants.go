package storage

import "time"

// Breaker settings for the storage gateway
const (
	BreakerName             = "storage-gateway"
	BreakerMaxHalfOpen      = 1
	BreakerInterval         = 60 * time.Second
	BreakerOpenTimeout      = 30 * time.Second
	BreakerFailureThreshold = 5
)

// Request defaults
const (
	DefaultTimeout      = 60 * time.Second
	DefaultTitle        = "Untitled"
	ContentTypeMD       = "text/markdown"
	MaxErrorBodyBytes   = 4096
	MaxResponseBytes    = 1 << 20
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
)

// Log messages
const (
	LogMsgBreakerStateChange = "Storage breaker state changed"
	LogMsgUploadComplete     = "Storage upload complete"
	LogMsgUploadFailed       = "Storage upload failed"
	LogMsgBreakerOpen        = "Storage breaker open, rejecting upload"
)
