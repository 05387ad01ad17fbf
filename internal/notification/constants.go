package notification

import "time"

// KeyPrefix namespaces mini-app notification details by fid
const KeyPrefix = "farcaster:miniapp:user:"

// Defaults for the in-process fallback store
const (
	DefaultTTL          = 30 * 24 * time.Hour
	MemoryStoreCapacity = 100000
	ScanBatchSize       = 200
)

// Log messages
const (
	LogMsgRedisBackend  = "Notification store using Redis"
	LogMsgMemoryBackend = "Notification store using in-process LRU"
	LogMsgSkipCorrupt   = "Skipping unreadable notification entry"
)
