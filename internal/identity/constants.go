package identity

import "time"

// Lookup cache settings
const (
	LookupCacheSize = 10000
	LookupCacheTTL  = 15 * time.Minute

	// CacheSchemaVersion invalidates cached entries when the entry shape changes
	CacheSchemaVersion = "1.0"
)

// Validation tags for external identifiers
const (
	WalletAddressTag = "required,eth_addr"
)

// Log messages
const (
	LogMsgUserCreated       = "User created from external identity"
	LogMsgResolvedExisting  = "Resolved existing user"
	LogMsgLostCreateRace    = "Concurrent first sign-in lost the race, re-reading winner"
	LogMsgDanglingLink      = "Linked account points at a missing user"
	LogMsgTouchSyncedFailed = "Failed to stamp last_synced_at"
	LogMsgProfileUpdated    = "User profile updated"
)
