package membership

import "time"

// Gating cache settings
const (
	StatusCacheSize = 50000
	StatusCacheTTL  = 30 * time.Second
)

// ActivationConflictRetries bounds retries when two activations for the same
// (creator, supporter) race on the single-active index
const ActivationConflictRetries = 1

// Log messages
const (
	LogMsgMembershipActivated = "Membership activated"
	LogMsgMembershipReplayed  = "Membership activation replayed for known transaction"
	LogMsgMembershipExpired   = "Membership expired"
	LogMsgExpireDueCompleted  = "Expired due memberships"
	LogMsgStaleMembership     = "Stale active membership seen at read time"
	LogMsgTierCreated         = "Tier created"
	LogMsgActivationConflict  = "Concurrent activation conflict, retrying"
)
