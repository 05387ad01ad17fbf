package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeForeignKeyViolation is raised when a referenced row is missing
	PgErrorCodeForeignKeyViolation = "23503"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Log Messages
const (
	LogMsgFailedToRollback = "Failed to rollback transaction"
)

// Constraint names referenced when classifying unique violations
const (
	ConstraintMembershipTxHash = "uq_memberships_tx_hash"
)
