package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Auth errors
	ErrMsgUnauthorized  = "Unauthorized"
	ErrMsgInvalidToken  = "invalid session token"
	ErrMsgTokenExpired  = "session token expired"
	ErrMsgForbidden     = "forbidden"
	ErrMsgContentLocked = "content requires an active membership"

	// Identity errors
	ErrMsgUserNotFound   = "user not found"
	ErrMsgDataIntegrity  = "User not found"
	ErrMsgDuplicateLink  = "external account already linked"
	ErrMsgInvalidFid     = "invalid farcaster id"
	ErrMsgInvalidAddress = "invalid wallet address"

	// Creator errors
	ErrMsgCreatorProfileNotFound = "Creator profile not found"
	ErrMsgCreatorNotFound        = "creator not found"
	ErrMsgCreatorAlreadyExists   = "creator profile already exists"
	ErrMsgUnknownCategory        = "unknown category"

	// Tier and membership errors
	ErrMsgTierNotFound       = "tier not found"
	ErrMsgMembershipNotFound = "membership not found"
	ErrMsgMissingTxHash      = "transaction hash is required"
	ErrMsgInvalidExpiry      = "expiry must be after start"
	ErrMsgInvalidPrice       = "price must not be negative"
	ErrMsgDuplicateTx        = "transaction already applied"
	ErrMsgMembershipConflict = "concurrent membership activation"

	// Post errors
	ErrMsgPostNotFound     = "post not found"
	ErrMsgUnsupportedType  = "unsupported post type"
	ErrMsgEmptyPostContent = "post content is required"

	// Storage errors
	ErrMsgEmptyContent          = "No content provided"
	ErrMsgStorageNotConfigured  = "Server misconfiguration"
	ErrMsgStorageUnavailable    = "storage gateway unavailable"
	ErrMsgStorageUploadRejected = "storage gateway rejected upload"

	// Database/System errors
	ErrMsgConnectionTimeout = "connection timeout"
	ErrMsgDatabaseError     = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Auth errors
	ErrUnauthorized  = errors.New(ErrMsgUnauthorized)
	ErrInvalidToken  = errors.New(ErrMsgInvalidToken)
	ErrTokenExpired  = errors.New(ErrMsgTokenExpired)
	ErrForbidden     = errors.New(ErrMsgForbidden)
	ErrContentLocked = errors.New(ErrMsgContentLocked)

	// Identity errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)
	// ErrDataIntegrity marks a linked account that points at a missing user.
	ErrDataIntegrity  = errors.New(ErrMsgDataIntegrity)
	ErrDuplicateLink  = errors.New(ErrMsgDuplicateLink)
	ErrInvalidFid     = errors.New(ErrMsgInvalidFid)
	ErrInvalidAddress = errors.New(ErrMsgInvalidAddress)

	// Creator errors
	ErrCreatorProfileNotFound = errors.New(ErrMsgCreatorProfileNotFound)
	ErrCreatorNotFound        = errors.New(ErrMsgCreatorNotFound)
	ErrCreatorAlreadyExists   = errors.New(ErrMsgCreatorAlreadyExists)
	ErrUnknownCategory        = errors.New(ErrMsgUnknownCategory)

	// Tier and membership errors
	ErrTierNotFound       = errors.New(ErrMsgTierNotFound)
	ErrMembershipNotFound = errors.New(ErrMsgMembershipNotFound)
	ErrMissingTxHash      = errors.New(ErrMsgMissingTxHash)
	ErrInvalidExpiry      = errors.New(ErrMsgInvalidExpiry)
	ErrInvalidPrice       = errors.New(ErrMsgInvalidPrice)

	// ErrDuplicateTransaction means a membership already exists for the tx hash
	ErrDuplicateTransaction = errors.New(ErrMsgDuplicateTx)
	ErrMembershipConflict   = errors.New(ErrMsgMembershipConflict)

	// Post errors
	ErrPostNotFound     = errors.New(ErrMsgPostNotFound)
	ErrUnsupportedType  = errors.New(ErrMsgUnsupportedType)
	ErrEmptyPostContent = errors.New(ErrMsgEmptyPostContent)

	// Storage errors
	ErrEmptyContent          = errors.New(ErrMsgEmptyContent)
	ErrStorageNotConfigured  = errors.New(ErrMsgStorageNotConfigured)
	ErrStorageUnavailable    = errors.New(ErrMsgStorageUnavailable)
	ErrStorageUploadRejected = errors.New(ErrMsgStorageUploadRejected)

	// Database/System errors
	ErrConnectionTimeout = errors.New(ErrMsgConnectionTimeout)
	ErrDatabaseError     = errors.New(ErrMsgDatabaseError)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
